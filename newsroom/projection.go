package newsroom

import (
	"time"
	"unicode/utf8"
)

const bodyPreviewLimit = 500

// Report is the client-facing projection of a CycleResult.
type Report struct {
	CycleID    string          `json:"cycle_id,omitempty"`
	Status     CycleStatus     `json:"status"`
	Topic      string          `json:"topic"`
	Iterations int             `json:"iterations"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
	Article    *ArticleSummary `json:"article,omitempty"`
	Review     *ReviewSummary  `json:"review,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// ArticleSummary carries the final draft with the body truncated for
// transport; the HTML preview endpoint serves the full body.
type ArticleSummary struct {
	Title     string   `json:"title"`
	Lead      string   `json:"lead"`
	Body      string   `json:"body"`
	Tags      []string `json:"tags"`
	WordCount int      `json:"word_count"`
	Version   int      `json:"version"`
}

// ReviewSummary carries the final editorial verdict.
type ReviewSummary struct {
	Decision    Decision `json:"decision"`
	Score       float64  `json:"score"`
	Strengths   []string `json:"strengths"`
	Weaknesses  []string `json:"weaknesses"`
	Suggestions []string `json:"suggestions"`
}

// Report projects the cycle result into its client-facing summary.
func (r CycleResult) Report() Report {
	report := Report{
		Status:     r.Status,
		Topic:      r.Topic,
		Iterations: r.Iterations,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		Error:      r.ErrorMessage,
	}
	if r.FinalDraft != nil {
		report.Article = &ArticleSummary{
			Title:     r.FinalDraft.Title,
			Lead:      r.FinalDraft.Lead,
			Body:      previewBody(r.FinalDraft.Body),
			Tags:      r.FinalDraft.Tags,
			WordCount: r.FinalDraft.WordCount,
			Version:   r.FinalDraft.Version,
		}
	}
	if r.FinalReview != nil {
		report.Review = &ReviewSummary{
			Decision:    r.FinalReview.Decision,
			Score:       r.FinalReview.OverallScore,
			Strengths:   r.FinalReview.Strengths,
			Weaknesses:  r.FinalReview.Weaknesses,
			Suggestions: r.FinalReview.SpecificSuggestions,
		}
	}
	return report
}

func previewBody(body string) string {
	if utf8.RuneCountInString(body) <= bodyPreviewLimit {
		return body
	}
	return string([]rune(body)[:bodyPreviewLimit]) + "..."
}
