package newsroom

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// ArticleStatus tracks where a draft sits in the editorial pipeline.
type ArticleStatus string

const (
	StatusDraft         ArticleStatus = "draft"
	StatusInReview      ArticleStatus = "in_review"
	StatusNeedsRevision ArticleStatus = "needs_revision"
	StatusApproved      ArticleStatus = "approved"
	StatusPublished     ArticleStatus = "published"
)

var articleStatuses = map[ArticleStatus]bool{
	StatusDraft:         true,
	StatusInReview:      true,
	StatusNeedsRevision: true,
	StatusApproved:      true,
	StatusPublished:     true,
}

// Decision is the editor's verdict on a draft.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionRevise  Decision = "revise"
	DecisionReject  Decision = "reject"
)

// ParseDecision maps a raw model verdict onto the known decisions,
// case-insensitively. Anything unrecognized falls back to revise: an
// unknown verdict must never silently approve a draft.
func ParseDecision(raw string) Decision {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "approve":
		return DecisionApprove
	case "reject":
		return DecisionReject
	case "revise":
		return DecisionRevise
	default:
		return DecisionRevise
	}
}

// SourceInfo describes a single source collected during research.
type SourceInfo struct {
	Title          string  `json:"title"`
	URL            string  `json:"url,omitempty"`
	Summary        string  `json:"summary"`
	RelevanceScore float64 `json:"relevance_score"`
}

func (s SourceInfo) Validate() error {
	if s.RelevanceScore < 0.0 || s.RelevanceScore > 1.0 {
		return &ValidationError{"relevance_score", fmt.Sprintf("must be within [0.0, 1.0], got %g", s.RelevanceScore)}
	}
	return nil
}

// ResearchNotes is the research step's output: facts and sources for one
// topic. It is produced exactly once per cycle and never regenerated
// across revision iterations.
type ResearchNotes struct {
	Topic          string       `json:"topic"`
	Sources        []SourceInfo `json:"sources"`
	KeyFacts       []string     `json:"key_facts"`
	SuggestedAngle string       `json:"suggested_angle"`
	CreatedAt      time.Time    `json:"created_at"`
}

func (n ResearchNotes) Validate() error {
	if strings.TrimSpace(n.Topic) == "" {
		return &ValidationError{"topic", "must not be empty"}
	}
	if strings.TrimSpace(n.SuggestedAngle) == "" {
		return &ValidationError{"suggested_angle", "must not be empty"}
	}
	for i, src := range n.Sources {
		if err := src.Validate(); err != nil {
			return fmt.Errorf("sources[%d]: %w", i, err)
		}
	}
	return nil
}

// ArticleDraft is the writer step's output. Each writer invocation creates
// a fresh draft; a revision supersedes the previous version rather than
// mutating it.
type ArticleDraft struct {
	Title     string        `json:"title"`
	Lead      string        `json:"lead"`
	Body      string        `json:"body"`
	Tags      []string      `json:"tags"`
	WordCount int           `json:"word_count"`
	Status    ArticleStatus `json:"status"`
	Version   int           `json:"version"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (d ArticleDraft) Validate() error {
	if n := utf8.RuneCountInString(d.Title); n < 5 || n > 200 {
		return &ValidationError{"title", fmt.Sprintf("length must be within [5, 200], got %d", n)}
	}
	if n := utf8.RuneCountInString(d.Lead); n < 20 || n > 500 {
		return &ValidationError{"lead", fmt.Sprintf("length must be within [20, 500], got %d", n)}
	}
	if n := utf8.RuneCountInString(d.Body); n < 100 {
		return &ValidationError{"body", fmt.Sprintf("length must be at least 100, got %d", n)}
	}
	if d.WordCount < 0 {
		return &ValidationError{"word_count", fmt.Sprintf("must be non-negative, got %d", d.WordCount)}
	}
	if !articleStatuses[d.Status] {
		return &ValidationError{"status", fmt.Sprintf("unknown status %q", d.Status)}
	}
	if d.Version < 1 {
		return &ValidationError{"version", fmt.Sprintf("must be at least 1, got %d", d.Version)}
	}
	return nil
}

// ReviewFeedback is the editor step's output for one iteration. The most
// recent instance is threaded into the next writer invocation.
// OriginatingIteration records which write/review round trip produced it;
// the writer derives the next draft version from it.
type ReviewFeedback struct {
	Decision             Decision  `json:"decision"`
	OverallScore         float64   `json:"overall_score"`
	Strengths            []string  `json:"strengths"`
	Weaknesses           []string  `json:"weaknesses"`
	SpecificSuggestions  []string  `json:"specific_suggestions"`
	FactCheckNotes       string    `json:"fact_check_notes,omitempty"`
	OriginatingIteration int       `json:"originating_iteration,omitempty"`
	ReviewedAt           time.Time `json:"reviewed_at"`
}

func (f ReviewFeedback) Validate() error {
	switch f.Decision {
	case DecisionApprove, DecisionRevise, DecisionReject:
	default:
		return &ValidationError{"decision", fmt.Sprintf("unknown decision %q", f.Decision)}
	}
	if f.OverallScore < 0.0 || f.OverallScore > 10.0 {
		return &ValidationError{"overall_score", fmt.Sprintf("must be within [0.0, 10.0], got %g", f.OverallScore)}
	}
	return nil
}

// CycleStatus classifies how a newsroom cycle terminated.
type CycleStatus string

const (
	CycleSuccess       CycleStatus = "success"
	CycleMaxIterations CycleStatus = "max_iterations"
	CycleRejected      CycleStatus = "rejected"
	CycleError         CycleStatus = "error"
)

// CycleResult is the outcome of one full research → write → review cycle.
// A result is exclusively owned by the goroutine that ran the cycle until
// it is handed to the result store. On failure, partial progress (research
// notes, the last draft) is kept for diagnostics.
type CycleResult struct {
	Status        CycleStatus     `json:"status"`
	Topic         string          `json:"topic"`
	Iterations    int             `json:"iterations"`
	FinalDraft    *ArticleDraft   `json:"final_draft,omitempty"`
	FinalReview   *ReviewFeedback `json:"final_review,omitempty"`
	ResearchNotes *ResearchNotes  `json:"research_notes,omitempty"`
	ErrorMessage  string          `json:"error_message,omitempty"`
	StartedAt     time.Time       `json:"started_at"`
	FinishedAt    time.Time       `json:"finished_at"`
}
