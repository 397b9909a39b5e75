package newsroom

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Agents bundles the three newsroom steps. Each step fills its prompt
// template, calls the generation client, parses the completion into its
// output entity and validates the field constraints. Steps do not retry;
// a malformed or invalid completion fails the step.
type Agents struct {
	client  *Client
	prompts PromptSet
}

func NewAgents(client *Client, prompts PromptSet) *Agents {
	return &Agents{client: client, prompts: prompts}
}

// Research gathers sources and key facts for a topic. It runs exactly
// once per cycle.
func (a *Agents) Research(ctx context.Context, topic string) (ResearchNotes, error) {
	prompt, err := a.prompts.Agent("researcher")
	if err != nil {
		return ResearchNotes{}, err
	}
	task := fillTemplate(prompt.UserPromptTemplate, map[string]string{"topic": topic})

	raw := a.client.Generate(ctx, task, prompt.SystemPrompt)

	var notes ResearchNotes
	if err := decodeJSON(raw, &notes); err != nil {
		return ResearchNotes{}, fmt.Errorf("research: %w", err)
	}
	if notes.CreatedAt.IsZero() {
		notes.CreatedAt = time.Now()
	}
	if err := notes.Validate(); err != nil {
		return ResearchNotes{}, fmt.Errorf("research: %w", err)
	}
	return notes, nil
}

// Write drafts an article from research notes. When feedback from a
// previous review is supplied, it is appended to the task instruction and
// the resulting draft's version becomes the feedback's originating
// iteration plus one; a first draft is version 1.
func (a *Agents) Write(ctx context.Context, notes ResearchNotes, feedback *ReviewFeedback) (ArticleDraft, error) {
	prompt, err := a.prompts.Agent("writer")
	if err != nil {
		return ArticleDraft{}, err
	}
	task := fillTemplate(prompt.UserPromptTemplate, map[string]string{
		"topic":           notes.Topic,
		"sources":         formatSources(notes.Sources),
		"key_facts":       bulletList(notes.KeyFacts),
		"suggested_angle": notes.SuggestedAngle,
	})
	if feedback != nil {
		task += feedbackSection(*feedback)
	}

	raw := a.client.Generate(ctx, task, prompt.SystemPrompt)

	var draft ArticleDraft
	if err := decodeJSON(raw, &draft); err != nil {
		return ArticleDraft{}, fmt.Errorf("write: %w", err)
	}
	if draft.Status == "" {
		draft.Status = StatusDraft
	}
	if feedback != nil {
		draft.Version = feedback.OriginatingIteration + 1
	} else if draft.Version < 1 {
		draft.Version = 1
	}
	now := time.Now()
	draft.CreatedAt = now
	draft.UpdatedAt = now
	if err := draft.Validate(); err != nil {
		return ArticleDraft{}, fmt.Errorf("write: %w", err)
	}
	return draft, nil
}

// Review judges a draft, taking the clickbait score as context, and
// returns the editorial verdict with feedback.
func (a *Agents) Review(ctx context.Context, draft ArticleDraft, clickbaitScore float64) (ReviewFeedback, error) {
	prompt, err := a.prompts.Agent("editor")
	if err != nil {
		return ReviewFeedback{}, err
	}
	task := fillTemplate(prompt.UserPromptTemplate, map[string]string{
		"title":           draft.Title,
		"lead":            draft.Lead,
		"body":            draft.Body,
		"tags":            strings.Join(draft.Tags, ", "),
		"word_count":      strconv.Itoa(draft.WordCount),
		"clickbait_score": fmt.Sprintf("%.2f", clickbaitScore),
	})

	raw := a.client.Generate(ctx, task, prompt.SystemPrompt)

	var feedback ReviewFeedback
	if err := decodeJSON(raw, &feedback); err != nil {
		return ReviewFeedback{}, fmt.Errorf("review: %w", err)
	}
	feedback.Decision = ParseDecision(string(feedback.Decision))
	if feedback.ReviewedAt.IsZero() {
		feedback.ReviewedAt = time.Now()
	}
	if err := feedback.Validate(); err != nil {
		return ReviewFeedback{}, fmt.Errorf("review: %w", err)
	}
	return feedback, nil
}

func formatSources(sources []SourceInfo) string {
	lines := make([]string, 0, len(sources))
	for _, src := range sources {
		url := src.URL
		if url == "" {
			url = "no url"
		}
		lines = append(lines, fmt.Sprintf("- %s (%s) - %s", src.Title, url, src.Summary))
	}
	return strings.Join(lines, "\n")
}

func bulletList(items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "- "+item)
	}
	return strings.Join(lines, "\n")
}

func feedbackSection(feedback ReviewFeedback) string {
	var sb strings.Builder
	sb.WriteString("\n\n=== EDITOR FEEDBACK (MUST BE ADDRESSED) ===\n")
	fmt.Fprintf(&sb, "Previous score: %.1f/10\n", feedback.OverallScore)
	fmt.Fprintf(&sb, "Decision: %s\n", strings.ToUpper(string(feedback.Decision)))
	sb.WriteString("\nWEAKNESSES TO FIX:\n")
	sb.WriteString(bulletList(feedback.Weaknesses))
	sb.WriteString("\n\nSPECIFIC SUGGESTIONS:\n")
	sb.WriteString(bulletList(feedback.SpecificSuggestions))
	if feedback.FactCheckNotes != "" {
		sb.WriteString("\n\nFACT-CHECK NOTES: " + feedback.FactCheckNotes)
	}
	sb.WriteString("\n\nIMPORTANT: Write a NEW, IMPROVED version of the article addressing the notes above.\n")
	return sb.String()
}
