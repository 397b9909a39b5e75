package newsroom

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
)

const (
	researcherSystem = "researcher-system"
	writerSystem     = "writer-system"
	editorSystem     = "editor-system"
)

func testPrompts() PromptSet {
	return PromptSet{
		"researcher": {
			SystemPrompt:       researcherSystem,
			UserPromptTemplate: "Research: {topic}",
		},
		"writer": {
			SystemPrompt:       writerSystem,
			UserPromptTemplate: "Topic: {topic}\nSources:\n{sources}\nFacts:\n{key_facts}\nAngle: {suggested_angle}",
		},
		"editor": {
			SystemPrompt:       editorSystem,
			UserPromptTemplate: "Title: {title}\nLead: {lead}\nBody: {body}\nTags: {tags}\nWords: {word_count}\nClickbait: {clickbait_score}",
		},
	}
}

const researchJSON = `{
	"topic": "Test Topic",
	"sources": [
		{"title": "Source 1", "url": "https://example.com", "summary": "Summary 1", "relevance_score": 0.9}
	],
	"key_facts": ["Fact 1", "Fact 2"],
	"suggested_angle": "Test angle"
}`

func draftJSON(title string) string {
	return fmt.Sprintf(`{
		"title": %q,
		"lead": "A test lead paragraph that is long enough for validation.",
		"body": "This is the main body of the test article. It contains several sentences with enough detail about the topic to comfortably clear the minimum body length required by the schema.",
		"tags": ["test", "article"],
		"word_count": 150
	}`, title)
}

func reviewJSON(decision string, score float64) string {
	return fmt.Sprintf(`{
		"decision": %q,
		"overall_score": %g,
		"strengths": ["Good structure"],
		"weaknesses": ["Could use more examples"],
		"specific_suggestions": ["Add more data"]
	}`, decision, score)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestAgents(backend Backend) *Agents {
	return NewAgents(NewClient(backend, discardLogger()), testPrompts())
}

// recordingBackend captures the prompts it was called with.
type recordingBackend struct {
	reply      string
	err        error
	lastSystem string
	lastUser   string
}

func (r *recordingBackend) Complete(_ context.Context, system, user string) (string, error) {
	r.lastSystem = system
	r.lastUser = user
	return r.reply, r.err
}

func TestResearchStep(t *testing.T) {
	backend := &recordingBackend{reply: researchJSON}
	agents := newTestAgents(backend)

	notes, err := agents.Research(context.Background(), "Test Topic")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if notes.Topic != "Test Topic" || len(notes.Sources) != 1 || len(notes.KeyFacts) != 2 {
		t.Fatalf("unexpected notes: %+v", notes)
	}
	if notes.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be set")
	}
	if backend.lastSystem != researcherSystem {
		t.Fatalf("wrong system prompt: %q", backend.lastSystem)
	}
	if !strings.Contains(backend.lastUser, "Research: Test Topic") {
		t.Fatalf("topic not substituted into prompt: %q", backend.lastUser)
	}
}

func TestResearchStepBackendFailureSurfacesAsMalformedOutput(t *testing.T) {
	// A transport failure becomes sentinel text, which then fails to parse.
	backend := &recordingBackend{err: errors.New("rate limited")}
	agents := newTestAgents(backend)

	_, err := agents.Research(context.Background(), "Test Topic")
	if !errors.Is(err, ErrMalformedOutput) {
		t.Fatalf("expected ErrMalformedOutput, got %v", err)
	}
}

func TestResearchStepValidationFailure(t *testing.T) {
	backend := &recordingBackend{reply: `{
		"topic": "Test Topic",
		"sources": [{"title": "S", "summary": "s", "relevance_score": 1.5}],
		"key_facts": [],
		"suggested_angle": "angle"
	}`}
	agents := newTestAgents(backend)

	_, err := agents.Research(context.Background(), "Test Topic")
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "relevance_score" {
		t.Fatalf("expected relevance_score ValidationError, got %v", err)
	}
}

func TestWriteStepFirstDraftVersionOne(t *testing.T) {
	backend := &recordingBackend{reply: draftJSON("A First Draft Headline")}
	agents := newTestAgents(backend)

	notes := ResearchNotes{Topic: "Test Topic", SuggestedAngle: "angle"}
	draft, err := agents.Write(context.Background(), notes, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if draft.Version != 1 {
		t.Fatalf("first draft version = %d, want 1", draft.Version)
	}
	if draft.Status != StatusDraft {
		t.Fatalf("status = %q, want draft", draft.Status)
	}
	if strings.Contains(backend.lastUser, "EDITOR FEEDBACK") {
		t.Fatal("feedback section must not appear without feedback")
	}
}

func TestWriteStepVersionFollowsFeedbackIteration(t *testing.T) {
	backend := &recordingBackend{reply: draftJSON("A Revised Draft Headline")}
	agents := newTestAgents(backend)

	notes := ResearchNotes{Topic: "Test Topic", SuggestedAngle: "angle"}
	feedback := &ReviewFeedback{
		Decision:             DecisionRevise,
		OverallScore:         5.5,
		Weaknesses:           []string{"no expert quote"},
		SpecificSuggestions:  []string{"add a quote"},
		FactCheckNotes:       "verify the 80% figure",
		OriginatingIteration: 3,
	}
	draft, err := agents.Write(context.Background(), notes, feedback)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if draft.Version != 4 {
		t.Fatalf("version = %d, want feedback iteration + 1 = 4", draft.Version)
	}
	for _, want := range []string{
		"EDITOR FEEDBACK",
		"Previous score: 5.5/10",
		"Decision: REVISE",
		"- no expert quote",
		"- add a quote",
		"FACT-CHECK NOTES: verify the 80% figure",
		"NEW, IMPROVED version",
	} {
		if !strings.Contains(backend.lastUser, want) {
			t.Errorf("feedback section missing %q in prompt:\n%s", want, backend.lastUser)
		}
	}
}

func TestWriteStepFormatsSources(t *testing.T) {
	backend := &recordingBackend{reply: draftJSON("A Draft With Sources Headline")}
	agents := newTestAgents(backend)

	notes := ResearchNotes{
		Topic:          "Test Topic",
		SuggestedAngle: "angle",
		Sources: []SourceInfo{
			{Title: "With URL", URL: "https://example.com", Summary: "sum", RelevanceScore: 0.8},
			{Title: "Without URL", Summary: "other", RelevanceScore: 0.4},
		},
		KeyFacts: []string{"a fact"},
	}
	if _, err := agents.Write(context.Background(), notes, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(backend.lastUser, "- With URL (https://example.com) - sum") {
		t.Fatalf("source line missing:\n%s", backend.lastUser)
	}
	if !strings.Contains(backend.lastUser, "- Without URL (no url) - other") {
		t.Fatalf("url placeholder missing:\n%s", backend.lastUser)
	}
	if !strings.Contains(backend.lastUser, "- a fact") {
		t.Fatalf("key fact bullet missing:\n%s", backend.lastUser)
	}
}

func TestReviewStep(t *testing.T) {
	backend := &recordingBackend{reply: reviewJSON("approve", 8.5)}
	agents := newTestAgents(backend)

	draft := validDraft()
	feedback, err := agents.Review(context.Background(), draft, 0.42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if feedback.Decision != DecisionApprove || feedback.OverallScore != 8.5 {
		t.Fatalf("unexpected feedback: %+v", feedback)
	}
	if !strings.Contains(backend.lastUser, "Clickbait: 0.42") {
		t.Fatalf("clickbait score not rendered to two decimals:\n%s", backend.lastUser)
	}
}

func TestReviewStepUnknownDecisionDefaultsToRevise(t *testing.T) {
	backend := &recordingBackend{reply: reviewJSON("needs work", 6.0)}
	agents := newTestAgents(backend)

	feedback, err := agents.Review(context.Background(), validDraft(), 0.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if feedback.Decision != DecisionRevise {
		t.Fatalf("decision = %q, want revise fallback", feedback.Decision)
	}
}

func TestAgentUnknownPromptName(t *testing.T) {
	prompts := testPrompts()
	_, err := prompts.Agent("publisher")
	if err == nil {
		t.Fatal("expected error for unknown agent")
	}
	msg := err.Error()
	if !strings.Contains(msg, "publisher") {
		t.Fatalf("error should name the unknown agent: %v", err)
	}
	for _, known := range []string{"editor", "researcher", "writer"} {
		if !strings.Contains(msg, known) {
			t.Fatalf("error should list known agent %q: %v", known, err)
		}
	}
}
