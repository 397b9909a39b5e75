package newsroom

import (
	"context"
	"log/slog"
	"time"
)

// Orchestrator drives one newsroom cycle: research once, then loop
// write → clickbait score → review up to a configured bound, threading
// the latest review back into the writer. It holds no state between
// cycles; every Run produces an exclusively-owned CycleResult.
type Orchestrator struct {
	agents *Agents
	score  func(title string) float64
	logger *slog.Logger
}

func NewOrchestrator(agents *Agents, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		agents: agents,
		score:  ClickbaitScore,
		logger: logger.With("component", "orchestrator"),
	}
}

// Run executes one full cycle for a topic. It never returns an error:
// any step failure yields Status CycleError with the message captured and
// partial progress (research notes, the last draft) preserved.
//
// Decision handling: APPROVE terminates successfully on any iteration.
// REJECT re-loops with feedback while iterations remain, then terminates
// as rejected. REVISE re-loops, and exhausting the bound without an
// approval yields max_iterations with the last draft kept — a non-perfect
// article is still delivered.
func (o *Orchestrator) Run(ctx context.Context, topic string, maxIterations int) CycleResult {
	if maxIterations < 1 {
		maxIterations = 1
	}
	log := o.logger.With("topic", topic)
	log.Info("cycle started", "max_iterations", maxIterations)

	result := CycleResult{
		Status:    CycleError,
		Topic:     topic,
		StartedAt: time.Now(),
	}

	notes, err := o.agents.Research(ctx, topic)
	if err != nil {
		log.Error("research failed", "error", err)
		return o.finish(result, CycleError, err.Error())
	}
	result.ResearchNotes = &notes
	log.Info("research done", "sources", len(notes.Sources), "facts", len(notes.KeyFacts), "angle", notes.SuggestedAngle)

	var previousFeedback *ReviewFeedback
	for iteration := 1; iteration <= maxIterations; iteration++ {
		result.Iterations = iteration
		log.Info("iteration started", "iteration", iteration)

		draft, err := o.agents.Write(ctx, notes, previousFeedback)
		if err != nil {
			log.Error("write failed", "iteration", iteration, "error", err)
			return o.finish(result, CycleError, err.Error())
		}
		result.FinalDraft = &draft
		log.Info("draft written", "title", draft.Title, "words", draft.WordCount, "version", draft.Version)

		clickbaitScore := o.score(draft.Title)
		log.Info("clickbait scored", "score", clickbaitScore)

		review, err := o.agents.Review(ctx, draft, clickbaitScore)
		if err != nil {
			log.Error("review failed", "iteration", iteration, "error", err)
			return o.finish(result, CycleError, err.Error())
		}
		review.OriginatingIteration = iteration
		result.FinalReview = &review
		log.Info("review done", "decision", review.Decision, "score", review.OverallScore)

		switch review.Decision {
		case DecisionApprove:
			log.Info("article approved", "iterations", iteration)
			return o.finish(result, CycleSuccess, "")
		case DecisionReject:
			// A reject is treated as "revise harder" while iterations remain.
			if iteration < maxIterations {
				log.Warn("article rejected, retrying with feedback", "iteration", iteration)
				previousFeedback = &review
				continue
			}
			log.Warn("article rejected", "iterations", iteration)
			return o.finish(result, CycleRejected, "")
		default: // revise
			if iteration < maxIterations {
				log.Info("revision requested", "suggestions", len(review.SpecificSuggestions))
				previousFeedback = &review
			}
		}
	}

	log.Warn("iteration limit reached without approval", "max_iterations", maxIterations)
	return o.finish(result, CycleMaxIterations, "")
}

func (o *Orchestrator) finish(result CycleResult, status CycleStatus, errMessage string) CycleResult {
	result.Status = status
	result.ErrorMessage = errMessage
	result.FinishedAt = time.Now()
	return result
}
