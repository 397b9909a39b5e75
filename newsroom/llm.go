package newsroom

import (
	"context"
	"log/slog"
)

// Backend abstracts the text-generation model so it can be replaced or
// scripted in tests.
type Backend interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Settings carries the configuration a concrete backend needs.
type Settings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

const errorSentinel = "ERROR:"

// Client wraps a Backend and never fails: any transport, auth or quota
// error is converted into sentinel text prefixed "ERROR:". Callers that
// try to parse the sentinel as JSON fail at the parsing stage, which is
// the designed propagation path — the failure policy lives in one place
// instead of at every call site.
type Client struct {
	backend Backend
	logger  *slog.Logger
}

func NewClient(backend Backend, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{backend: backend, logger: logger.With("component", "llm")}
}

// Generate sends a role instruction and a task instruction to the backend
// and returns the raw completion text, or sentinel text on failure.
func (c *Client) Generate(ctx context.Context, taskPrompt, rolePrompt string) string {
	raw, err := c.backend.Complete(ctx, rolePrompt, taskPrompt)
	if err != nil {
		c.logger.Error("completion failed", "error", err)
		return errorSentinel + " completion failed: " + err.Error()
	}
	return raw
}
