package newsroom

import (
	"encoding/json"
	"fmt"
	"strings"
)

// stripFences removes one leading/trailing markdown code fence, plus a
// "json" language tag, so that completions wrapping JSON in prose
// formatting still parse. Text without a fence passes through trimmed.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	parts := strings.SplitN(s, "```", 3)
	if len(parts) < 2 {
		return s
	}
	s = strings.TrimPrefix(parts[1], "json")
	return strings.TrimSpace(s)
}

// decodeJSON parses raw model output into v after fence stripping.
// Failure wraps ErrMalformedOutput and is fatal to the enclosing step;
// retrying is deliberately not done here.
func decodeJSON(raw string, v any) error {
	body := stripFences(raw)
	if err := json.Unmarshal([]byte(body), v); err != nil {
		return fmt.Errorf("%w: %v (output starts with %q)", ErrMalformedOutput, err, truncate(body, 80))
	}
	return nil
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
