package newsroom

import (
	"errors"
	"fmt"
)

// ErrMalformedOutput marks model output that is not valid JSON after
// stripping an optional markdown code fence. It is fatal to the enclosing
// agent step; no retry happens below the revision loop.
var ErrMalformedOutput = errors.New("malformed model output")

// ValidationError reports a schema field whose parsed value violates its
// declared constraint.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
