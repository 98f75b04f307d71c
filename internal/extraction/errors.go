package extraction

import (
	"fmt"

	"github.com/spigell/resume-ranker/internal/ai"
)

// Failure reports that the gateway could not produce usable data.
type Failure struct {
	Task  ai.Task
	Cause error
}

func (e *Failure) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s extraction failed: %v", e.Task, e.Cause)
	}
	return fmt.Sprintf("%s extraction failed", e.Task)
}

func (e *Failure) Unwrap() error {
	return e.Cause
}

// MalformedError reports a gateway answer that holds no parseable JSON object.
type MalformedError struct {
	Reason string
	// Preview is a truncated copy of the offending payload.
	Preview string
	Cause   error
}

func (e *MalformedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed extraction: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("malformed extraction: %s", e.Reason)
}

func (e *MalformedError) Unwrap() error {
	return e.Cause
}
