package scoring

import "fmt"

// PreconditionError reports a scoring or ingestion call made before its inputs exist.
type PreconditionError struct {
	Missing string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition failed: %s is missing", e.Missing)
}
