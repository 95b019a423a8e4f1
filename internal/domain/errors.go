package domain

import "fmt"

// ValidationError reports a record field that is missing, out of its physical
// range, or inconsistent with another field. It is recoverable at the
// per-record level: the record is skipped or marked, the run continues.
type ValidationError struct {
	Field      string // observation field name, e.g. "humidity_min"
	Constraint string // human-readable description of the violated constraint
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid observation: field %s: %s", e.Field, e.Constraint)
}

// ComputationError reports a degenerate numeric state reached while combining
// terms (zero denominator, non-finite intermediate). Same per-record recovery
// policy as ValidationError; with validated inputs it should not occur.
type ComputationError struct {
	Term   string // the term that degenerated, e.g. "denominator"
	Reason string
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("et0 computation failed: term %s: %s", e.Term, e.Reason)
}
