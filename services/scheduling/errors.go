package scheduling

import "fmt"

// InvalidInputError reports malformed caller arguments: a non-positive
// service duration, an inverted date range, an unknown service. Never
// retried automatically.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

func NewInvalidInputError(format string, args ...any) error {
	return &InvalidInputError{Reason: fmt.Sprintf(format, args...)}
}

// ValidationError reports a field-level rule violation from the block-period
// writer. The caller should re-prompt the user with the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// DataUnavailableError is raised by the aggregator only when every member's
// availability fetch failed. Partial failures are absorbed into the merged
// result instead.
type DataUnavailableError struct {
	FailedMembers int
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("availability unavailable: all %d member fetches failed", e.FailedMembers)
}
