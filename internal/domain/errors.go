package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFoundOrAlreadyProcessed covers both "request does not exist" and
// "request is no longer in the expected status". The ledger treats a
// non-matching row as absent, so a racing second review or sponsor
// observes this error rather than double-applying.
var ErrNotFoundOrAlreadyProcessed = errors.New("request not found or already processed")

// ErrUnauthorized is returned on a role mismatch, before any ledger
// logic runs.
var ErrUnauthorized = errors.New("caller role not permitted for this operation")

// ValidationError reports missing or malformed input with field-level
// detail. It is surfaced to the caller as a rejection and never retried.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

func (e *ValidationError) Add(field, msg string) {
	e.Fields[field] = msg
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// OverfundingError is returned when a contribution would push the
// completed total past the requested amount. The amount is never
// clamped or partially applied.
type OverfundingError struct {
	RequestID      int32
	AttemptedCents int64
	RemainingCents int64
}

func (e *OverfundingError) Error() string {
	return fmt.Sprintf("contribution of %d cents exceeds remaining need of %d cents for request %d",
		e.AttemptedCents, e.RemainingCents, e.RequestID)
}
