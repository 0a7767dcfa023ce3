package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for simple conditions without extra context.
var (
	ErrNotFound         = errors.New("record not found")
	ErrProviderNotFound = errors.New("provider not found")
	ErrReasonRequired   = errors.New("a moderation reason is required for this transition")
	ErrAlreadyRated     = errors.New("contract rating was already aggregated")
	// ErrConflict signals an optimistic-concurrency loss: the record changed
	// between read and write. Safe for the caller to retry once after
	// re-reading; all other errors are not retryable.
	ErrConflict = errors.New("record was modified concurrently")
)

// TransitionError is returned when a target status is not reachable from
// the current status for a record's kind.
type TransitionError struct {
	Kind    Kind
	Current Status
	Target  Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: cannot transition from %q to %q", e.Kind, e.Current, e.Target)
}

// UnauthorizedError is returned when the actor's role is insufficient for
// the requested transition.
type UnauthorizedError struct {
	Actor  Actor
	Target Status
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("actor %q (%s) may not transition to %q", e.Actor.ID, e.Actor.Role, e.Target)
}

// InvalidStateError is returned when an operation other than a transition
// (e.g. rating) is attempted against a record in the wrong status.
type InvalidStateError struct {
	Kind   Kind
	Status Status
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s in status %q does not allow this operation", e.Kind, e.Status)
}

// InvalidRatingError is returned for a rating outside the 1..5 range.
type InvalidRatingError struct {
	Rating int
}

func (e *InvalidRatingError) Error() string {
	return fmt.Sprintf("rating %d is out of range (1-5)", e.Rating)
}
