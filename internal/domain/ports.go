package domain

import "context"

// RecordRepository defines the persistence contract for moderated records.
// Update is conditioned on the status the caller previously read, so a
// losing concurrent writer receives ErrConflict instead of silently
// overwriting.
type RecordRepository interface {
	Create(ctx context.Context, record Record) error
	GetByID(ctx context.Context, id string) (Record, error)
	List(ctx context.Context, filter ListFilter) ([]Record, error)
	Update(ctx context.Context, record Record, expectedStatus Status) error
}

// ListFilter holds optional criteria for listing records.
type ListFilter struct {
	Kind    *Kind
	Status  *Status
	OwnerID string
	Limit   int
	Offset  int
}

// ProviderRepository defines the persistence contract for provider
// profiles. List returns profiles for search to filter and order; the
// optional kind narrows the scan.
type ProviderRepository interface {
	Create(ctx context.Context, profile ProviderProfile) error
	GetByID(ctx context.Context, id string) (ProviderProfile, error)
	List(ctx context.Context, kind *ProviderKind) ([]ProviderProfile, error)
}

// RatingStore persists the hand-off of a completed contract's rating to
// its provider as one atomic step: the contract's aggregated flag flips
// (from false, else ErrAlreadyRated) and the provider's running average
// and count are written (conditioned on the prior count, else ErrConflict).
type RatingStore interface {
	Aggregate(ctx context.Context, contract Record, provider ProviderProfile) error
}

// TransitionValidator checks that a target status is reachable from the
// current status for a record's kind.
type TransitionValidator interface {
	Apply(ctx context.Context, kind Kind, current, target Status) error
}

// EventPublisher defines the contract for emitting transition events.
type EventPublisher interface {
	Publish(ctx context.Context, event TransitionApplied) error
}
