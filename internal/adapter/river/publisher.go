package river

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/riverqueue/river"

	"github.com/petmercado/petmercado/internal/domain"
)

// Compile-time check: Publisher implements domain.EventPublisher.
var _ domain.EventPublisher = (*Publisher)(nil)

// TransitionJobArgs carries a transition event into the job queue. River
// serializes this as JSON into its job table; the worker never needs to
// query the records back.
type TransitionJobArgs struct {
	RecordKind string `json:"kind"`
	RecordID   string `json:"record_id"`
	From       string `json:"from"`
	To         string `json:"to"`
}

// Kind returns the unique job type identifier used by River's job routing.
func (TransitionJobArgs) Kind() string { return "transition.applied" }

// Client is the River client type parameterized for SQLite (*sql.Tx).
type Client = river.Client[*sql.Tx]

// Publisher implements domain.EventPublisher by enqueuing River jobs.
// Delivery to the notification layer is fire-and-forget from the core's
// perspective; the queue owns retries.
type Publisher struct {
	client *Client
}

// NewPublisher creates a publisher backed by the given River client.
func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// Publish enqueues a transition event as an async job in River.
func (p *Publisher) Publish(ctx context.Context, event domain.TransitionApplied) error {
	_, err := p.client.Insert(ctx, TransitionJobArgs{
		RecordKind: string(event.Kind),
		RecordID:   event.RecordID,
		From:       string(event.From),
		To:         string(event.To),
	}, nil)
	if err != nil {
		return fmt.Errorf("enqueuing transition job: %w", err)
	}
	return nil
}
