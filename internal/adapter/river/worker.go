package river

import (
	"context"
	"log/slog"

	"github.com/riverqueue/river"
)

// TransitionWorker processes transition event jobs from the River queue.
// For now it logs the event; this is where toast/push notification
// dispatch plugs in.
type TransitionWorker struct {
	river.WorkerDefaults[TransitionJobArgs]
}

// Work processes a single transition event job.
func (w *TransitionWorker) Work(ctx context.Context, job *river.Job[TransitionJobArgs]) error {
	slog.InfoContext(ctx, "transition applied",
		"kind", job.Args.RecordKind,
		"record_id", job.Args.RecordID,
		"from", job.Args.From,
		"to", job.Args.To,
		"job_id", job.ID,
		"attempt", job.Attempt,
	)
	return nil
}
