// internal/app/reconcile/reconciler.go
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	leasestore "github.com/syncboard/syncboard/internal/app/store/lease"
	"github.com/syncboard/syncboard/internal/domain/models"
	"go.uber.org/zap"
)

// Source yields the current snapshot of external user records.
type Source interface {
	Fetch(ctx context.Context) ([]models.SourceUser, error)
}

// UserWriter merges one reconciled user into storage. The implementation must
// be a single atomic upsert keyed on the external id, with createdAt applied
// on insert only.
type UserWriter interface {
	Upsert(ctx context.Context, u models.User) error
}

// LogWriter records the outcome of a reconciliation attempt to the singleton
// sync log.
type LogWriter interface {
	Write(ctx context.Context, log models.SyncLog) error
}

// Leaser provides run-level mutual exclusion between reconciliation runs.
type Leaser interface {
	Acquire(ctx context.Context, owner string) error
	Release(ctx context.Context, owner string) error
}

// Reconciler merges the fetched snapshot into local storage and records a
// single outcome log entry per run.
type Reconciler struct {
	source Source
	users  UserWriter
	logs   LogWriter
	lease  Leaser
	log    *zap.Logger

	now func() time.Time
}

// New creates a Reconciler.
func New(source Source, users UserWriter, logs LogWriter, lease Leaser, logger *zap.Logger) *Reconciler {
	return &Reconciler{
		source: source,
		users:  users,
		logs:   logs,
		lease:  lease,
		log:    logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Run executes one reconciliation: fetch the snapshot, upsert every record,
// then write the singleton sync log with the outcome. Re-running the same
// snapshot is idempotent: no duplicate ids, no changed createdAt.
//
// Failure handling: a fetch error or the first upsert error reports the whole
// run as failed; upserts already applied in the same run stay applied, and
// the store converges fully on the next successful run. A run that cannot
// take the lease returns a failure without writing the log — the holding run
// owns the singleton record.
func (r *Reconciler) Run(ctx context.Context) Outcome {
	runID := uuid.NewString()
	log := r.log.With(zap.String("run_id", runID))

	if err := r.lease.Acquire(ctx, runID); err != nil {
		if errors.Is(err, leasestore.ErrHeld) {
			log.Warn("sync lease held, skipping run")
		} else {
			log.Error("sync lease acquire failed", zap.Error(err))
		}
		return failure(runID, err)
	}
	defer func() {
		if err := r.lease.Release(context.WithoutCancel(ctx), runID); err != nil {
			log.Warn("sync lease release failed", zap.Error(err))
		}
	}()

	outcome := r.reconcile(ctx, runID, log)

	// Write the outcome even when the run failed because ctx itself expired;
	// the singleton must record every attempt.
	if err := r.logs.Write(context.WithoutCancel(ctx), models.SyncLog{
		LastSyncTime: r.now(),
		Status:       outcome.Status,
		Code:         outcome.Code,
		Message:      outcome.Message,
		RunID:        runID,
	}); err != nil {
		// The outcome stands even if the log write fails; the next attempt
		// overwrites the singleton anyway.
		log.Error("sync log write failed", zap.Error(err))
	}

	return outcome
}

func (r *Reconciler) reconcile(ctx context.Context, runID string, log *zap.Logger) Outcome {
	snapshot, err := r.source.Fetch(ctx)
	if err != nil {
		return failure(runID, err)
	}

	now := r.now()
	for _, src := range snapshot {
		if err := r.users.Upsert(ctx, src.User(now)); err != nil {
			log.Error("user upsert failed", zap.Int("user_id", src.ID), zap.Error(err))
			return failure(runID, fmt.Errorf("upsert user %d: %w", src.ID, err))
		}
	}

	log.Info("sync completed", zap.Int("records", len(snapshot)))
	return success(runID)
}
