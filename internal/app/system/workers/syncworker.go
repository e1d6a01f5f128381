// internal/app/system/workers/syncworker.go
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/syncboard/syncboard/internal/app/reconcile"
	"github.com/syncboard/syncboard/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Runner triggers one reconciliation run.
type Runner interface {
	Run(ctx context.Context) reconcile.Outcome
}

// SyncWorker is a background worker that triggers reconciliation runs on a
// fixed interval. The run-level lease makes overlap with manually triggered
// syncs safe: whichever side loses the lease simply skips its run.
type SyncWorker struct {
	runner   Runner
	log      *zap.Logger
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewSyncWorker creates a periodic sync worker.
func NewSyncWorker(runner Runner, logger *zap.Logger, interval time.Duration) *SyncWorker {
	return &SyncWorker{
		runner:   runner,
		log:      logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background sync loop.
func (w *SyncWorker) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("sync worker started", zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *SyncWorker) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("sync worker stopped")
}

func (w *SyncWorker) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.sync()
		}
	}
}

func (w *SyncWorker) sync() {
	ctx, cancel := context.WithTimeout(context.Background(), timeouts.Sync())
	defer cancel()

	outcome := w.runner.Run(ctx)
	if outcome.OK() {
		w.log.Info("scheduled sync completed", zap.String("run_id", outcome.RunID))
		return
	}
	w.log.Warn("scheduled sync did not complete",
		zap.String("run_id", outcome.RunID),
		zap.String("message", outcome.Message))
}
