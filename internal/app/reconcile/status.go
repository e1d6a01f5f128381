// internal/app/reconcile/status.go
package reconcile

import (
	"context"
	"errors"

	"github.com/syncboard/syncboard/internal/domain/models"
)

// ErrNoSyncLog is returned by StatusReader.Last when no reconciliation has
// ever run.
var ErrNoSyncLog = errors.New("no sync logs found")

// LogReader reads the singleton sync log; nil means no log exists yet.
type LogReader interface {
	Last(ctx context.Context) (*models.SyncLog, error)
}

// StatusReader is the read-only projection of the sync-status record.
type StatusReader struct {
	logs LogReader
}

// NewStatusReader creates a StatusReader over the given log store.
func NewStatusReader(logs LogReader) *StatusReader {
	return &StatusReader{logs: logs}
}

// Last returns the outcome of the most recent reconciliation attempt, or
// ErrNoSyncLog when none has happened.
func (s *StatusReader) Last(ctx context.Context) (*models.SyncLog, error) {
	log, err := s.logs.Last(ctx)
	if err != nil {
		return nil, err
	}
	if log == nil {
		return nil, ErrNoSyncLog
	}
	return log, nil
}
