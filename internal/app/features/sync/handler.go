// internal/app/features/sync/handler.go
package sync

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/syncboard/syncboard/internal/app/reconcile"
	"github.com/syncboard/syncboard/internal/app/system/httpjson"
	"github.com/syncboard/syncboard/internal/app/system/timeouts"
	"github.com/syncboard/syncboard/internal/domain/models"
	"go.uber.org/zap"
)

// Runner executes one reconciliation run.
type Runner interface {
	Run(ctx context.Context) reconcile.Outcome
}

// StatusReader reads the outcome of the most recent run.
type StatusReader interface {
	Last(ctx context.Context) (*models.SyncLog, error)
}

// Handler serves the data synchronization endpoints.
type Handler struct {
	Runner Runner
	Status StatusReader
	Log    *zap.Logger
}

// NewHandler constructs a sync Handler.
func NewHandler(runner Runner, status StatusReader, logger *zap.Logger) *Handler {
	return &Handler{Runner: runner, Status: status, Log: logger}
}

type runResponse struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// RunSync handles POST /sync: it triggers a reconciliation run and maps the
// outcome onto the response. The run itself never surfaces a raw error; a
// failed run is a well-formed 400 response carrying the cause.
func (h *Handler) RunSync(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Sync())
	defer cancel()

	out := h.Runner.Run(ctx)
	if out.OK() {
		httpjson.Write(w, http.StatusOK, runResponse{
			Status:  out.Status,
			Code:    out.Code,
			Message: out.Message,
		})
		return
	}
	httpjson.Write(w, http.StatusBadRequest, runResponse{
		Status: out.Status,
		Code:   out.Code,
		Error:  out.Message,
	})
}

type lastSyncResponse struct {
	Status       string    `json:"status"`
	Code         int       `json:"code"`
	LastSyncTime time.Time `json:"lastSyncTime"`
	SyncStatus   string    `json:"syncStatus"`
	SyncCode     int       `json:"syncCode"`
	Message      string    `json:"message"`
	RunID        string    `json:"runId,omitempty"`
}

// LastSync handles GET /last-sync: the read-only projection of the singleton
// sync log. 404 when no reconciliation has ever run.
func (h *Handler) LastSync(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	log, err := h.Status.Last(ctx)
	if err != nil {
		if errors.Is(err, reconcile.ErrNoSyncLog) {
			httpjson.Fail(w, http.StatusNotFound, "No sync logs found")
			return
		}
		h.Log.Error("last-sync lookup failed", zap.Error(err))
		httpjson.FailErr(w, err)
		return
	}

	httpjson.Write(w, http.StatusOK, lastSyncResponse{
		Status:       httpjson.StatusSuccess,
		Code:         http.StatusOK,
		LastSyncTime: log.LastSyncTime,
		SyncStatus:   log.Status,
		SyncCode:     log.Code,
		Message:      log.Message,
		RunID:        log.RunID,
	})
}
