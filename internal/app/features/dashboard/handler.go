// internal/app/features/dashboard/handler.go
package dashboard

import (
	"context"
	"errors"
	"net/http"

	"github.com/syncboard/syncboard/internal/app/analytics"
	"github.com/syncboard/syncboard/internal/app/system/httpjson"
	"github.com/syncboard/syncboard/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler serves the dashboard aggregate endpoints.
type Handler struct {
	Agg *analytics.Aggregator
	Log *zap.Logger
}

// NewHandler constructs a dashboard Handler.
func NewHandler(agg *analytics.Aggregator, logger *zap.Logger) *Handler {
	return &Handler{Agg: agg, Log: logger}
}

type dataResponse struct {
	Status   string `json:"status"`
	Code     int    `json:"code"`
	Data     any    `json:"data"`
	Metadata any    `json:"metadata,omitempty"`
}

// Summary handles GET /summary.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sum, err := h.Agg.Summary(ctx)
	if err != nil {
		h.Log.Error("summary query failed", zap.Error(err))
		httpjson.FailErr(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, dataResponse{
		Status: httpjson.StatusSuccess,
		Code:   http.StatusOK,
		Data:   sum,
	})
}

// PieChart handles GET /pie-chart: the category distribution, optionally
// restricted by a startDate/endDate query window.
func (h *Handler) PieChart(w http.ResponseWriter, r *http.Request) {
	win, ok := h.parseWindow(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	dist, err := h.Agg.CategoryDistribution(ctx, win)
	if err != nil {
		h.Log.Error("category distribution query failed", zap.Error(err))
		httpjson.FailErr(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, dataResponse{
		Status:   httpjson.StatusSuccess,
		Code:     http.StatusOK,
		Data:     dist.Data,
		Metadata: dist.Meta,
	})
}

// ColumnChart handles GET /column-chart: the daily activity time series.
func (h *Handler) ColumnChart(w http.ResponseWriter, r *http.Request) {
	win, ok := h.parseWindow(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	series, err := h.Agg.ActivityTimeSeries(ctx, win)
	if err != nil {
		h.Log.Error("time series query failed", zap.Error(err))
		httpjson.FailErr(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, dataResponse{
		Status:   httpjson.StatusSuccess,
		Code:     http.StatusOK,
		Data:     series.Data,
		Metadata: series.Meta,
	})
}

// parseWindow validates the query window before any storage call; on a
// validation failure it writes the 400 envelope and reports false.
func (h *Handler) parseWindow(w http.ResponseWriter, r *http.Request) (*analytics.Window, bool) {
	win, err := analytics.ParseWindow(r.URL.Query().Get("startDate"), r.URL.Query().Get("endDate"))
	if err != nil {
		switch {
		case errors.Is(err, analytics.ErrInvalidDate):
			httpjson.Fail(w, http.StatusBadRequest, "Invalid date format. Please use ISO format (YYYY-MM-DD)")
		case errors.Is(err, analytics.ErrInvalidRange):
			httpjson.Fail(w, http.StatusBadRequest, "startDate cannot be after endDate")
		default:
			httpjson.Fail(w, http.StatusBadRequest, err.Error())
		}
		return nil, false
	}
	return win, true
}
