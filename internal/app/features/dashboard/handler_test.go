package dashboard_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/syncboard/syncboard/internal/app/analytics"
	"github.com/syncboard/syncboard/internal/app/features/dashboard"
	"github.com/syncboard/syncboard/internal/testutil"
	"go.uber.org/zap"
)

func newHandler(t *testing.T) (*dashboard.Handler, *testutil.MemUserStore) {
	t.Helper()
	store := testutil.NewMemUserStore()
	agg := analytics.New(store)
	return dashboard.NewHandler(agg, zap.NewNop()), store
}

func seed(t *testing.T, store *testutil.MemUserStore, id int, company string, ts time.Time) {
	t.Helper()
	if err := store.Insert(context.Background(), testutil.BuildUser(id, company, ts)); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func TestSummary(t *testing.T) {
	h, store := newHandler(t)
	ts := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	seed(t, store, 1, "Foo", ts)
	seed(t, store, 2, "Bar", ts)

	rec := httptest.NewRecorder()
	h.Summary(rec, httptest.NewRequest(http.MethodGet, "/summary", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	var body struct {
		Status string `json:"status"`
		Data   struct {
			TotalUsers      int64 `json:"totalUsers"`
			TotalCategories int   `json:"totalCategories"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.TotalUsers != 2 || body.Data.TotalCategories != 2 {
		t.Errorf("data: got %+v", body.Data)
	}
}

func TestPieChart_WindowValidation(t *testing.T) {
	h, _ := newHandler(t)

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{name: "no window", query: "", want: http.StatusOK},
		{name: "valid window", query: "?startDate=2025-01-01&endDate=2025-01-31", want: http.StatusOK},
		{name: "bad date", query: "?startDate=not-a-date&endDate=2025-01-31", want: http.StatusBadRequest},
		{name: "inverted range", query: "?startDate=2025-02-01&endDate=2025-01-01", want: http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.PieChart(rec, httptest.NewRequest(http.MethodGet, "/pie-chart"+tc.query, nil))
			if rec.Code != tc.want {
				t.Errorf("status: got %d, want %d (body %s)", rec.Code, tc.want, rec.Body.String())
			}
		})
	}
}

func TestPieChart_Data(t *testing.T) {
	h, store := newHandler(t)
	ts := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	seed(t, store, 1, "Foo", ts)
	seed(t, store, 2, "Foo", ts)
	seed(t, store, 3, "Bar", ts)

	rec := httptest.NewRecorder()
	h.PieChart(rec, httptest.NewRequest(http.MethodGet, "/pie-chart", nil))

	var body struct {
		Data []struct {
			Category string `json:"category"`
			Count    int64  `json:"count"`
		} `json:"data"`
		Metadata struct {
			TotalCategories int   `json:"totalCategories"`
			TotalCount      int64 `json:"totalCount"`
		} `json:"metadata"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Metadata.TotalCategories != 2 || body.Metadata.TotalCount != 3 {
		t.Errorf("metadata: got %+v", body.Metadata)
	}
}

func TestColumnChart_DefaultWindowAndEcho(t *testing.T) {
	h, store := newHandler(t)
	seed(t, store, 1, "Foo", time.Now().UTC().AddDate(0, 0, -3))

	rec := httptest.NewRecorder()
	h.ColumnChart(rec, httptest.NewRequest(http.MethodGet, "/column-chart", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	var body struct {
		Data     []struct{ Date string } `json:"data"`
		Metadata struct {
			TotalDays int `json:"totalDays"`
			DateRange struct {
				StartDate string `json:"startDate"`
				EndDate   string `json:"endDate"`
			} `json:"dateRange"`
		} `json:"metadata"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Metadata.TotalDays != 1 {
		t.Errorf("totalDays: got %d, want 1", body.Metadata.TotalDays)
	}
	if body.Metadata.DateRange.StartDate == "" || body.Metadata.DateRange.EndDate == "" {
		t.Errorf("dateRange echo missing: %+v", body.Metadata.DateRange)
	}
}

func TestColumnChart_InvalidWindow(t *testing.T) {
	h, _ := newHandler(t)

	rec := httptest.NewRecorder()
	h.ColumnChart(rec, httptest.NewRequest(http.MethodGet, "/column-chart?startDate=2025-13-99&endDate=2025-01-01", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
	var body struct {
		Status string `json:"status"`
		Code   int    `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "failed" || body.Code != 400 {
		t.Errorf("body: got %+v", body)
	}
}
