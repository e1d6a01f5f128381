// internal/app/analytics/aggregator.go
package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/syncboard/syncboard/internal/domain/models"
)

// defaultTimeSeriesDays is the trailing window applied when the time series
// is queried without bounds.
const defaultTimeSeriesDays = 30

// Store is the slice of the user store the aggregator reads from. All three
// queries are pure functions of stored data at call time; nothing is cached.
type Store interface {
	CountUsers(ctx context.Context) (int64, error)
	CountCategories(ctx context.Context) (int, error)
	CategoryCounts(ctx context.Context, start, end *time.Time) ([]models.CategoryCount, error)
	DailyCreatedCounts(ctx context.Context, start, end time.Time) ([]models.DateCount, error)
}

// Aggregator answers the dashboard's analytical queries against reconciled
// user data. It never touches sync-status records and runs independently of
// the reconciler.
type Aggregator struct {
	store Store

	now func() time.Time
}

// New creates an Aggregator over the given store.
func New(store Store) *Aggregator {
	return &Aggregator{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Summary holds the dashboard's headline totals.
type Summary struct {
	TotalUsers      int64 `json:"totalUsers"`
	TotalCategories int   `json:"totalCategories"`
}

// Summary returns the total user count and the number of distinct categories.
func (a *Aggregator) Summary(ctx context.Context) (Summary, error) {
	totalUsers, err := a.store.CountUsers(ctx)
	if err != nil {
		return Summary{}, err
	}
	totalCategories, err := a.store.CountCategories(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Summary{TotalUsers: totalUsers, TotalCategories: totalCategories}, nil
}

// DistributionMeta summarizes a category distribution result.
type DistributionMeta struct {
	TotalCategories int   `json:"totalCategories"`
	TotalCount      int64 `json:"totalCount"`
}

// Distribution is the per-category breakdown of user counts.
type Distribution struct {
	Data []models.CategoryCount `json:"data"`
	Meta DistributionMeta       `json:"metadata"`
}

// CategoryDistribution groups users by category. A nil window means no
// filter; a supplied window restricts to users *created* inside it.
func (a *Aggregator) CategoryDistribution(ctx context.Context, win *Window) (Distribution, error) {
	var start, end *time.Time
	if win != nil {
		start, end = &win.Start, &win.End
	}

	counts, err := a.store.CategoryCounts(ctx, start, end)
	if err != nil {
		return Distribution{}, err
	}
	if counts == nil {
		counts = []models.CategoryCount{}
	}

	var total int64
	for _, c := range counts {
		total += c.Count
	}
	return Distribution{
		Data: counts,
		Meta: DistributionMeta{TotalCategories: len(counts), TotalCount: total},
	}, nil
}

// TimeSeriesMeta summarizes a time-series result, echoing the effective
// date range (supplied or the computed default).
type TimeSeriesMeta struct {
	TotalDays  int       `json:"totalDays"`
	TotalCount int64     `json:"totalCount"`
	DateRange  DateRange `json:"dateRange"`
}

// TimeSeries is the daily activity series for the dashboard's column chart.
type TimeSeries struct {
	Data []models.DateCount `json:"data"`
	Meta TimeSeriesMeta     `json:"metadata"`
}

// ActivityTimeSeries counts users per creation day, filtered by updatedAt
// inside the window. A nil window defaults to the trailing 30 days ending
// now — deliberately different from CategoryDistribution's no-filter default.
// The series is sorted ascending by date and omits zero-count days.
func (a *Aggregator) ActivityTimeSeries(ctx context.Context, win *Window) (TimeSeries, error) {
	effective := win
	if effective == nil {
		now := a.now()
		effective = &Window{Start: now.AddDate(0, 0, -defaultTimeSeriesDays), End: now}
	}

	counts, err := a.store.DailyCreatedCounts(ctx, effective.Start, effective.End)
	if err != nil {
		return TimeSeries{}, err
	}
	if counts == nil {
		counts = []models.DateCount{}
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Date < counts[j].Date })

	var total int64
	for _, c := range counts {
		total += c.Count
	}
	return TimeSeries{
		Data: counts,
		Meta: TimeSeriesMeta{
			TotalDays:  len(counts),
			TotalCount: total,
			DateRange:  effective.dateRange(),
		},
	}, nil
}
