// internal/app/analytics/window.go
package analytics

import (
	"errors"
	"fmt"
	"time"
)

// Validation errors for query windows. Handlers map both to client errors.
var (
	ErrInvalidDate  = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidRange = errors.New("startDate cannot be after endDate")
)

// dateLayout is the calendar-date format accepted on query windows and used
// in time-series output.
const dateLayout = "2006-01-02"

// Window is an inclusive [Start, End] date range. Bounds are UTC midnights.
type Window struct {
	Start time.Time
	End   time.Time
}

// ParseWindow builds a Window from raw query values. A window counts as
// supplied only when both bounds are present; single-sided input is treated
// as absent and yields a nil Window. Either bound failing to parse yields
// ErrInvalidDate; an inverted range yields ErrInvalidRange. Validation
// happens here, before any storage call.
func ParseWindow(startDate, endDate string) (*Window, error) {
	if startDate == "" || endDate == "" {
		return nil, nil
	}

	start, err := time.ParseInLocation(dateLayout, startDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, startDate)
	}
	end, err := time.ParseInLocation(dateLayout, endDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, endDate)
	}
	if start.After(end) {
		return nil, ErrInvalidRange
	}

	return &Window{Start: start, End: end}, nil
}

// DateRange echoes the effective bounds of a windowed query as YYYY-MM-DD
// strings.
type DateRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

func (w Window) dateRange() DateRange {
	return DateRange{
		StartDate: w.Start.Format(dateLayout),
		EndDate:   w.End.Format(dateLayout),
	}
}
