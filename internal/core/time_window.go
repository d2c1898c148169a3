package core

import (
	"math"
	"time"
)

// DateWindow is an inclusive calendar-day range. Both bounds are
// day-truncated; every day in the window appears exactly once in series
// output.
type DateWindow struct {
	Start time.Time
	End   time.Time
}

// NewDateWindow truncates both bounds to calendar days in loc and
// validates their order.
func NewDateWindow(start, end time.Time, loc *time.Location) (DateWindow, error) {
	if loc == nil {
		loc = time.Local
	}
	s := truncateDay(start, loc)
	e := truncateDay(end, loc)
	if s.After(e) {
		return DateWindow{}, ErrInvalidRange
	}
	return DateWindow{Start: s, End: e}, nil
}

// LastNDays returns the window covering the n days ending at today,
// today inclusive.
func LastNDays(today time.Time, n int, loc *time.Location) DateWindow {
	if loc == nil {
		loc = time.Local
	}
	if n < 1 {
		n = 1
	}
	end := truncateDay(today, loc)
	return DateWindow{Start: end.AddDate(0, 0, -(n - 1)), End: end}
}

// Days returns the number of calendar days in the window, always >= 1.
func (w DateWindow) Days() int {
	return int(w.End.Sub(w.Start).Hours()/24) + 1
}

// TimeRange represents a selectable chart range for the dashboard.
type TimeRange string

const (
	TimeRange1w TimeRange = "7d"
	TimeRange1m TimeRange = "30d"
	TimeRange3m TimeRange = "90d"
	TimeRange1y TimeRange = "365d"
)

var ValidTimeRanges = []TimeRange{
	TimeRange1w,
	TimeRange1m,
	TimeRange3m,
	TimeRange1y,
}

// Days returns the range length in days.
func (tr TimeRange) Days() int {
	switch tr {
	case TimeRange1w:
		return 7
	case TimeRange1m:
		return 30
	case TimeRange3m:
		return 90
	case TimeRange1y:
		return 365
	default:
		return 30
	}
}

func (tr TimeRange) Label() string {
	switch tr {
	case TimeRange1w:
		return "Week"
	case TimeRange1m:
		return "Month"
	case TimeRange3m:
		return "3 Months"
	case TimeRange1y:
		return "Year"
	default:
		return "Month"
	}
}

// Zoom returns the point-emphasis zoom level appropriate for this range.
func (tr TimeRange) Zoom() Zoom {
	switch tr {
	case TimeRange1w:
		return ZoomDense
	case TimeRange1m:
		return ZoomWeekly
	case TimeRange3m:
		return ZoomMonthly
	case TimeRange1y:
		return ZoomYearly
	default:
		return ZoomWeekly
	}
}

// ParseTimeRange maps a stored range key back to a TimeRange. Unknown
// keys fall back to the one-month default.
func ParseTimeRange(s string) (TimeRange, bool) {
	for _, tr := range ValidTimeRanges {
		if string(tr) == s {
			return tr, true
		}
	}
	return TimeRange1m, false
}

// NextTimeRange returns the next range in the cycle.
func NextTimeRange(current TimeRange) TimeRange {
	for i, tr := range ValidTimeRanges {
		if tr == current {
			return ValidTimeRanges[(i+1)%len(ValidTimeRanges)]
		}
	}
	return ValidTimeRanges[0]
}

// Zoom controls which chart points are emphasized (labeled/marked). It
// never changes the path geometry, only the emphasis subsampling.
type Zoom string

const (
	ZoomDense   Zoom = "dense"   // every day
	ZoomWeekly  Zoom = "weekly"  // roughly every 3rd day
	ZoomMonthly Zoom = "monthly" // ~1 point per 30 days
	ZoomYearly  Zoom = "yearly"  // ~1 point per 30 days across a year
	ZoomCustom  Zoom = "custom"  // at most 10 evenly spaced points
)

// Stride returns the emphasis interval in days for a window of n days.
func (z Zoom) Stride(n int) int {
	stride := 1
	switch z {
	case ZoomDense:
		stride = 1
	case ZoomWeekly:
		stride = 3
	case ZoomMonthly, ZoomYearly:
		stride = 30
	case ZoomCustom:
		stride = int(math.Ceil(float64(n) / 10))
	}
	if stride < 1 {
		stride = 1
	}
	return stride
}
