package core

import (
	"errors"
	"time"
)

// Record is one dated tracker entry: a timestamp plus the numeric fields
// that were actually observed. A field missing from Values is absent for
// this record; a stored zero is a real observation.
type Record struct {
	Timestamp time.Time
	Values    map[string]float64
}

// Aggregation is the per-day combination rule applied when multiple
// records fall on the same calendar date.
type Aggregation string

const (
	AggSum     Aggregation = "sum"
	AggAverage Aggregation = "average"
)

var (
	ErrInvalidRange       = errors.New("core: start date after end date")
	ErrUnknownAggregation = errors.New("core: unknown aggregation kind")
	ErrInvalidCanvas      = errors.New("core: non-positive canvas dimensions")
)

// Series is a dense, day-indexed view of aggregated tracker values.
// Days holds every calendar day of the window in ascending order; each
// field's value slice has the same length, with nil marking days that
// have no data for that field.
type Series struct {
	Days   []string              `json:"days"` // "2006-01-02"
	Values map[string][]*float64 `json:"values"`

	// CarryIn holds, per field, the aggregate of the latest date strictly
	// before the window that had data. A field with no earlier data has
	// no entry.
	CarryIn map[string]float64 `json:"carry_in,omitempty"`
}

// ValueAt returns the aggregate for field at day index i, or nil.
func (s Series) ValueAt(field string, i int) *float64 {
	vs, ok := s.Values[field]
	if !ok || i < 0 || i >= len(vs) {
		return nil
	}
	return vs[i]
}

// CategorizedEntry is the heatmap builder's input: which tracker category
// logged something, and when.
type CategorizedEntry struct {
	Category  string
	Timestamp time.Time
}

// HeatmapCell is one day of the activity heatmap: the date and the number
// of distinct tracker categories that logged at least one record on it.
type HeatmapCell struct {
	Date  string `json:"date"` // "2006-01-02"
	Count int    `json:"count"`
}

const dayFormat = "2006-01-02"

// DayKey truncates t to its calendar day in loc. ISO day keys compare
// lexicographically in date order, which the whole package relies on.
func DayKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(dayFormat)
}
