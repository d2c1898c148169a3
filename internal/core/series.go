package core

import (
	"time"
)

// BuildSeries aggregates records into a dense day-indexed series over the
// inclusive window [start, end]. Both bounds are truncated to calendar
// days in loc before bucketing; records outside the window feed only the
// carry-in values. Zero is a valid observation — only a day with no
// records for a field yields nil.
func BuildSeries(records []Record, fields []string, start, end time.Time, agg Aggregation, loc *time.Location) (Series, error) {
	if agg != AggSum && agg != AggAverage {
		return Series{}, ErrUnknownAggregation
	}
	if loc == nil {
		loc = time.Local
	}

	startDay := truncateDay(start, loc)
	endDay := truncateDay(end, loc)
	if startDay.After(endDay) {
		return Series{}, ErrInvalidRange
	}

	days := enumerateDays(startDay, endDay)
	dayIdx := make(map[string]int, len(days))
	for i, d := range days {
		dayIdx[d] = i
	}
	startKey := days[0]

	// Per field: in-window values bucketed by day index, and pre-window
	// values keyed by day for the carry-in scan.
	inWindow := make(map[string][][]float64, len(fields))
	preWindow := make(map[string]map[string][]float64, len(fields))
	for _, f := range fields {
		inWindow[f] = make([][]float64, len(days))
	}

	for _, r := range records {
		key := DayKey(r.Timestamp, loc)
		idx, inRange := dayIdx[key]
		for _, f := range fields {
			v, ok := r.Values[f]
			if !ok {
				continue
			}
			switch {
			case inRange:
				inWindow[f][idx] = append(inWindow[f][idx], v)
			case key < startKey:
				if preWindow[f] == nil {
					preWindow[f] = make(map[string][]float64)
				}
				preWindow[f][key] = append(preWindow[f][key], v)
			}
		}
	}

	out := Series{
		Days:    days,
		Values:  make(map[string][]*float64, len(fields)),
		CarryIn: make(map[string]float64),
	}

	for _, f := range fields {
		vals := make([]*float64, len(days))
		for i, bucket := range inWindow[f] {
			if len(bucket) == 0 {
				continue
			}
			v := aggregate(bucket, agg)
			vals[i] = &v
		}
		out.Values[f] = vals

		// Carry-in: the chronologically latest pre-window date with data,
		// aggregated with the same per-day policy as the window itself.
		latest := ""
		for key := range preWindow[f] {
			if key > latest {
				latest = key
			}
		}
		if latest != "" {
			out.CarryIn[f] = aggregate(preWindow[f][latest], agg)
		}
	}

	return out, nil
}

func aggregate(values []float64, agg Aggregation) float64 {
	total := float64(0)
	for _, v := range values {
		total += v
	}
	if agg == AggAverage {
		return total / float64(len(values))
	}
	return total
}

func truncateDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func enumerateDays(startDay, endDay time.Time) []string {
	var days []string
	for d := startDay; !d.After(endDay); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(dayFormat))
	}
	return days
}
