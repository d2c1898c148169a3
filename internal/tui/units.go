package tui

import "github.com/vitalog-dev/vitalog/internal/core"

// Stored values use the units the schema declares (imperial). When the
// config selects metric, display values are converted on the way out;
// nothing in the store changes.
type unitConversion struct {
	factor float64
	label  string
}

var metricConversions = map[string]unitConversion{
	"lbs": {factor: 0.45359237, label: "kg"},
	"oz":  {factor: 29.5735, label: "ml"},
	"mi":  {factor: 1.609344, label: "km"},
	"in":  {factor: 2.54, label: "cm"},
}

// DisplayUnit returns the unit label to show for a schema unit under the
// configured unit system.
func DisplayUnit(units, unit string) string {
	if units == "metric" {
		if conv, ok := metricConversions[unit]; ok {
			return conv.label
		}
	}
	return unit
}

// DisplayValue converts a stored value into the configured unit system.
func DisplayValue(units, unit string, v float64) float64 {
	if units == "metric" {
		if conv, ok := metricConversions[unit]; ok {
			return v * conv.factor
		}
	}
	return v
}

// DisplaySeries returns a copy of s with every convertible field scaled
// into the configured unit system. Day indexing and nil gaps are
// untouched.
func DisplaySeries(units string, tracker core.TrackerSchema, s core.Series) core.Series {
	if units != "metric" {
		return s
	}

	out := core.Series{
		Days:    s.Days,
		Values:  make(map[string][]*float64, len(s.Values)),
		CarryIn: make(map[string]float64, len(s.CarryIn)),
	}
	for name, vs := range s.Values {
		field, ok := tracker.Field(name)
		conv, convertible := metricConversions[field.Unit]
		if !ok || !convertible {
			out.Values[name] = vs
			continue
		}
		scaled := make([]*float64, len(vs))
		for i, v := range vs {
			if v == nil {
				continue
			}
			c := *v * conv.factor
			scaled[i] = &c
		}
		out.Values[name] = scaled
	}
	for name, v := range s.CarryIn {
		field, ok := tracker.Field(name)
		if conv, convertible := metricConversions[field.Unit]; ok && convertible {
			out.CarryIn[name] = v * conv.factor
		} else {
			out.CarryIn[name] = v
		}
	}
	return out
}
