package tui

import (
	"math"
	"testing"

	"github.com/vitalog-dev/vitalog/internal/core"
)

func TestDisplayValue(t *testing.T) {
	tests := []struct {
		units string
		unit  string
		in    float64
		want  float64
	}{
		{"imperial", "lbs", 180, 180},
		{"metric", "lbs", 180, 81.646},
		{"metric", "oz", 8, 236.588},
		{"metric", "mi", 3.1, 4.989},
		{"metric", "in", 12, 30.48},
		{"metric", "bpm", 60, 60}, // no conversion defined
	}

	for _, tt := range tests {
		got := DisplayValue(tt.units, tt.unit, tt.in)
		if math.Abs(got-tt.want) > 0.01 {
			t.Errorf("DisplayValue(%s, %s, %v) = %v, want %v", tt.units, tt.unit, tt.in, got, tt.want)
		}
	}
}

func TestDisplayUnit(t *testing.T) {
	if got := DisplayUnit("metric", "lbs"); got != "kg" {
		t.Errorf("metric lbs = %q", got)
	}
	if got := DisplayUnit("imperial", "lbs"); got != "lbs" {
		t.Errorf("imperial lbs = %q", got)
	}
	if got := DisplayUnit("metric", "bpm"); got != "bpm" {
		t.Errorf("metric bpm = %q", got)
	}
}

func TestDisplaySeries(t *testing.T) {
	tracker, _ := core.TrackerByID("weight")
	v := 200.0
	s := core.Series{
		Days:    []string{"2025-03-01", "2025-03-02"},
		Values:  map[string][]*float64{"weight": {&v, nil}},
		CarryIn: map[string]float64{"weight": 100},
	}

	out := DisplaySeries("metric", tracker, s)
	if out.Values["weight"][1] != nil {
		t.Error("nil gap must stay nil after conversion")
	}
	if got := *out.Values["weight"][0]; math.Abs(got-90.718) > 0.01 {
		t.Errorf("converted value = %v", got)
	}
	if got := out.CarryIn["weight"]; math.Abs(got-45.359) > 0.01 {
		t.Errorf("converted carry-in = %v", got)
	}

	// imperial passes the series through untouched
	same := DisplaySeries("imperial", tracker, s)
	if *same.Values["weight"][0] != 200 {
		t.Errorf("imperial value changed: %v", *same.Values["weight"][0])
	}
}

func TestDisplaySeriesUnknownField(t *testing.T) {
	tracker, _ := core.TrackerByID("weight")
	v := 42.0
	s := core.Series{
		Days:    []string{"2025-03-01"},
		Values:  map[string][]*float64{"bogus": {&v}},
		CarryIn: map[string]float64{"bogus": 7},
	}

	out := DisplaySeries("metric", tracker, s)
	if got := *out.Values["bogus"][0]; got != 42 {
		t.Errorf("unknown field value converted: %v", got)
	}
	if got := out.CarryIn["bogus"]; got != 7 {
		t.Errorf("unknown field carry-in converted: %v", got)
	}
}
