package core

import "testing"

func TestTrackerRegistry(t *testing.T) {
	all := Trackers()
	if len(all) == 0 {
		t.Fatal("empty tracker registry")
	}

	seen := map[string]bool{}
	for _, tr := range all {
		if tr.ID == "" || tr.Name == "" {
			t.Errorf("tracker %+v missing ID or Name", tr)
		}
		if seen[tr.ID] {
			t.Errorf("duplicate tracker ID %q", tr.ID)
		}
		seen[tr.ID] = true
		if len(tr.Fields) == 0 {
			t.Errorf("tracker %q has no fields", tr.ID)
		}
		for _, f := range tr.Fields {
			if f.Agg != AggSum && f.Agg != AggAverage {
				t.Errorf("tracker %q field %q has invalid aggregation %q", tr.ID, f.Name, f.Agg)
			}
		}
	}
}

func TestTrackerByID(t *testing.T) {
	tr, ok := TrackerByID("weight")
	if !ok {
		t.Fatal("weight tracker missing")
	}
	if got := tr.Aggregation(); got != AggAverage {
		t.Errorf("weight aggregation = %q, want average", got)
	}

	if _, ok := TrackerByID("nope"); ok {
		t.Error("unknown ID resolved")
	}
}

func TestTrackerAggregationKinds(t *testing.T) {
	tests := []struct {
		id   string
		want Aggregation
	}{
		{"steps", AggSum},
		{"water", AggSum},
		{"cardio", AggSum},
		{"weight", AggAverage},
		{"health", AggAverage},
		{"measurements", AggAverage},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			tr, ok := TrackerByID(tt.id)
			if !ok {
				t.Fatalf("tracker %q missing", tt.id)
			}
			if got := tr.Aggregation(); got != tt.want {
				t.Errorf("aggregation = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFieldNamesMatchFields(t *testing.T) {
	for _, tr := range Trackers() {
		names := tr.FieldNames()
		if len(names) != len(tr.Fields) {
			t.Errorf("tracker %q: %d names for %d fields", tr.ID, len(names), len(tr.Fields))
		}
		for _, n := range names {
			if _, ok := tr.Field(n); !ok {
				t.Errorf("tracker %q: field %q not resolvable", tr.ID, n)
			}
		}
	}
}
