package main

import (
	"testing"

	"github.com/vitalog-dev/vitalog/internal/core"
)

func TestParseFieldArgs(t *testing.T) {
	tracker, _ := core.TrackerByID("cardio")

	values, err := parseFieldArgs(tracker, []string{"duration=45", "distance=3.1"})
	if err != nil {
		t.Fatalf("parseFieldArgs: %v", err)
	}
	if values["duration"] != 45 || values["distance"] != 3.1 {
		t.Errorf("values = %v", values)
	}
}

func TestParseFieldArgsErrors(t *testing.T) {
	tracker, _ := core.TrackerByID("weight")

	tests := []struct {
		name string
		args []string
	}{
		{"missing equals", []string{"weight"}},
		{"unknown field", []string{"mass=80"}},
		{"not a number", []string{"weight=heavy"}},
		{"empty", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseFieldArgs(tracker, tt.args); err == nil {
				t.Error("expected error")
			}
		})
	}
}
