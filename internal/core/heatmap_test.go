package core

import (
	"testing"
	"time"
)

func cat(category, day string) CategorizedEntry {
	t, err := time.ParseInLocation("2006-01-02", day, time.UTC)
	if err != nil {
		panic(err)
	}
	return CategorizedEntry{Category: category, Timestamp: t}
}

func TestBuildHeatmapDensity(t *testing.T) {
	today := day("2024-06-30")
	tests := []struct {
		name    string
		entries []CategorizedEntry
	}{
		{"empty input", nil},
		{"one entry", []CategorizedEntry{cat("steps", "2024-06-30")}},
		{"entries outside window", []CategorizedEntry{cat("steps", "2020-01-01"), cat("water", "2025-01-01")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells := BuildHeatmap(tt.entries, today, time.UTC)
			if len(cells) != HeatmapLookbackDays+1 {
				t.Fatalf("len(cells) = %d, want %d", len(cells), HeatmapLookbackDays+1)
			}
			if cells[0].Date != "2024-01-02" {
				t.Errorf("oldest cell = %s, want 2024-01-02", cells[0].Date)
			}
			if cells[len(cells)-1].Date != "2024-06-30" {
				t.Errorf("newest cell = %s, want 2024-06-30", cells[len(cells)-1].Date)
			}
		})
	}
}

func TestBuildHeatmapDistinctCategories(t *testing.T) {
	today := day("2024-06-30")
	entries := []CategorizedEntry{
		cat("steps", "2024-06-29"),
		cat("steps", "2024-06-29"), // repeat category, same day: counts once
		cat("water", "2024-06-29"),
		cat("weight", "2024-06-30"),
	}
	cells := BuildHeatmap(entries, today, time.UTC)

	byDate := make(map[string]int, len(cells))
	for _, c := range cells {
		byDate[c.Date] = c.Count
	}
	if byDate["2024-06-29"] != 2 {
		t.Errorf("2024-06-29 count = %d, want 2", byDate["2024-06-29"])
	}
	if byDate["2024-06-30"] != 1 {
		t.Errorf("2024-06-30 count = %d, want 1", byDate["2024-06-30"])
	}
	if byDate["2024-06-28"] != 0 {
		t.Errorf("empty day count = %d, want 0", byDate["2024-06-28"])
	}
}

func TestBuildHeatmapIgnoresOutOfWindow(t *testing.T) {
	today := day("2024-06-30")
	entries := []CategorizedEntry{
		cat("steps", "2024-01-01"), // one day before the window start
		cat("steps", "2024-07-01"), // tomorrow
	}
	cells := BuildHeatmap(entries, today, time.UTC)
	for _, c := range cells {
		if c.Count != 0 {
			t.Errorf("cell %s count = %d, want 0", c.Date, c.Count)
		}
	}
}

func TestHeatmapColumns(t *testing.T) {
	cells := BuildHeatmap(nil, day("2024-06-30"), time.UTC)
	cols := HeatmapColumns(cells)

	wantCols := (HeatmapLookbackDays+1 + HeatmapColumnSize - 1) / HeatmapColumnSize
	if len(cols) != wantCols {
		t.Fatalf("columns = %d, want %d", len(cols), wantCols)
	}
	for i, col := range cols[:len(cols)-1] {
		if len(col) != HeatmapColumnSize {
			t.Errorf("column %d size = %d, want %d", i, len(col), HeatmapColumnSize)
		}
	}
	if last := cols[len(cols)-1]; len(last) != 181%HeatmapColumnSize && 181%HeatmapColumnSize != 0 {
		t.Errorf("last column size = %d, want %d", len(last), 181%HeatmapColumnSize)
	}
	if cols[0][0].Date != cells[0].Date {
		t.Error("columns are not oldest-first")
	}
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		count int
		want  int
	}{
		{-1, 0},
		{0, 0},
		{1, 1},
		{3, 3},
		{6, 6},
		{7, 6},
		{50, 6},
	}
	for _, tt := range tests {
		if got := TierFor(tt.count); got != tt.want {
			t.Errorf("TierFor(%d) = %d, want %d", tt.count, got, tt.want)
		}
	}
}
