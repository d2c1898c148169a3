package core

import (
	"time"

	"github.com/samber/lo"
)

const (
	// HeatmapLookbackDays is how far back the activity heatmap reaches;
	// the window is [today-180d, today] inclusive, 181 cells.
	HeatmapLookbackDays = 180

	// HeatmapColumnSize is the number of consecutive days per rendered
	// column.
	HeatmapColumnSize = 5

	// HeatmapTiers is the number of discrete activity levels, counting
	// the "no activity" tier.
	HeatmapTiers = 7
)

// BuildHeatmap counts, for each of the last 181 calendar days (today
// inclusive), how many distinct categories logged at least one entry.
// Every day of the window is present, oldest first; days without
// activity carry count 0. Entries outside the window are ignored.
func BuildHeatmap(entries []CategorizedEntry, today time.Time, loc *time.Location) []HeatmapCell {
	if loc == nil {
		loc = time.Local
	}

	endDay := truncateDay(today, loc)
	startDay := endDay.AddDate(0, 0, -HeatmapLookbackDays)
	days := enumerateDays(startDay, endDay)

	categoriesByDay := make(map[string]map[string]struct{})
	for _, e := range entries {
		key := DayKey(e.Timestamp, loc)
		if key < days[0] || key > days[len(days)-1] {
			continue
		}
		set := categoriesByDay[key]
		if set == nil {
			set = make(map[string]struct{})
			categoriesByDay[key] = set
		}
		set[e.Category] = struct{}{}
	}

	cells := make([]HeatmapCell, len(days))
	for i, d := range days {
		cells[i] = HeatmapCell{Date: d, Count: len(categoriesByDay[d])}
	}
	return cells
}

// HeatmapColumns splits cells into fixed-size columns for column-major
// rendering, oldest column first. The last column may be short.
func HeatmapColumns(cells []HeatmapCell) [][]HeatmapCell {
	return lo.Chunk(cells, HeatmapColumnSize)
}

// TierFor maps a distinct-category count to one of the discrete display
// tiers: 0 means no activity, counts of 6 and above clamp to the top.
func TierFor(count int) int {
	if count < 0 {
		return 0
	}
	if count >= HeatmapTiers-1 {
		return HeatmapTiers - 1
	}
	return count
}
