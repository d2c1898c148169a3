package main

import (
	"context"
	"time"

	"github.com/vitalog-dev/vitalog/internal/core"
	"github.com/vitalog-dev/vitalog/internal/store"
	"github.com/vitalog-dev/vitalog/internal/tui"
)

// carryInLookbackDays bounds how far back the series builder searches
// for a pre-window value to anchor the dashed lead-in.
const carryInLookbackDays = 365

// localBackend serves the dashboard straight from the sqlite store.
type localBackend struct {
	store *store.Store
	cache *store.HeatmapCache
	loc   *time.Location
	now   func() time.Time
}

func newLocalBackend(s *store.Store, loc *time.Location) *localBackend {
	if loc == nil {
		loc = time.Local
	}
	return &localBackend{
		store: s,
		cache: store.NewHeatmapCache(s, loc),
		loc:   loc,
		now:   time.Now,
	}
}

func (b *localBackend) Dashboard(ctx context.Context, rng core.TimeRange) (tui.DashboardData, error) {
	today := b.now().In(b.loc)
	end := today
	start := today.AddDate(0, 0, -(rng.Days() - 1))
	queryFrom := start.AddDate(0, 0, -carryInLookbackDays)
	queryTo := end.AddDate(0, 0, 1)

	data := tui.DashboardData{
		Series: make(map[string]core.Series),
		Recent: make(map[string][]store.Entry),
		Counts: make(map[string]int),
	}

	for _, tracker := range core.Trackers() {
		entries, err := b.store.EntriesBetween(ctx, tracker.ID, queryFrom, queryTo)
		if err != nil {
			return tui.DashboardData{}, err
		}

		series, err := core.BuildSeries(store.Records(entries), tracker.FieldNames(), start, end, tracker.Aggregation(), b.loc)
		if err != nil {
			return tui.DashboardData{}, err
		}
		data.Series[tracker.ID] = series

		startKey := core.DayKey(start, b.loc)
		for _, e := range entries {
			if core.DayKey(e.OccurredAt, b.loc) >= startKey {
				data.Counts[tracker.ID]++
			}
		}

		recent, err := b.store.Recent(ctx, tracker.ID, 20)
		if err != nil {
			return tui.DashboardData{}, err
		}
		data.Recent[tracker.ID] = recent
	}

	cells, err := b.cache.Cells(ctx)
	if err != nil {
		return tui.DashboardData{}, err
	}
	data.Heatmap = cells

	return data, nil
}

func (b *localBackend) SaveEntry(ctx context.Context, e store.Entry) (string, error) {
	id, err := b.store.Insert(ctx, e)
	if err != nil {
		return "", err
	}
	b.cache.Invalidate()
	return id, nil
}

func (b *localBackend) DeleteEntry(ctx context.Context, id string) error {
	if err := b.store.Delete(ctx, id); err != nil {
		return err
	}
	b.cache.Invalidate()
	return nil
}
