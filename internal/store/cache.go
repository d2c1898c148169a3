package store

import (
	"context"
	"sync"
	"time"

	"github.com/vitalog-dev/vitalog/internal/core"
)

const heatmapCacheTTL = time.Hour

// HeatmapCache memoizes the activity heatmap between refreshes. Building
// it scans every entry in the lookback window, so the dashboard keeps one
// cached copy and rebuilds at most once per hour unless a write
// invalidates it first.
type HeatmapCache struct {
	mu      sync.Mutex
	store   *Store
	loc     *time.Location
	now     func() time.Time
	cells   []core.HeatmapCell
	builtAt time.Time
}

func NewHeatmapCache(s *Store, loc *time.Location) *HeatmapCache {
	if loc == nil {
		loc = time.Local
	}
	return &HeatmapCache{store: s, loc: loc, now: time.Now}
}

// Cells returns the cached heatmap, rebuilding it when the cache is
// empty or older than an hour.
func (c *HeatmapCache) Cells(ctx context.Context) ([]core.HeatmapCell, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if c.cells != nil && now.Sub(c.builtAt) < heatmapCacheTTL {
		return c.cells, nil
	}

	today := now.In(c.loc)
	from := today.AddDate(0, 0, -core.HeatmapLookbackDays-1)
	entries, err := c.store.CategorizedBetween(ctx, from, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	c.cells = core.BuildHeatmap(entries, today, c.loc)
	c.builtAt = now
	return c.cells, nil
}

// Invalidate drops the cached heatmap so the next read rebuilds it.
// Call after any entry write.
func (c *HeatmapCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cells = nil
}
