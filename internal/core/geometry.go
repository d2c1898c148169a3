package core

import (
	"fmt"
)

// SegmentKind distinguishes how a path segment should be stroked.
type SegmentKind string

const (
	// SegmentRun is a contiguous run of days with data, drawn solid.
	SegmentRun SegmentKind = "run"
	// SegmentGap joins the points on either side of a data gap, drawn
	// dashed.
	SegmentGap SegmentKind = "gap"
	// SegmentLeadIn joins the left plot edge at the carry-in height to
	// the field's first real point, drawn dashed.
	SegmentLeadIn SegmentKind = "lead-in"
)

// ChartPoint is a plotted value in screen coordinates (y grows downward).
// DayIndex is -1 for the synthetic lead-in anchor at the plot edge.
type ChartPoint struct {
	DayIndex   int
	X, Y       float64
	Value      float64
	Emphasized bool
}

// Segment is one stroke of a field's path.
type Segment struct {
	Kind   SegmentKind
	Points []ChartPoint
}

// FieldPath holds the ordered segments for one visible field.
type FieldPath struct {
	Field    string
	Segments []Segment
}

// Tick is an axis label position. For y ticks Value carries the domain
// value; for x ticks Label carries the day string.
type Tick struct {
	Pos   float64
	Value float64
	Label string
}

// ChartGeometry is the ephemeral output of RenderGeometry: everything a
// drawing surface needs to stroke a multi-series line chart. It is
// recomputed on every render and never persisted.
type ChartGeometry struct {
	Width  float64
	Height float64
	Min    float64 // padded domain floor
	Max    float64 // padded domain ceiling
	Paths  []FieldPath
	XTicks []Tick
	YTicks []Tick
}

const (
	domainPadFraction = 0.05
	domainPadAbsolute = 0.25
	xTickTarget       = 6
)

// RenderGeometry maps a series onto a pixelW x pixelH canvas. Runs of
// consecutive days with data become solid segments; a gap with data on
// both sides becomes one dashed connector; a carry-in value with a late
// first point becomes a dashed lead-in from the left edge. Empty visible
// fields produce valid default-domain ticks and no paths.
func RenderGeometry(s Series, visible []string, pixelW, pixelH float64, zoom Zoom) (ChartGeometry, error) {
	if pixelW <= 0 || pixelH <= 0 {
		return ChartGeometry{}, ErrInvalidCanvas
	}

	n := len(s.Days)
	minV, maxV, found := valueDomain(s, visible)
	if !found {
		minV, maxV = 0, 1
	}
	pad := (maxV-minV)*domainPadFraction + domainPadAbsolute
	minV -= pad
	maxV += pad

	xOf := func(day int) float64 {
		if n <= 1 {
			return 0
		}
		return float64(day) / float64(n-1) * (pixelW - 1)
	}
	yOf := func(v float64) float64 {
		return (pixelH - 1) - (v-minV)/(maxV-minV)*(pixelH-1)
	}

	stride := zoom.Stride(n)
	geo := ChartGeometry{Width: pixelW, Height: pixelH, Min: minV, Max: maxV}

	for _, field := range visible {
		vals, ok := s.Values[field]
		if !ok {
			continue
		}
		path := FieldPath{Field: field}

		var run []ChartPoint
		var lastRunEnd *ChartPoint
		firstDataIdx := -1

		flush := func() {
			if len(run) == 0 {
				return
			}
			path.Segments = append(path.Segments, Segment{Kind: SegmentRun, Points: run})
			end := run[len(run)-1]
			lastRunEnd = &end
			run = nil
		}

		for i, v := range vals {
			if v == nil {
				flush()
				continue
			}
			pt := ChartPoint{
				DayIndex:   i,
				X:          xOf(i),
				Y:          yOf(*v),
				Value:      *v,
				Emphasized: i%stride == 0 || i == n-1,
			}
			if firstDataIdx < 0 {
				firstDataIdx = i
			}
			if len(run) == 0 && lastRunEnd != nil {
				// Data on both sides of the gap: one dashed connector.
				path.Segments = append(path.Segments, Segment{
					Kind:   SegmentGap,
					Points: []ChartPoint{*lastRunEnd, pt},
				})
			}
			run = append(run, pt)
		}
		flush()

		// Earlier data exists but is off-screen: hint at it with a dashed
		// lead-in at the carry-in height.
		if carry, ok := s.CarryIn[field]; ok && firstDataIdx > 0 {
			first := firstSegmentPoint(path.Segments)
			if first != nil {
				lead := Segment{
					Kind: SegmentLeadIn,
					Points: []ChartPoint{
						{DayIndex: -1, X: 0, Y: yOf(carry), Value: carry},
						*first,
					},
				}
				path.Segments = append([]Segment{lead}, path.Segments...)
			}
		}

		geo.Paths = append(geo.Paths, path)
	}

	geo.YTicks = yTicks(minV, maxV, yOf)
	geo.XTicks = xTicks(s.Days, xOf)
	return geo, nil
}

func valueDomain(s Series, visible []string) (minV, maxV float64, found bool) {
	for _, field := range visible {
		for _, v := range s.Values[field] {
			if v == nil {
				continue
			}
			if !found || *v < minV {
				minV = *v
			}
			if !found || *v > maxV {
				maxV = *v
			}
			found = true
		}
	}
	return minV, maxV, found
}

func firstSegmentPoint(segs []Segment) *ChartPoint {
	for _, seg := range segs {
		if seg.Kind == SegmentRun && len(seg.Points) > 0 {
			p := seg.Points[0]
			return &p
		}
	}
	return nil
}

// yTicks places labels at the domain quartiles.
func yTicks(minV, maxV float64, yOf func(float64) float64) []Tick {
	ticks := make([]Tick, 0, 4)
	for q := 1; q <= 4; q++ {
		v := minV + (maxV-minV)*float64(q)/4
		ticks = append(ticks, Tick{Pos: yOf(v), Value: v, Label: FormatValue(v)})
	}
	return ticks
}

// xTicks subsamples the day list to a handful of evenly spaced labels,
// always including the first and last day.
func xTicks(days []string, xOf func(int) float64) []Tick {
	n := len(days)
	if n == 0 {
		return nil
	}
	count := xTickTarget
	if n < count {
		count = n
	}

	ticks := make([]Tick, 0, count)
	seen := make(map[int]bool, count)
	for i := 0; i < count; i++ {
		idx := 0
		if count > 1 {
			idx = i * (n - 1) / (count - 1)
		}
		if seen[idx] {
			continue
		}
		seen[idx] = true
		ticks = append(ticks, Tick{Pos: xOf(idx), Label: days[idx]})
	}
	return ticks
}

// FormatValue renders an axis value compactly: integers without decimals,
// large magnitudes with K/M suffixes.
func FormatValue(v float64) string {
	abs := v
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.1fK", v/1_000)
	case v == float64(int64(v)):
		return fmt.Sprintf("%d", int64(v))
	default:
		return fmt.Sprintf("%.1f", v)
	}
}
