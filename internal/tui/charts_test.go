package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/vitalog-dev/vitalog/internal/core"
)

func TestRenderSparkline(t *testing.T) {
	out := RenderSparkline([]float64{1, 2, 3, 4, 5, 6, 7, 8}, 8, colorTeal)
	if out == "" {
		t.Fatal("empty sparkline")
	}
	plain := ansi.Strip(out)
	if len([]rune(plain)) != 8 {
		t.Errorf("sparkline width = %d, want 8", len([]rune(plain)))
	}
	runes := []rune(plain)
	if runes[0] != sparkBlocks[0] || runes[7] != sparkBlocks[len(sparkBlocks)-1] {
		t.Errorf("sparkline shape wrong: %q", plain)
	}
}

func TestRenderSparkline_DownsamplesLongInput(t *testing.T) {
	values := make([]float64, 200)
	for i := range values {
		values[i] = float64(i)
	}
	out := ansi.Strip(RenderSparkline(values, 20, colorTeal))
	if len([]rune(out)) != 20 {
		t.Errorf("downsampled width = %d, want 20", len([]rune(out)))
	}
}

func TestRenderSparkline_Empty(t *testing.T) {
	if out := RenderSparkline(nil, 10, colorTeal); out != "" {
		t.Errorf("nil values produced %q", out)
	}
}

func TestRenderHBarChart(t *testing.T) {
	items := []chartItem{
		{Label: "Steps", Value: 10000, Color: colorGreen},
		{Label: "Water", Value: 5000, Color: colorSapphire},
	}
	out := ansi.Strip(RenderHBarChart(items, 20, 10))
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("line count = %d", len(lines))
	}
	if !strings.Contains(lines[0], "10.0K") {
		t.Errorf("missing formatted value: %q", lines[0])
	}
	full := strings.Count(lines[0], "█")
	half := strings.Count(lines[1], "█")
	if half >= full {
		t.Errorf("bar lengths not proportional: %d vs %d", full, half)
	}
}

func TestFormatDateLabel(t *testing.T) {
	if got := formatDateLabel("2025-03-05"); got != "Mar 5" {
		t.Errorf("formatDateLabel = %q", got)
	}
	if got := formatDateLabel("2025-12-25"); got != "Dec 25" {
		t.Errorf("formatDateLabel = %q", got)
	}
	if got := formatDateLabel("bad"); got != "bad" {
		t.Errorf("short input passthrough = %q", got)
	}
}

func TestRenderSeriesChart_Shape(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	records := []core.Record{
		{Timestamp: start, Values: map[string]float64{"weight": 82}},
		{Timestamp: start.AddDate(0, 0, 2), Values: map[string]float64{"weight": 81.5}},
		{Timestamp: start.AddDate(0, 0, 6), Values: map[string]float64{"weight": 81}},
	}
	s, err := core.BuildSeries(records, []string{"weight"}, start, start.AddDate(0, 0, 6), core.AggAverage, time.UTC)
	if err != nil {
		t.Fatalf("BuildSeries: %v", err)
	}

	fields := []ChartField{{Name: "weight", Label: "Weight", Color: colorLavender}}
	out := RenderSeriesChart("Weight", s, fields, 80, 10, core.ZoomDense, "lbs")
	if out == "" {
		t.Fatal("empty chart")
	}

	plain := ansi.Strip(out)
	if !strings.Contains(plain, "Weight") {
		t.Error("missing title/legend label")
	}
	if !strings.Contains(plain, "(lbs)") {
		t.Error("missing unit")
	}
	if !strings.Contains(plain, "└") || !strings.Contains(plain, "┤") {
		t.Error("missing axis glyphs")
	}

	// title, separator, 10 plot rows, axis, x labels, legend
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 15 {
		t.Errorf("chart line count = %d, want 15", len(lines))
	}
}

func TestRenderSeriesChart_NoFields(t *testing.T) {
	if out := RenderSeriesChart("x", core.Series{}, nil, 80, 10, core.ZoomDense, ""); out != "" {
		t.Errorf("no-field chart = %q", out)
	}
}

func TestXAxisLine(t *testing.T) {
	ticks := []core.Tick{
		{Pos: 0, Label: "2025-03-01"},
		{Pos: 118, Label: "2025-03-31"},
	}
	line := xAxisLine(ticks, 60)
	if len(line) != 60 {
		t.Fatalf("line width = %d", len(line))
	}
	if !strings.Contains(line, "Mar 1") || !strings.Contains(line, "Mar 31") {
		t.Errorf("labels missing: %q", line)
	}
	if !strings.HasPrefix(line, "Mar 1") {
		t.Errorf("left edge label not clamped: %q", line)
	}
	if !strings.HasSuffix(line, "Mar 31") {
		t.Errorf("right edge label not clamped: %q", line)
	}
}
