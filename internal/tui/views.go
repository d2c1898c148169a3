package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vitalog-dev/vitalog/internal/core"
	"github.com/vitalog-dev/vitalog/internal/store"
)

// ─── Dashboard grid ─────────────────────────────────────────────────────────

func (m Model) renderTrackerGrid(w, h int) string {
	cardRowH := h * 2 / 5 / 2
	if cardRowH < 4 {
		cardRowH = 4
	}
	chartH := h - 2*cardRowH
	if chartH < 8 {
		chartH = 8
	}

	cardW := (w - (dashboardGridCols - 1)) / dashboardGridCols
	innerW := cardW - 4

	cards := make([]Card, 0, len(m.trackers))
	for i, tracker := range m.trackers {
		c := Card{
			Title:   tracker.Name,
			Icon:    tracker.Icon,
			Content: m.trackerCardContent(tracker, innerW, cardRowH-2),
			Color:   colorSurface1,
		}
		if i == m.cursor {
			c.Color = TrackerColor(tracker.ID)
		}
		cards = append(cards, c)
	}

	grid := RenderCardGrid(cards, dashboardGridCols, w, 2*cardRowH)
	chart := m.renderMainChart(m.selectedTracker(), w, chartH-6)
	return grid + "\n" + chart
}

func (m Model) trackerCardContent(tracker core.TrackerSchema, innerW, bodyH int) string {
	series := m.data.Series[tracker.ID]
	primary := tracker.Fields[0]

	heroLine := dimStyle.Render("no data yet")
	if v, ok := latestValue(series, primary.Name); ok {
		display := DisplayValue(m.cfg.Units, primary.Unit, v)
		heroLine = heroValueStyle.Render(core.FormatValue(display)) +
			" " + heroLabelStyle.Render(DisplayUnit(m.cfg.Units, primary.Unit))
	}

	count := m.data.Counts[tracker.ID]
	countLine := dimStyle.Render(fmt.Sprintf("%d entries · %s", count, m.rng.Label()))

	lines := []string{heroLine, countLine}
	if bodyH > 2 {
		spark := RenderSparkline(sparkValues(series, primary.Name), innerW, TrackerColor(tracker.ID))
		lines = append(lines, spark)
	}
	return cardBody(lines...)
}

func (m Model) renderMainChart(tracker core.TrackerSchema, w, chartH int) string {
	series, ok := m.data.Series[tracker.ID]
	if !ok || len(series.Days) == 0 {
		return "  " + dimStyle.Render("no entries in range · press a to log one")
	}

	fields := m.chartFields(tracker)
	display := DisplaySeries(m.cfg.Units, tracker, series)
	unit := DisplayUnit(m.cfg.Units, tracker.Fields[0].Unit)
	title := tracker.Icon + " " + tracker.Name
	return RenderSeriesChart(title, display, fields, w, chartH, m.rng.Zoom(), unit)
}

// chartFields maps the tracker's visible fields onto colored chart lines.
// Single-field trackers use the tracker's own color, multi-field ones the
// field palette so lines stay distinguishable.
func (m Model) chartFields(tracker core.TrackerSchema) []ChartField {
	visible := m.visibleFields(tracker)
	fields := make([]ChartField, 0, len(visible))
	for i, f := range visible {
		color := TrackerColor(tracker.ID)
		if len(tracker.Fields) > 1 {
			color = FieldColor(i)
		}
		fields = append(fields, ChartField{Name: f.Name, Label: f.Label, Color: color})
	}
	return fields
}

// ─── Tracker detail ─────────────────────────────────────────────────────────

func (m Model) renderTrackerDetail(w, h int) string {
	tracker := m.selectedTracker()
	entries := m.data.Recent[tracker.ID]

	recentRows := len(entries) + 2
	maxRecent := h / 3
	if maxRecent < 4 {
		maxRecent = 4
	}
	if recentRows > maxRecent {
		recentRows = maxRecent
	}

	chartH := h - recentRows - 7 // chart chrome: title, sep, axis, labels, legend, toggles
	if chartH < 6 {
		chartH = 6
	}

	chart := m.renderMainChart(tracker, w, chartH)
	toggles := m.renderFieldToggles(tracker)
	recent := m.renderRecentEntries(tracker, entries, recentRows-2)

	return chart + toggles + "\n" + recent
}

func (m Model) renderFieldToggles(tracker core.TrackerSchema) string {
	if len(tracker.Fields) <= 1 {
		return ""
	}
	hidden := m.hiddenFields[tracker.ID]
	var parts []string
	for i, f := range tracker.Fields {
		key := helpKeyStyle.Render(fmt.Sprintf("%d", i+1))
		label := f.Label
		if hidden[f.Name] {
			parts = append(parts, key+" "+dimStyle.Render(label+" (off)"))
		} else {
			parts = append(parts, key+" "+labelStyle.Render(label))
		}
	}
	return "  " + chartLegendTitleStyle.Render("fields") + "  " + strings.Join(parts, "  ")
}

func (m Model) renderRecentEntries(tracker core.TrackerSchema, entries []store.Entry, maxRows int) string {
	var sb strings.Builder
	sb.WriteString("  " + sectionHeaderStyle.Render("Recent entries") + "\n")

	if len(entries) == 0 {
		sb.WriteString("  " + dimStyle.Render("nothing logged yet") + "\n")
		return sb.String()
	}

	if maxRows < 1 {
		maxRows = 1
	}

	// Keep the selection on screen.
	start := 0
	if m.recentCursor >= maxRows {
		start = m.recentCursor - maxRows + 1
	}

	for i := start; i < len(entries) && i < start+maxRows; i++ {
		e := entries[i]
		line := dimStyle.Render(e.OccurredAt.In(m.loc).Format("Jan 02")) +
			"  " + m.entrySummary(tracker, e)
		if e.Note != "" {
			line += "  " + dimStyle.Render("· "+e.Note)
		}
		if i == m.recentCursor {
			sb.WriteString("  " + helpKeyStyle.Render("›") + " " + line + "\n")
		} else {
			sb.WriteString("    " + line + "\n")
		}
	}
	return sb.String()
}

func (m Model) entrySummary(tracker core.TrackerSchema, e store.Entry) string {
	var parts []string
	for _, f := range tracker.Fields {
		v, ok := e.Values[f.Name]
		if !ok {
			continue
		}
		display := DisplayValue(m.cfg.Units, f.Unit, v)
		parts = append(parts,
			valueStyle.Render(core.FormatValue(display))+
				" "+dimStyle.Render(DisplayUnit(m.cfg.Units, f.Unit)))
	}
	return strings.Join(parts, "  ")
}

// ─── Activity screen ────────────────────────────────────────────────────────

func (m Model) renderActivity(w, h int) string {
	heatmap := RenderHeatmap(m.data.Heatmap, "Activity · last 6 months")

	items := make([]chartItem, 0, len(m.trackers))
	for _, tracker := range m.trackers {
		items = append(items, chartItem{
			Label: tracker.Icon + " " + tracker.Name,
			Value: float64(m.data.Counts[tracker.ID]),
			Color: TrackerColor(tracker.ID),
		})
	}

	barW := w - 40
	barW = clamp(barW, 20, 60)
	volume := "  " + sectionHeaderStyle.Render("Entries · "+m.rng.Label()) + "\n" +
		RenderHBarChart(items, barW, 18)

	out := heatmap + "\n" + volume
	lines := strings.Split(out, "\n")
	if len(lines) > h {
		lines = lines[:h]
	}
	return strings.Join(lines, "\n")
}

// ─── Entry form overlay ─────────────────────────────────────────────────────

func (m Model) renderFormOverlay() string {
	body := m.form.view(m.width)
	return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Center, body)
}

// ─── Series helpers ─────────────────────────────────────────────────────────

// latestValue scans the series backwards for the newest aggregated value,
// falling back to the carry-in when the whole window is empty.
func latestValue(s core.Series, field string) (float64, bool) {
	vs := s.Values[field]
	for i := len(vs) - 1; i >= 0; i-- {
		if vs[i] != nil {
			return *vs[i], true
		}
	}
	if v, ok := s.CarryIn[field]; ok {
		return v, true
	}
	return 0, false
}

// sparkValues flattens a field's logged days into a compact shape for a
// sparkline; missing days are skipped rather than drawn as zero.
func sparkValues(s core.Series, field string) []float64 {
	var out []float64
	for _, v := range s.Values[field] {
		if v != nil {
			out = append(out, *v)
		}
	}
	return out
}
