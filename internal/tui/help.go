package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ─── Help Overlay ───────────────────────────────────────────────────────────

// renderHelpOverlay draws a centered help popup explaining the trackers,
// the heatmap tiers, and keybindings. Dismissed by pressing any key.
func (m Model) renderHelpOverlay(screenW, screenH int) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(colorLavender)
	headingStyle := lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	keyStyle := lipgloss.NewStyle().Bold(true).Foreground(colorSapphire)
	descStyle := lipgloss.NewStyle().Foreground(colorSubtext)
	bodyStyle := lipgloss.NewStyle().Foreground(colorText)
	dimHintStyle := lipgloss.NewStyle().Foreground(colorDim).Italic(true)

	var lines []string

	lines = append(lines, titleStyle.Render("  Vitalog Help"))
	lines = append(lines, "")

	// ── Trackers ──
	lines = append(lines, headingStyle.Render("  Trackers"))
	lines = append(lines, descStyle.Render("  Each card is one tracker; its chart covers the active range:"))
	lines = append(lines, "")

	for _, tracker := range m.trackers {
		var fieldLabels []string
		for _, f := range tracker.Fields {
			fieldLabels = append(fieldLabels, f.Label)
		}
		name := lipgloss.NewStyle().Foreground(TrackerColor(tracker.ID)).Bold(true).
			Render(tracker.Icon + " " + padRight(tracker.Name, 14))
		lines = append(lines, "    "+name+bodyStyle.Render(strings.Join(fieldLabels, ", ")))
	}
	lines = append(lines, "")

	// ── Chart reading ──
	lines = append(lines, headingStyle.Render("  Reading Charts"))
	lines = append(lines, "")
	lines = append(lines, "    "+bodyStyle.Render("Solid lines connect days that were actually logged."))
	lines = append(lines, "    "+bodyStyle.Render("Dashed spans bridge unlogged days; a zero is a real reading."))
	lines = append(lines, "    "+bodyStyle.Render("Marked points follow the zoom of the active range."))
	lines = append(lines, "")

	// ── Heatmap ──
	lines = append(lines, headingStyle.Render("  Activity Heatmap"))
	lines = append(lines, "")
	lines = append(lines, "    "+bodyStyle.Render("One cell per day, last 6 months. Color deepens with the"))
	lines = append(lines, "    "+bodyStyle.Render("number of distinct trackers logged that day."))
	lines = append(lines, "    "+heatmapLegend())
	lines = append(lines, "")

	// ── Dashboard keys ──
	lines = append(lines, headingStyle.Render("  Dashboard Keys"))
	lines = append(lines, "")

	keys := []struct{ key, desc string }{
		{"↑↓←→ / hjkl", "Move between tracker cards"},
		{"⏎ Enter", "Open tracker detail"},
		{"Esc / Backspace", "Back to the grid"},
		{"a", "Log an entry for the selected tracker"},
		{"1-9", "Toggle chart fields (detail view)"},
		{"x / d", "Delete the selected entry (detail view)"},
	}
	for _, k := range keys {
		lines = append(lines, "    "+keyStyle.Render(padRight(k.key, 18))+bodyStyle.Render(k.desc))
	}
	lines = append(lines, "")

	// ── Global ──
	lines = append(lines, headingStyle.Render("  Global"))
	lines = append(lines, "")

	globalKeys := []struct{ key, desc string }{
		{"Tab / Shift+Tab", "Cycle screens (Dashboard → Activity)"},
		{"r", "Cycle time range (7d → 30d → 90d → 365d)"},
		{"R", "Refresh now"},
		{"t", "Cycle theme"},
		{"?", "Toggle this help"},
		{"q / Ctrl+C", "Quit"},
	}
	for _, k := range globalKeys {
		lines = append(lines, "    "+keyStyle.Render(padRight(k.key, 18))+bodyStyle.Render(k.desc))
	}

	lines = append(lines, "")
	lines = append(lines, "  "+dimHintStyle.Render("Press any key to dismiss"))

	// ── Build the overlay box ──
	content := strings.Join(lines, "\n")

	contentW := 0
	for _, line := range lines {
		w := lipgloss.Width(line)
		if w > contentW {
			contentW = w
		}
	}
	contentH := len(lines)

	boxW := contentW + 4
	if boxW > screenW-4 {
		boxW = screenW - 4
	}
	boxH := contentH + 2
	if boxH > screenH-2 {
		boxH = screenH - 2
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Background(colorBase).
		Padding(1, 2).
		Width(boxW)

	box := boxStyle.Render(content)

	boxRenderedW := lipgloss.Width(box)
	boxRenderedH := strings.Count(box, "\n") + 1

	padTop := (screenH - boxRenderedH) / 2
	if padTop < 0 {
		padTop = 0
	}
	padLeft := (screenW - boxRenderedW) / 2
	if padLeft < 0 {
		padLeft = 0
	}

	var overlay strings.Builder
	for i := 0; i < padTop; i++ {
		overlay.WriteString("\n")
	}
	for i, line := range strings.Split(box, "\n") {
		if i > 0 {
			overlay.WriteString("\n")
		}
		overlay.WriteString(strings.Repeat(" ", padLeft))
		overlay.WriteString(line)
	}

	renderedLines := padTop + boxRenderedH
	for renderedLines < screenH {
		overlay.WriteString("\n")
		renderedLines++
	}

	return overlay.String()
}

// padRight pads a string with spaces to the given width.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
