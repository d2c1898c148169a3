package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vitalog-dev/vitalog/internal/core"
)

const heatmapCellGlyph = "■ "

// RenderHeatmap draws the half-year activity grid: one cell per day, five
// days per column, shaded by how many distinct trackers were logged.
func RenderHeatmap(cells []core.HeatmapCell, title string) string {
	columns := core.HeatmapColumns(cells)
	if len(columns) == 0 {
		return dimStyle.Render("  No activity yet")
	}

	var sb strings.Builder
	sb.WriteString("  " + headerStyle.Render(title) + "\n")
	sb.WriteString("  " + monthLabelLine(columns) + "\n")

	for row := 0; row < core.HeatmapColumnSize; row++ {
		sb.WriteString("  ")
		for _, col := range columns {
			if row >= len(col) {
				sb.WriteString(strings.Repeat(" ", len([]rune(heatmapCellGlyph))))
				continue
			}
			tier := core.TierFor(col[row].Count)
			sb.WriteString(lipgloss.NewStyle().Foreground(TierColor(tier)).Render(heatmapCellGlyph))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("  " + heatmapLegend() + "\n")
	return sb.String()
}

// monthLabelLine marks each column where a new month begins.
func monthLabelLine(columns [][]core.HeatmapCell) string {
	cellW := len([]rune(heatmapCellGlyph))
	width := len(columns) * cellW
	line := make([]rune, width)
	for i := range line {
		line[i] = ' '
	}

	prevMonth := ""
	for ci, col := range columns {
		if len(col) == 0 || len(col[0].Date) < 7 {
			continue
		}
		month := col[0].Date[5:7]
		if month == prevMonth {
			continue
		}
		prevMonth = month
		label := monthAbbrev(month)
		pos := ci * cellW
		for j, r := range label {
			if pos+j < width {
				line[pos+j] = r
			}
		}
	}
	return dimStyle.Render(string(line))
}

func monthAbbrev(mm string) string {
	names := map[string]string{
		"01": "Jan", "02": "Feb", "03": "Mar", "04": "Apr",
		"05": "May", "06": "Jun", "07": "Jul", "08": "Aug",
		"09": "Sep", "10": "Oct", "11": "Nov", "12": "Dec",
	}
	if name, ok := names[mm]; ok {
		return name
	}
	return mm
}

func heatmapLegend() string {
	var sb strings.Builder
	sb.WriteString(dimStyle.Render("Less "))
	for tier := 0; tier < core.HeatmapTiers; tier++ {
		sb.WriteString(lipgloss.NewStyle().Foreground(TierColor(tier)).Render("■"))
	}
	sb.WriteString(dimStyle.Render(" More"))
	return sb.String()
}
