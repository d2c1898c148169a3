package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Card is one bordered tracker panel in the dashboard grid.
type Card struct {
	Title   string
	Icon    string
	Content string         // pre-rendered body lines
	Color   lipgloss.Color // border accent; selection swaps it
}

// RenderCardGrid lays cards out left to right in fixed columns of equal
// width. Every row gets the same height and the result is padded or cut
// to exactly totalH lines.
func RenderCardGrid(cards []Card, cols, totalW, totalH int) string {
	if len(cards) == 0 || cols < 1 || totalW < 10 || totalH < 3 {
		return ""
	}

	rowCount := (len(cards) + cols - 1) / cols
	rowH := totalH / rowCount
	if rowH < 3 {
		rowH = 3
	}

	const gap = 1
	cardW := (totalW - gap*(cols-1)) / cols
	if cardW < 8 {
		cardW = 8
	}

	var rows []string
	for start := 0; start < len(cards); start += cols {
		end := start + cols
		if end > len(cards) {
			end = len(cards)
		}
		parts := make([]string, 0, 2*cols-1)
		for _, c := range cards[start:end] {
			if len(parts) > 0 {
				parts = append(parts, strings.Repeat(" ", gap))
			}
			parts = append(parts, renderCard(c, cardW, rowH))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, parts...))
	}

	lines := strings.Split(strings.Join(rows, "\n"), "\n")
	if len(lines) > totalH {
		lines = lines[:totalH]
	}
	for len(lines) < totalH {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// renderCard draws one card with the title embedded in its top border:
//
//	┌─ ⚖ Weight ──────┐
//	│ 181.5 lbs       │
//	└─────────────────┘
func renderCard(c Card, w, h int) string {
	innerW := w - 4 // borders plus one space of padding each side
	if innerW < 1 {
		innerW = 1
	}

	border := lipgloss.NewStyle().Foreground(c.Color)
	title := strings.TrimSpace(c.Icon + " " + c.Title)
	titled := lipgloss.NewStyle().Bold(true).Foreground(c.Color).Render(title)

	dashes := w - lipgloss.Width(titled) - 5 // "┌─ " and " …┐"
	if dashes < 1 {
		dashes = 1
	}

	var sb strings.Builder
	sb.WriteString(border.Render("┌─ "))
	sb.WriteString(titled)
	sb.WriteString(border.Render(" " + strings.Repeat("─", dashes) + "┐"))

	body := strings.Split(c.Content, "\n")
	if len(body) > h-2 {
		body = body[:h-2]
	}
	for len(body) < h-2 {
		body = append(body, "")
	}
	for _, line := range body {
		line = truncateCell(line, innerW)
		pad := innerW - lipgloss.Width(line)
		if pad < 0 {
			pad = 0
		}
		sb.WriteString("\n")
		sb.WriteString(border.Render("│") + " " + line + strings.Repeat(" ", pad) + " " + border.Render("│"))
	}

	sb.WriteString("\n")
	sb.WriteString(border.Render("└" + strings.Repeat("─", w-2) + "┘"))
	return sb.String()
}

// truncateCell cuts an overlong line down to the card's inner width.
func truncateCell(line string, w int) string {
	if lipgloss.Width(line) <= w {
		return line
	}
	runes := []rune(line)
	if len(runes) <= w || w < 2 {
		return line
	}
	return string(runes[:w-1]) + "…"
}

func RenderSubTabBar(labels []string, active int, w int) string {
	var sb strings.Builder
	for i, label := range labels {
		tab := fmt.Sprintf("%d:%s", i+1, label)
		if i == active {
			sb.WriteString(screenTabActiveStyle.Render(tab))
		} else {
			sb.WriteString(screenTabInactiveStyle.Render(tab))
		}
	}
	if pad := w - lipgloss.Width(sb.String()); pad > 0 {
		sb.WriteString(strings.Repeat(" ", pad))
	}
	return sb.String()
}

func cardBody(lines ...string) string {
	return strings.Join(lines, "\n")
}
