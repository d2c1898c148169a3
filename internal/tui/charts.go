package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vitalog-dev/vitalog/internal/core"
)

type chartItem struct {
	Label    string
	Value    float64
	Color    lipgloss.Color
	SubLabel string
}

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

func RenderSparkline(values []float64, w int, color lipgloss.Color) string {
	if len(values) == 0 || w < 1 {
		return ""
	}

	if len(values) > w {
		step := float64(len(values)) / float64(w)
		sampled := make([]float64, w)
		for i := 0; i < w; i++ {
			idx := int(float64(i) * step)
			if idx >= len(values) {
				idx = len(values) - 1
			}
			sampled[i] = values[idx]
		}
		values = sampled
	}

	minV, maxV := values[0], values[0]
	for _, v := range values {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	rng := maxV - minV
	if rng == 0 {
		rng = 1
	}

	var sb strings.Builder
	for _, v := range values {
		idx := int((v - minV) / rng * float64(len(sparkBlocks)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkBlocks) {
			idx = len(sparkBlocks) - 1
		}
		sb.WriteRune(sparkBlocks[idx])
	}

	return lipgloss.NewStyle().Foreground(color).Render(sb.String())
}

func RenderHBarChart(items []chartItem, maxBarW, labelW int) string {
	if len(items) == 0 {
		return dimStyle.Render("  No data available")
	}
	if maxBarW < 4 {
		maxBarW = 4
	}

	maxVal := float64(0)
	for _, item := range items {
		if item.Value > maxVal {
			maxVal = item.Value
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	var lines []string
	for _, item := range items {
		label := item.Label
		if len(label) > labelW {
			label = label[:labelW-1] + "…"
		}

		labelRendered := labelStyle.Width(labelW).Render(label)

		barLen := int(item.Value / maxVal * float64(maxBarW))
		if barLen < 1 && item.Value > 0 {
			barLen = 1
		}
		emptyLen := maxBarW - barLen

		bar := lipgloss.NewStyle().Foreground(item.Color).Render(strings.Repeat("█", barLen))
		track := lipgloss.NewStyle().Foreground(colorSurface1).Render(strings.Repeat("░", emptyLen))

		valueStr := lipgloss.NewStyle().Foreground(item.Color).Bold(true).Render(core.FormatValue(item.Value))

		line := fmt.Sprintf("  %s %s%s  %s", labelRendered, bar, track, valueStr)

		if item.SubLabel != "" {
			line += "  " + dimStyle.Render(item.SubLabel)
		}

		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

func formatDateLabel(d string) string {
	if len(d) < 10 {
		return d
	}
	months := map[string]string{
		"01": "Jan", "02": "Feb", "03": "Mar", "04": "Apr",
		"05": "May", "06": "Jun", "07": "Jul", "08": "Aug",
		"09": "Sep", "10": "Oct", "11": "Nov", "12": "Dec",
	}
	month := months[d[5:7]]
	if month == "" {
		month = d[5:7]
	}
	day := d[8:10]
	if day[0] == '0' {
		day = day[1:]
	}
	return month + " " + day
}

// ChartField names a plotted field and its line color.
type ChartField struct {
	Name  string
	Label string
	Color lipgloss.Color
}

var brailleDots = [4][2]rune{
	{0x01, 0x08}, // top
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80}, // bottom
}

type brailleCanvas struct {
	cw, ch int   // character dimensions
	pw, ph int   // pixel dimensions (cw*2, ch*4)
	grid   []int // flat [ph*pw], series index per pixel (-1 = empty)
}

func newBrailleCanvas(cw, ch int) *brailleCanvas {
	pw, ph := cw*2, ch*4
	grid := make([]int, pw*ph)
	for i := range grid {
		grid[i] = -1
	}
	return &brailleCanvas{cw: cw, ch: ch, pw: pw, ph: ph, grid: grid}
}

func (c *brailleCanvas) set(px, py, seriesIdx int) {
	if px >= 0 && px < c.pw && py >= 0 && py < c.ph {
		c.grid[py*c.pw+px] = seriesIdx
	}
}

func (c *brailleCanvas) drawLine(x0, y0, x1, y1, seriesIdx int) {
	c.stroke(x0, y0, x1, y1, seriesIdx, func(int) bool { return true })
}

// drawDashedLine lights every other pair of pixels, reading as a dashed
// stroke at braille resolution.
func (c *brailleCanvas) drawDashedLine(x0, y0, x1, y1, seriesIdx int) {
	c.stroke(x0, y0, x1, y1, seriesIdx, func(step int) bool { return step%4 < 2 })
}

func (c *brailleCanvas) stroke(x0, y0, x1, y1, seriesIdx int, lit func(step int) bool) {
	dx := float64(x1 - x0)
	dy := float64(y1 - y0)
	steps := math.Abs(dx)
	if math.Abs(dy) > steps {
		steps = math.Abs(dy)
	}
	if steps == 0 {
		if lit(0) {
			c.set(x0, y0, seriesIdx)
		}
		return
	}
	xInc := dx / steps
	yInc := dy / steps
	x, y := float64(x0), float64(y0)
	for i := 0; i <= int(steps); i++ {
		if lit(i) {
			px := int(math.Round(x))
			py := int(math.Round(y))
			c.set(px, py, seriesIdx)
		}
		x += xInc
		y += yInc
	}
}

// markPoint thickens one plotted point so sampled days stand out against
// the connecting line.
func (c *brailleCanvas) markPoint(px, py, seriesIdx int) {
	c.set(px, py, seriesIdx)
	c.set(px, py-1, seriesIdx)
	c.set(px, py+1, seriesIdx)
	c.set(px-1, py, seriesIdx)
	c.set(px+1, py, seriesIdx)
}

func (c *brailleCanvas) render(colors []lipgloss.Color) []string {
	lines := make([]string, c.ch)
	for cy := 0; cy < c.ch; cy++ {
		var sb strings.Builder
		for cx := 0; cx < c.cw; cx++ {
			pattern := rune(0x2800)
			counts := make(map[int]int)

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					py := cy*4 + dy
					px := cx*2 + dx
					si := c.grid[py*c.pw+px]
					if si >= 0 {
						pattern |= brailleDots[dy][dx]
						counts[si]++
					}
				}
			}

			if pattern == 0x2800 {
				sb.WriteRune(' ')
			} else {
				bestSi, bestCnt := 0, 0
				for si, cnt := range counts {
					if cnt > bestCnt {
						bestSi = si
						bestCnt = cnt
					}
				}
				color := colorSubtext
				if bestSi < len(colors) {
					color = colors[bestSi]
				}
				sb.WriteString(lipgloss.NewStyle().Foreground(color).Render(string(pattern)))
			}
		}
		lines[cy] = sb.String()
	}
	return lines
}

// RenderSeriesChart plots a dense series onto a braille canvas. Runs of
// logged days are stroked solid; gaps and the carry-in lead-in are
// dashed so missing days are visibly distinct from zero readings.
func RenderSeriesChart(title string, s core.Series, fields []ChartField, w, h int, zoom core.Zoom, unit string) string {
	if len(fields) == 0 || h < 3 {
		return ""
	}

	yAxisW := 8
	plotW := w - yAxisW - 4
	if plotW < 20 {
		plotW = 20
	}

	canvas := newBrailleCanvas(plotW, h)

	names := make([]string, len(fields))
	colors := make([]lipgloss.Color, len(fields))
	for i, f := range fields {
		names[i] = f.Name
		colors[i] = f.Color
	}

	geo, err := core.RenderGeometry(s, names, float64(canvas.pw), float64(canvas.ph), zoom)
	if err != nil {
		return ""
	}

	pathIdx := make(map[string]int, len(names))
	for i, name := range names {
		pathIdx[name] = i
	}

	for _, path := range geo.Paths {
		si := pathIdx[path.Field]
		for _, seg := range path.Segments {
			for i := 1; i < len(seg.Points); i++ {
				a, b := seg.Points[i-1], seg.Points[i]
				x0, y0 := int(math.Round(a.X)), int(math.Round(a.Y))
				x1, y1 := int(math.Round(b.X)), int(math.Round(b.Y))
				if seg.Kind == core.SegmentRun {
					canvas.drawLine(x0, y0, x1, y1, si)
				} else {
					canvas.drawDashedLine(x0, y0, x1, y1, si)
				}
			}
			if seg.Kind != core.SegmentRun {
				continue
			}
			for _, p := range seg.Points {
				if p.Emphasized {
					canvas.markPoint(int(math.Round(p.X)), int(math.Round(p.Y)), si)
				}
			}
		}
	}

	plotLines := canvas.render(colors)

	// Quartile labels keyed by character row.
	rowLabels := make(map[int]string, len(geo.YTicks))
	for _, tick := range geo.YTicks {
		row := int(tick.Pos) / 4
		if row < 0 {
			row = 0
		}
		if row >= h {
			row = h - 1
		}
		rowLabels[row] = tick.Label
	}

	var sb strings.Builder

	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(colorLavender)
	sb.WriteString("  " + sectionStyle.Render(title))
	if unit != "" {
		sb.WriteString(" " + dimStyle.Render("("+unit+")"))
	}
	sb.WriteString("\n")
	sb.WriteString("  " + sectionSepStyle.Render(strings.Repeat("─", w-4)) + "\n")

	for row := 0; row < h; row++ {
		label := rowLabels[row]
		sb.WriteString(fmt.Sprintf("  %*s %s%s\n",
			yAxisW-2, dimStyle.Render(label),
			chartAxisStyle.Render("┤"),
			plotLines[row]))
	}

	sb.WriteString(fmt.Sprintf("  %*s %s%s\n", yAxisW-2, "",
		chartAxisStyle.Render("└"),
		chartAxisStyle.Render(strings.Repeat("─", plotW))))

	sb.WriteString(fmt.Sprintf("  %*s  %s\n", yAxisW-2, "",
		dimStyle.Render(xAxisLine(geo.XTicks, plotW))))

	markers := []string{"●", "◆", "■", "▲", "★"}
	sb.WriteString("  ")
	for i, f := range fields {
		if i > 0 {
			sb.WriteString("   ")
		}
		mk := markers[i%len(markers)]
		sb.WriteString(lipgloss.NewStyle().Foreground(f.Color).Render(mk))
		sb.WriteString(" " + dimStyle.Render(f.Label))
	}
	sb.WriteString("\n")

	return sb.String()
}

// xAxisLine lays tick labels into a fixed-width line, centered under
// their tick positions without overlapping the edges.
func xAxisLine(ticks []core.Tick, plotW int) string {
	line := make([]byte, plotW)
	for i := range line {
		line[i] = ' '
	}

	for _, tick := range ticks {
		label := formatDateLabel(tick.Label)
		x := int(tick.Pos) / 2
		start := x - len(label)/2
		if start < 0 {
			start = 0
		}
		if start+len(label) > plotW {
			start = plotW - len(label)
		}
		if start < 0 {
			start = 0
		}
		for j := 0; j < len(label) && start+j < plotW; j++ {
			line[start+j] = label[j]
		}
	}
	return string(line)
}
