package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// ─── Color Palette ──────────────────────────────────────────────────────────
//
// Populated by applyTheme; the defaults here match Catppuccin Mocha so the
// package is usable before any theme is applied.

var (
	// Base tones
	colorBase     = lipgloss.Color("#1E1E2E") // background
	colorMantle   = lipgloss.Color("#181825") // deeper bg
	colorSurface0 = lipgloss.Color("#313244") // card bg
	colorSurface1 = lipgloss.Color("#45475A") // lighter surface
	colorSurface2 = lipgloss.Color("#585B70") // even lighter surface
	colorText     = lipgloss.Color("#CDD6F4") // primary text
	colorSubtext  = lipgloss.Color("#A6ADC8") // secondary text
	colorDim      = lipgloss.Color("#585B70") // muted, borders
	colorOverlay  = lipgloss.Color("#45475A") // selected bg

	// Accents
	colorAccent    = lipgloss.Color("#CBA6F7") // mauve – primary accent
	colorBlue      = lipgloss.Color("#89B4FA") // section headers
	colorSapphire  = lipgloss.Color("#74C7EC") // links, secondary accent
	colorGreen     = lipgloss.Color("#A6E3A1") // OK / healthy
	colorYellow    = lipgloss.Color("#F9E2AF") // warning
	colorRed       = lipgloss.Color("#F38BA8") // error / critical
	colorPeach     = lipgloss.Color("#FAB387") // highlights
	colorTeal      = lipgloss.Color("#94E2D5") // secondary highlight
	colorFlamingo  = lipgloss.Color("#F2CDCD") // subtle highlight
	colorRosewater = lipgloss.Color("#F5E0DC") // hover
	colorLavender  = lipgloss.Color("#B4BEFE") // titles
	colorSky       = lipgloss.Color("#89DCEB") // info
	colorMaroon    = lipgloss.Color("#EBA0AC") // alt-red

	// Semantic aliases
	colorBorder   = colorDim
	colorSelected = colorAccent
)

// ─── Reusable Styles ────────────────────────────────────────────────────────

var (
	headerStyle            lipgloss.Style
	headerBrandStyle       lipgloss.Style
	sectionHeaderStyle     lipgloss.Style
	helpStyle              lipgloss.Style
	helpKeyStyle           lipgloss.Style
	labelStyle             lipgloss.Style
	valueStyle             lipgloss.Style
	dimStyle               lipgloss.Style
	tealStyle              lipgloss.Style
	cardNormalStyle        lipgloss.Style
	cardSelectedStyle      lipgloss.Style
	heroValueStyle         lipgloss.Style
	heroLabelStyle         lipgloss.Style
	metricValueStyle       lipgloss.Style
	sectionSepStyle        lipgloss.Style
	screenTabActiveStyle   lipgloss.Style
	screenTabInactiveStyle lipgloss.Style
	chartTitleStyle        lipgloss.Style
	chartAxisStyle         lipgloss.Style
	chartLegendTitleStyle  lipgloss.Style
	formLabelStyle         lipgloss.Style
	formErrorStyle         lipgloss.Style
	statusLineStyle        lipgloss.Style
)

func init() {
	rebuildStyles()
}

// rebuildStyles re-derives every style from the current palette. Called
// once at startup and again after each theme change.
func rebuildStyles() {
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorLavender)
	headerBrandStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	helpStyle = lipgloss.NewStyle().Foreground(colorDim)
	helpKeyStyle = lipgloss.NewStyle().Foreground(colorSapphire).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(colorSubtext)
	valueStyle = lipgloss.NewStyle().Foreground(colorText)
	dimStyle = lipgloss.NewStyle().Foreground(colorDim)
	tealStyle = lipgloss.NewStyle().Foreground(colorTeal)

	cardNormalStyle = lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)
	cardSelectedStyle = lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1).Background(colorSurface0)

	heroValueStyle = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	heroLabelStyle = lipgloss.NewStyle().Foreground(colorSubtext)
	metricValueStyle = lipgloss.NewStyle().Foreground(colorRosewater).Bold(true)
	sectionSepStyle = lipgloss.NewStyle().Foreground(colorSurface1)

	screenTabActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(colorMantle).Background(colorAccent).Padding(0, 1)
	screenTabInactiveStyle = lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1)

	chartTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	chartAxisStyle = lipgloss.NewStyle().Foreground(colorDim)
	chartLegendTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorSubtext)

	formLabelStyle = lipgloss.NewStyle().Foreground(colorSubtext)
	formErrorStyle = lipgloss.NewStyle().Foreground(colorRed)
	statusLineStyle = lipgloss.NewStyle().Foreground(colorGreen)
}

// ─── Tracker & Field Color Palettes ─────────────────────────────────────────

// TrackerColor assigns a stable palette slot to each tracker; the
// actual color follows the active theme.
func TrackerColor(trackerID string) lipgloss.Color {
	switch trackerID {
	case "weight":
		return colorLavender
	case "water":
		return colorSapphire
	case "steps":
		return colorGreen
	case "cardio":
		return colorPeach
	case "sleep":
		return colorBlue
	case "measurements":
		return colorTeal
	case "health":
		return colorRed
	case "workouts":
		return colorYellow
	}
	// Fallback: hash the name to pick a color from the field palette
	h := 0
	for _, ch := range trackerID {
		h = h*31 + int(ch)
	}
	if h < 0 {
		h = -h
	}
	p := fieldColorPalette()
	return p[h%len(p)]
}

// fieldColorPalette cycles through accents for field-level chart lines.
func fieldColorPalette() []lipgloss.Color {
	return []lipgloss.Color{
		colorPeach, colorTeal, colorSapphire, colorGreen,
		colorYellow, colorLavender, colorSky, colorFlamingo,
		colorMaroon, colorRosewater, colorBlue, colorAccent,
	}
}

// FieldColor returns a color for a field line by its index.
func FieldColor(idx int) lipgloss.Color {
	if idx < 0 {
		idx = 0
	}
	p := fieldColorPalette()
	return p[idx%len(p)]
}

// ─── Heatmap Tiers ──────────────────────────────────────────────────────────

// TierColor maps an activity density tier onto a cold-to-hot ramp.
// Tier 0 is an empty day.
func TierColor(tier int) lipgloss.Color {
	ramp := []lipgloss.Color{
		colorSurface0,
		colorSurface1,
		colorSurface2,
		colorSapphire,
		colorTeal,
		colorGreen,
		colorYellow,
	}
	if tier < 0 {
		tier = 0
	}
	if tier >= len(ramp) {
		tier = len(ramp) - 1
	}
	return ramp[tier]
}
