package tui

import (
	"context"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vitalog-dev/vitalog/internal/config"
	"github.com/vitalog-dev/vitalog/internal/core"
	"github.com/vitalog-dev/vitalog/internal/store"
)

type tickMsg time.Time

func tickCmd(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type screenTab int

const (
	screenDashboard screenTab = iota // tracker cards plus the main chart
	screenActivity                   // half-year heatmap and logging volume
)

var screenLabelByTab = map[screenTab]string{
	screenDashboard: "Dashboard",
	screenActivity:  "Activity",
}

type viewMode int

const (
	modeGrid   viewMode = iota // navigating the tracker card grid
	modeDetail                 // single tracker: full chart and recent entries
)

const dashboardGridCols = 4

// DashboardData is everything one refresh pass loads: per-tracker series
// for the active range, recent entries, entry counts for the range, and
// the activity heatmap cells.
type DashboardData struct {
	Series  map[string]core.Series
	Recent  map[string][]store.Entry
	Counts  map[string]int
	Heatmap []core.HeatmapCell
}

// Backend is the data access surface the dashboard runs against. The
// local implementation wraps the sqlite store; tests substitute fakes.
type Backend interface {
	Dashboard(ctx context.Context, rng core.TimeRange) (DashboardData, error)
	SaveEntry(ctx context.Context, e store.Entry) (string, error)
	DeleteEntry(ctx context.Context, id string) error
}

// ConfigMsg is sent from outside the program (the settings file watcher)
// when the config file changes on disk.
type ConfigMsg config.Config

// AppUpdateMsg is sent from outside the program when the startup release
// check finds a newer version.
type AppUpdateMsg struct {
	CurrentVersion string
	LatestVersion  string
	UpgradeHint    string
}

type dataMsg struct {
	data DashboardData
	err  error
}

type entrySavedMsg struct {
	tracker string
	err     error
}

type entryDeletedMsg struct {
	err error
}

type themePersistedMsg struct {
	err error
}

type rangePersistedMsg struct {
	err error
}

type Model struct {
	backend  Backend
	cfg      config.Config
	loc      *time.Location
	trackers []core.TrackerSchema

	rng  core.TimeRange
	data DashboardData

	screen screenTab
	mode   viewMode
	cursor int // selected tracker index in grid and detail

	hiddenFields map[string]map[string]bool // trackerID -> field name -> hidden
	recentCursor int                        // selected row in the detail entry list

	form *entryForm

	showHelp   bool
	width      int
	height     int
	refreshing bool // manual refresh in progress
	hasData    bool // first dataMsg arrived
	status     string
}

func NewModel(backend Backend, cfg config.Config) Model {
	rng, _ := core.ParseTimeRange(cfg.UI.DefaultRange)
	return Model{
		backend:      backend,
		cfg:          cfg,
		loc:          cfg.Location(),
		trackers:     core.Trackers(),
		rng:          rng,
		hiddenFields: make(map[string]map[string]bool),
	}
}

func (m Model) refreshEvery() time.Duration {
	return time.Duration(m.cfg.UI.RefreshIntervalSeconds) * time.Second
}

func (m Model) loadCmd() tea.Cmd {
	backend, rng := m.backend, m.rng
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		data, err := backend.Dashboard(ctx, rng)
		return dataMsg{data: data, err: err}
	}
}

func (m Model) saveEntryCmd(e store.Entry) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, err := backend.SaveEntry(ctx, e)
		return entrySavedMsg{tracker: e.Tracker, err: err}
	}
}

func (m Model) deleteEntryCmd(id string) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return entryDeletedMsg{err: backend.DeleteEntry(ctx, id)}
	}
}

func (m Model) persistThemeCmd(themeName string) tea.Cmd {
	return func() tea.Msg {
		err := config.SaveTheme(themeName)
		if err != nil {
			log.Printf("theme persist: %v", err)
		}
		return themePersistedMsg{err: err}
	}
}

func (m Model) persistRangeCmd(rng core.TimeRange) tea.Cmd {
	return func() tea.Msg {
		err := config.SaveDefaultRange(string(rng))
		if err != nil {
			log.Printf("range persist: %v", err)
		}
		return rangePersistedMsg{err: err}
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), tickCmd(m.refreshEvery()))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, tea.Batch(m.loadCmd(), tickCmd(m.refreshEvery()))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dataMsg:
		m.refreshing = false
		if msg.err != nil {
			m.status = "load failed: " + msg.err.Error()
			return m, nil
		}
		m.data = msg.data
		m.hasData = true
		m.clampRecentCursor()
		return m, nil

	case ConfigMsg:
		cfg := config.Config(msg)
		m.cfg = cfg
		m.loc = cfg.Location()
		SetThemeByName(cfg.Theme)
		return m, nil

	case AppUpdateMsg:
		m.status = "update available: " + msg.LatestVersion
		if msg.UpgradeHint != "" {
			m.status += " · " + msg.UpgradeHint
		}
		return m, nil

	case entrySavedMsg:
		if msg.err != nil {
			m.status = "save failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "entry logged"
		return m, m.loadCmd()

	case entryDeletedMsg:
		if msg.err != nil {
			m.status = "delete failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "entry deleted"
		return m, m.loadCmd()

	case themePersistedMsg:
		if msg.err != nil {
			m.status = "theme save failed"
		}
		return m, nil

	case rangePersistedMsg:
		if msg.err != nil {
			m.status = "range save failed"
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form != nil {
		return m.handleFormKey(msg)
	}

	if msg.String() == "?" {
		m.showHelp = !m.showHelp
		return m, nil
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.screen = m.nextScreen(1)
		m.mode = modeGrid
		return m, nil
	case "shift+tab":
		m.screen = m.nextScreen(-1)
		m.mode = modeGrid
		return m, nil
	case "t":
		name := CycleTheme()
		return m, m.persistThemeCmd(name)
	case "r":
		m.rng = core.NextTimeRange(m.rng)
		m.status = ""
		return m, tea.Batch(m.loadCmd(), m.persistRangeCmd(m.rng))
	case "R":
		m.refreshing = true
		return m, m.loadCmd()
	}

	if m.screen == screenDashboard {
		if m.mode == modeDetail {
			return m.handleDetailKey(msg)
		}
		return m.handleGridKey(msg)
	}
	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	entry, done, cmd := m.form.handleKey(msg, m.loc)
	if !done {
		return m, cmd
	}
	m.form = nil
	if entry == nil {
		return m, nil
	}
	return m, m.saveEntryCmd(*entry)
}

func (m Model) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.trackers)
	switch msg.String() {
	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right", "l":
		if m.cursor < n-1 {
			m.cursor++
		}
	case "up", "k":
		if m.cursor-dashboardGridCols >= 0 {
			m.cursor -= dashboardGridCols
		}
	case "down", "j":
		if m.cursor+dashboardGridCols < n {
			m.cursor += dashboardGridCols
		}
	case "enter":
		m.mode = modeDetail
		m.recentCursor = 0
	case "a":
		return m.openForm()
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace":
		m.mode = modeGrid
		return m, nil
	case "a":
		return m.openForm()
	case "up", "k":
		if m.recentCursor > 0 {
			m.recentCursor--
		}
		return m, nil
	case "down", "j":
		m.recentCursor++
		m.clampRecentCursor()
		return m, nil
	case "x", "d":
		entries := m.data.Recent[m.selectedTracker().ID]
		if m.recentCursor < len(entries) {
			return m, m.deleteEntryCmd(entries[m.recentCursor].ID)
		}
		return m, nil
	}

	// Digit keys toggle field visibility in the detail chart.
	if len(msg.String()) == 1 && msg.String() >= "1" && msg.String() <= "9" {
		idx := int(msg.String()[0] - '1')
		m.toggleField(m.selectedTracker(), idx)
	}
	return m, nil
}

func (m Model) openForm() (tea.Model, tea.Cmd) {
	m.form = newEntryForm(m.selectedTracker(), m.loc)
	m.status = ""
	return m, m.form.focusIndex(0)
}

func (m *Model) toggleField(tracker core.TrackerSchema, idx int) {
	if idx < 0 || idx >= len(tracker.Fields) {
		return
	}
	hidden := m.hiddenFields[tracker.ID]
	if hidden == nil {
		hidden = make(map[string]bool)
		m.hiddenFields[tracker.ID] = hidden
	}
	name := tracker.Fields[idx].Name
	hidden[name] = !hidden[name]

	// At least one field stays visible.
	if len(m.visibleFields(tracker)) == 0 {
		hidden[name] = false
	}
}

func (m Model) visibleFields(tracker core.TrackerSchema) []core.FieldSchema {
	hidden := m.hiddenFields[tracker.ID]
	var out []core.FieldSchema
	for _, f := range tracker.Fields {
		if !hidden[f.Name] {
			out = append(out, f)
		}
	}
	return out
}

func (m Model) selectedTracker() core.TrackerSchema {
	if m.cursor < 0 || m.cursor >= len(m.trackers) {
		return m.trackers[0]
	}
	return m.trackers[m.cursor]
}

func (m *Model) clampRecentCursor() {
	entries := m.data.Recent[m.selectedTracker().ID]
	if m.recentCursor >= len(entries) {
		m.recentCursor = len(entries) - 1
	}
	if m.recentCursor < 0 {
		m.recentCursor = 0
	}
}

func (m Model) nextScreen(step int) screenTab {
	screens := []screenTab{screenDashboard, screenActivity}
	idx := 0
	for i, screen := range screens {
		if screen == m.screen {
			idx = i
			break
		}
	}
	next := (idx + step) % len(screens)
	if next < 0 {
		next += len(screens)
	}
	return screens[next]
}

func (m Model) View() string {
	if m.width < 40 || m.height < 10 {
		return lipgloss.NewStyle().
			Foreground(colorOverlay).
			Render("\n  Terminal too small. Resize to at least 40×10.")
	}
	if !m.hasData {
		return "\n  " + dimStyle.Render("loading…")
	}
	if m.showHelp {
		return m.renderHelpOverlay(m.width, m.height)
	}
	if m.form != nil {
		return m.renderFormOverlay()
	}
	return m.renderScreen()
}

func (m Model) renderScreen() string {
	w, h := m.width, m.height

	header := m.renderHeader(w)
	headerH := strings.Count(header, "\n") + 1

	footer := m.renderFooter(w)
	footerH := strings.Count(footer, "\n") + 1

	contentH := h - headerH - footerH
	if contentH < 3 {
		contentH = 3
	}

	var content string
	switch m.screen {
	case screenActivity:
		content = m.renderActivity(w, contentH)
	default:
		if m.mode == modeDetail {
			content = m.renderTrackerDetail(w, contentH)
		} else {
			content = m.renderTrackerGrid(w, contentH)
		}
	}

	return header + "\n" + content + "\n" + footer
}

func (m Model) renderHeader(w int) string {
	brand := headerStyle.Render("♥ Vitalog")
	tabs := m.renderScreenTabs()
	rangeInfo := dimStyle.Render("range ") + tealStyle.Render(m.rng.Label())
	if m.refreshing {
		rangeInfo += dimStyle.Render(" · refreshing…")
	}

	left := brand + " " + tabs
	gap := w - lipgloss.Width(left) - lipgloss.Width(rangeInfo)
	if gap < 1 {
		gap = 1
	}
	line := left + strings.Repeat(" ", gap) + rangeInfo

	sep := sectionSepStyle.Render(strings.Repeat("━", w))
	return line + "\n" + sep
}

func (m Model) renderScreenTabs() string {
	screens := []screenTab{screenDashboard, screenActivity}
	labels := make([]string, len(screens))
	active := 0
	for i, screen := range screens {
		labels[i] = screenLabelByTab[screen]
		if screen == m.screen {
			active = i
		}
	}
	return RenderSubTabBar(labels, active, 0)
}

func (m Model) renderFooter(w int) string {
	sep := sectionSepStyle.Render(strings.Repeat("━", w))
	return sep + "\n" + m.renderFooterStatusLine()
}

func (m Model) renderFooterStatusLine() string {
	if m.status != "" {
		return " " + statusLineStyle.Render(m.status)
	}
	switch {
	case m.form != nil:
		return " " + helpStyle.Render("enter save · esc cancel")
	case m.mode == modeDetail:
		return " " + helpStyle.Render("a log · 1-9 toggle fields · x delete · esc back · ? help")
	default:
		return " " + helpStyle.Render("a log · enter detail · r range · tab screen · ? help")
	}
}

func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
