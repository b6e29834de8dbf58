// Package tui is the interactive terminal front end: an event table and a
// pannable, zoomable timeline surface over a shared store.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/tOgg1/trackline/internal/config"
	"github.com/tOgg1/trackline/internal/events"
	"github.com/tOgg1/trackline/internal/logging"
	"github.com/tOgg1/trackline/internal/render"
	"github.com/tOgg1/trackline/internal/store"
	"github.com/tOgg1/trackline/internal/timeline"
	"github.com/tOgg1/trackline/internal/tui/styles"
)

const appSubscriptionID = "tui-app"

type viewModel interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View(width, height int, theme styles.Theme) string
}

// dataInvalidated notifies views that the store changed underneath them.
type dataInvalidated struct{}

// exportDoneMsg reports the outcome of a PNG export.
type exportDoneMsg struct {
	path string
	err  error
}

// Model is the root bubbletea model: chrome, tab routing, and global keys.
type Model struct {
	cfg    *config.Config
	store  *store.Store
	theme  styles.Theme
	logger zerolog.Logger

	width    int
	height   int
	showHelp bool
	status   string

	views map[string]viewModel

	// Set synchronously by the store subscription; drained each Update.
	dirty bool
}

// NewModel builds the root model and wires the store subscription.
func NewModel(cfg *config.Config, s *store.Store) (*Model, error) {
	m := &Model{
		cfg:    cfg,
		store:  s,
		theme:  styles.Resolve(cfg.TUI.Theme),
		logger: logging.Component("tui"),
		views:  make(map[string]viewModel),
	}

	m.views[store.TabTable] = newTableView(s, cfg.TUI.FilterDebounce)
	m.views[store.TabTimeline] = newTimelineView(s)

	err := s.Publisher().Subscribe(appSubscriptionID, events.Filter{
		Topics: []events.Topic{events.TopicDataChanged},
	}, func(events.Change) {
		m.dirty = true
	})
	if err != nil {
		return nil, fmt.Errorf("subscribe to store: %w", err)
	}
	return m, nil
}

// Run starts the TUI over the given store, blocking until quit.
func Run(cfg *config.Config, s *store.Store) error {
	model, err := NewModel(cfg, s)
	if err != nil {
		return err
	}
	defer model.Close()

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.TUI.MouseEnabled {
		opts = append(opts, tea.WithMouseAllMotion())
	}
	program := tea.NewProgram(model, opts...)
	_, err = program.Run()
	return err
}

// Close releases the store subscription and any view resources.
func (m *Model) Close() error {
	for _, view := range m.views {
		if closer, ok := view.(interface{ Close() }); ok {
			closer.Close()
		}
	}
	return m.store.Publisher().Unsubscribe(appSubscriptionID)
}

func (m *Model) Init() tea.Cmd {
	if view := m.activeView(); view != nil {
		return view.Init()
	}
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.height = typed.Height
		return m, nil
	case exportDoneMsg:
		if typed.err != nil {
			m.status = fmt.Sprintf("export failed: %v", typed.err)
		} else {
			m.status = "exported " + typed.path
		}
		return m, nil
	case tea.MouseMsg:
		// Mouse input belongs to the timeline surface; translate from
		// terminal coordinates into the content area.
		if m.store.ActiveTab() == store.TabTimeline {
			typed.Y -= lipgloss.Height(m.renderHeader())
			cmd := m.views[store.TabTimeline].Update(typed)
			return m, m.drainDirty(cmd)
		}
		return m, nil
	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKey(typed); handled {
			return m, m.drainDirty(cmd)
		}
	}

	if active := m.activeView(); active != nil {
		cmd := active.Update(msg)
		return m, m.drainDirty(cmd)
	}
	return m, nil
}

// drainDirty converts a pending store-change flag into a broadcast so every
// view can invalidate caches, then clears it.
func (m *Model) drainDirty(cmd tea.Cmd) tea.Cmd {
	if !m.dirty {
		return cmd
	}
	m.dirty = false
	for _, view := range m.views {
		view.Update(dataInvalidated{})
	}
	return cmd
}

func (m *Model) View() string {
	header := m.renderHeader()
	footer := m.renderFooter()
	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	body := ""
	if active := m.activeView(); active != nil {
		body = active.View(m.width, contentHeight, m.theme)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "q", "ctrl+c":
		return tea.Quit, true
	case "?":
		m.showHelp = !m.showHelp
		return nil, true
	case "tab":
		m.toggleTab()
		if view := m.activeView(); view != nil {
			return view.Init(), true
		}
		return nil, true
	case "1":
		m.store.SwitchTab(store.TabTable)
		return nil, true
	case "2":
		m.store.SwitchTab(store.TabTimeline)
		return nil, true
	case "u":
		m.store.Undo()
		return nil, true
	case "ctrl+r":
		m.store.Redo()
		return nil, true
	case "e":
		return m.exportCmd(), true
	}
	return nil, false
}

func (m *Model) toggleTab() {
	if m.store.ActiveTab() == store.TabTable {
		m.store.SwitchTab(store.TabTimeline)
	} else {
		m.store.SwitchTab(store.TabTable)
	}
}

// exportCmd snapshots the current data into a PNG under the export dir.
func (m *Model) exportCmd() tea.Cmd {
	frame := render.Frame{
		Tracks: m.store.Tracks(),
		Events: m.store.Events(),
	}
	frame.View.Zoom = 1
	frame.View.FitToEvents(frame.Events)

	selected := make(map[string]struct{})
	for _, id := range m.store.SelectedEvents() {
		selected[id] = struct{}{}
	}
	frame.Selected = selected

	cfg := m.cfg
	layout := timeline.Layout{
		TrackHeight:   cfg.Timeline.TrackHeight,
		TrackSpacing:  cfg.Timeline.TrackSpacing,
		EventMinWidth: cfg.Timeline.EventMinWidth,
		EventMaxWidth: cfg.Timeline.EventMaxWidth,
		EventHeight:   cfg.Timeline.EventHeight,
		AxisHeight:    timeline.DefaultLayout().AxisHeight,
	}
	return func() tea.Msg {
		exporter := render.NewExporter(render.New(layout, render.DefaultTheme()))
		path, err := exporter.Export(frame, cfg.ExportDir(), cfg.Export.Width, cfg.Export.Height, cfg.Export.Scale, time.Now())
		return exportDoneMsg{path: path, err: err}
	}
}

func (m *Model) activeView() viewModel {
	return m.views[m.store.ActiveTab()]
}

func (m *Model) renderHeader() string {
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Base.Foreground)).
		Background(lipgloss.Color(m.theme.Chrome.Header)).
		Bold(true).
		Padding(0, 1)

	active := m.store.ActiveTab()
	tabs := ""
	for _, tab := range []string{store.TabTable, store.TabTimeline} {
		label := " " + tab + " "
		if tab == active {
			label = "[" + tab + "]"
		}
		tabs += label
	}

	left := "trackline"
	right := fmt.Sprintf("%d tracks / %d events", m.store.TrackCount(), m.store.EventCount())
	line := joinHeader(left, tabs, right, m.width-2)
	return style.Width(maxInt(0, m.width)).Render(line)
}

func (m *Model) renderFooter() string {
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Base.Foreground)).
		Background(lipgloss.Color(m.theme.Chrome.Footer)).
		Padding(0, 1)

	base := "[tab] switch  [u]ndo [ctrl+r]edo [e]xport [?]help [q]uit"
	if m.status != "" {
		base = m.status + "  " + base
	}
	if m.showHelp {
		base += "  (arrows pan/scroll, +/- zoom, f fit, / filter, space select, d delete)"
	}
	return style.Width(maxInt(0, m.width)).Render(truncate(base, maxInt(0, m.width-2)))
}

func joinHeader(left, center, right string, width int) string {
	if width <= 0 {
		return left
	}
	pad := width - len(left) - len(center) - len(right)
	if pad < 2 {
		return truncate(left+" "+center+" "+right, width)
	}
	leftPad := pad / 2
	return left + spaces(leftPad) + center + spaces(pad-leftPad) + right
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	out := make([]byte, n)
	for i := range out {
		out[i] = ' '
	}
	return string(out)
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
