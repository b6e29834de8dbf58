package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tOgg1/trackline/internal/models"
	"github.com/tOgg1/trackline/internal/store"
	"github.com/tOgg1/trackline/internal/tui/styles"
)

// filterApplyMsg fires after the debounce interval; stale sequence numbers
// are dropped so only the latest keystroke applies the filter.
type filterApplyMsg struct {
	seq   int
	query string
}

// tableView is the spreadsheet-style event list with a debounced filter.
type tableView struct {
	store    *store.Store
	debounce time.Duration

	cursor     int
	filtering  bool
	pending    string
	applied    string
	filterSeq  int
	sortColumn int

	rows      []models.Event
	rowsStale bool
}

func newTableView(s *store.Store, debounce time.Duration) *tableView {
	return &tableView{
		store:     s,
		debounce:  debounce,
		rowsStale: true,
	}
}

func (v *tableView) Init() tea.Cmd {
	v.rowsStale = true
	return nil
}

func (v *tableView) Update(msg tea.Msg) tea.Cmd {
	switch typed := msg.(type) {
	case dataInvalidated:
		v.rowsStale = true
		return nil
	case filterApplyMsg:
		if typed.seq != v.filterSeq {
			return nil
		}
		v.applied = typed.query
		v.rowsStale = true
		v.cursor = 0
		return nil
	case tea.KeyMsg:
		return v.handleKey(typed)
	}
	return nil
}

func (v *tableView) handleKey(msg tea.KeyMsg) tea.Cmd {
	if v.filtering {
		return v.handleFilterKey(msg)
	}

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.currentRows())-1 {
			v.cursor++
		}
	case "home", "g":
		v.cursor = 0
	case "end", "G":
		v.cursor = maxInt(0, len(v.currentRows())-1)
	case " ", "enter":
		if event, ok := v.cursorEvent(); ok {
			if v.store.IsEventSelected(event.ID) {
				v.store.DeselectEvent(event.ID)
			} else {
				v.store.SelectEvent(event.ID)
			}
		}
	case "c":
		v.store.ClearSelection()
	case "d":
		if event, ok := v.cursorEvent(); ok {
			v.store.DeleteEvent(event.ID)
			v.rowsStale = true
			if v.cursor >= len(v.currentRows()) {
				v.cursor = maxInt(0, len(v.currentRows())-1)
			}
		}
	case "s":
		v.sortColumn = (v.sortColumn + 1) % len(sortColumns)
		v.rowsStale = true
		v.cursor = 0
	case "/":
		v.filtering = true
		v.pending = v.applied
	}
	return nil
}

func (v *tableView) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		v.filtering = false
		v.pending = ""
		v.filterSeq++
		v.applied = ""
		v.rowsStale = true
		return nil
	case "enter":
		v.filtering = false
		return v.scheduleFilter()
	case "backspace":
		if len(v.pending) > 0 {
			v.pending = v.pending[:len(v.pending)-1]
		}
		return v.scheduleFilter()
	default:
		if msg.Type == tea.KeyRunes {
			v.pending += string(msg.Runes)
			return v.scheduleFilter()
		}
	}
	return nil
}

// scheduleFilter defers applying the pending query until the keystrokes
// pause; each new keystroke invalidates the previously scheduled apply.
func (v *tableView) scheduleFilter() tea.Cmd {
	v.filterSeq++
	seq := v.filterSeq
	query := v.pending
	if v.debounce <= 0 {
		return func() tea.Msg { return filterApplyMsg{seq: seq, query: query} }
	}
	return tea.Tick(v.debounce, func(time.Time) tea.Msg {
		return filterApplyMsg{seq: seq, query: query}
	})
}

// sortColumns cycles with the "s" key; the first entry keeps the store's
// insertion order.
var sortColumns = []string{"order", "title", "start", "category"}

func (v *tableView) currentRows() []models.Event {
	if v.rowsStale {
		if strings.TrimSpace(v.applied) == "" {
			v.rows = v.store.Events()
		} else {
			v.rows = v.store.SearchEvents(v.applied)
		}
		v.sortRows()
		v.rowsStale = false
	}
	return v.rows
}

func (v *tableView) sortRows() {
	switch sortColumns[v.sortColumn] {
	case "title":
		sort.SliceStable(v.rows, func(i, j int) bool {
			return strings.ToLower(v.rows[i].Title) < strings.ToLower(v.rows[j].Title)
		})
	case "start":
		sort.SliceStable(v.rows, func(i, j int) bool {
			return v.rows[i].Start.Before(v.rows[j].Start)
		})
	case "category":
		sort.SliceStable(v.rows, func(i, j int) bool {
			return strings.ToLower(v.rows[i].Category) < strings.ToLower(v.rows[j].Category)
		})
	}
}

func (v *tableView) cursorEvent() (models.Event, bool) {
	rows := v.currentRows()
	if v.cursor < 0 || v.cursor >= len(rows) {
		return models.Event{}, false
	}
	return rows[v.cursor], true
}

func (v *tableView) View(width, height int, theme styles.Theme) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	trackNames := make(map[string]string)
	for _, track := range v.store.Tracks() {
		trackNames[track.ID] = track.Name
	}

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Table.Header)).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Table.Row))
	cursorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Table.CursorRow)).Bold(true)
	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Table.SelectedRow))

	var b strings.Builder
	b.WriteString(headerStyle.Render(v.renderFilterLine(width)))
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(formatRow("", "Title", "Track", "Start", "End", "Category", width)))
	b.WriteString("\n")

	rows := v.currentRows()
	visible := height - 2
	start := 0
	if v.cursor >= visible && visible > 0 {
		start = v.cursor - visible + 1
	}

	for i := start; i < len(rows) && i-start < visible; i++ {
		event := rows[i]
		marker := " "
		style := rowStyle
		if v.store.IsEventSelected(event.ID) {
			marker = "●"
			style = selectedStyle
		}
		if i == v.cursor {
			style = cursorStyle
		}

		end := ""
		if event.End != nil {
			end = event.End.Format("2006-01-02")
		}
		line := formatRow(marker, event.Title, trackNames[event.TrackID],
			event.Start.Format("2006-01-02"), end, event.Category, width)
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func (v *tableView) renderFilterLine(width int) string {
	switch {
	case v.filtering:
		return truncate(fmt.Sprintf("filter: %s▌", v.pending), width)
	case v.applied != "":
		return truncate(fmt.Sprintf("filter: %s (%d rows, / to edit, esc to clear)", v.applied, len(v.currentRows())), width)
	default:
		line := fmt.Sprintf("%d events  (/ to filter)", len(v.currentRows()))
		if v.sortColumn > 0 {
			line = fmt.Sprintf("%d events  sort: %s  (/ to filter)", len(v.currentRows()), sortColumns[v.sortColumn])
		}
		return truncate(line, width)
	}
}

func formatRow(marker, title, track, start, end, category string, width int) string {
	line := fmt.Sprintf("%-1s %-28s %-16s %-10s %-10s %-12s",
		marker,
		truncate(title, 28),
		truncate(track, 16),
		start,
		end,
		truncate(category, 12),
	)
	return truncate(line, width)
}
