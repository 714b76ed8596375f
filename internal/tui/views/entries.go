package views

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xolan/jot/internal/entry"
	"github.com/xolan/jot/internal/filter"
	"github.com/xolan/jot/internal/tui/ui"
)

// detailHeight is the number of rows reserved below the list for the
// selected entry.
const detailHeight = 8

// EntriesModel lists journal entries newest first with a substring filter
// and a detail pane for the selected entry.
type EntriesModel struct {
	styles ui.Styles
	keys   ui.KeyMap

	loc        *time.Location
	timeFormat string

	width  int
	height int

	all      []entry.Entry
	visible  []entry.Entry
	warnings int
	cursor   int
	offset   int

	filtering   bool
	query       string
	filterInput textinput.Model
}

// NewEntriesModel creates a new entries view model
func NewEntriesModel(styles ui.Styles, keys ui.KeyMap, loc *time.Location, timeFormat string) EntriesModel {
	filterInput := textinput.New()
	filterInput.Placeholder = "Filter messages..."
	filterInput.Prompt = "/ "
	filterInput.CharLimit = 200
	filterInput.Width = 40

	return EntriesModel{
		styles:      styles,
		keys:        keys,
		loc:         loc,
		timeFormat:  timeFormat,
		filterInput: filterInput,
	}
}

// SetEntries replaces the listed entries and reapplies the current filter.
// warnings is the number of journal lines that could not be decoded.
func (m *EntriesModel) SetEntries(entries []entry.Entry, warnings int) {
	m.all = slices.Clone(entries)
	slices.SortStableFunc(m.all, func(a, b entry.Entry) int {
		return cmp.Compare(b.Datetime().UnixNano(), a.Datetime().UnixNano())
	})
	m.warnings = warnings
	m.applyFilter()
}

// Update implements tea.Model
func (m EntriesModel) Update(msg tea.Msg) (EntriesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.filtering {
			return m.handleFilterMode(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Up):
			m.moveCursor(-1)
		case key.Matches(msg, m.keys.Down):
			m.moveCursor(1)
		case key.Matches(msg, m.keys.Top):
			m.moveCursor(-len(m.visible))
		case key.Matches(msg, m.keys.Bottom):
			m.moveCursor(len(m.visible))
		case key.Matches(msg, m.keys.Search):
			m.filtering = true
			m.filterInput.SetValue(m.query)
			m.filterInput.CursorEnd()
			return m, m.filterInput.Focus()
		case key.Matches(msg, m.keys.Clear):
			if m.query != "" {
				m.query = ""
				m.applyFilter()
			}
		}
		return m, nil

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	if m.filtering {
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleFilterMode handles key events while the filter input has focus
func (m EntriesModel) handleFilterMode(msg tea.KeyMsg) (EntriesModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Apply):
		m.filtering = false
		m.filterInput.Blur()
		m.query = m.filterInput.Value()
		m.applyFilter()
		return m, nil
	case key.Matches(msg, m.keys.Clear):
		m.filtering = false
		m.filterInput.Blur()
		m.filterInput.SetValue("")
		m.query = ""
		m.applyFilter()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

func (m *EntriesModel) applyFilter() {
	m.visible = filter.FilterEntries(m.all, filter.NewFilter(m.query, "", time.Time{}, time.Time{}))
	m.cursor = min(m.cursor, max(0, len(m.visible)-1))
	m.clampOffset()
}

func (m *EntriesModel) moveCursor(delta int) {
	if len(m.visible) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.visible)-1)
	m.clampOffset()
}

// clampOffset scrolls the list so the cursor stays visible.
func (m *EntriesModel) clampOffset() {
	rows := m.listRows()
	if rows <= 0 {
		m.offset = 0
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	m.offset = max(0, min(m.offset, len(m.visible)-1))
}

// listRows is the number of list lines that fit; 0 means unlimited.
func (m EntriesModel) listRows() int {
	if m.height == 0 {
		return 0
	}
	return max(1, m.height-detailHeight-3)
}

// View implements tea.Model
func (m EntriesModel) View() string {
	var b strings.Builder

	title := fmt.Sprintf("Journal (%d %s)", len(m.all), pluralize(len(m.all), "entry", "entries"))
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n")

	if m.filtering {
		b.WriteString(m.styles.InputFocused.Render(m.filterInput.View()))
		b.WriteString("\n")
	} else if m.query != "" {
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("filter: %q  (%d of %d, esc to clear)", m.query, len(m.visible), len(m.all))))
		b.WriteString("\n")
	}

	if m.warnings > 0 {
		b.WriteString(m.styles.Warning.Render(fmt.Sprintf("%d corrupted %s skipped (run 'jot validate')", m.warnings, pluralize(m.warnings, "line", "lines"))))
		b.WriteString("\n")
	}

	if len(m.visible) == 0 {
		if len(m.all) == 0 {
			b.WriteString(m.styles.Muted.Render("No entries yet. Add one with: jot <message>"))
		} else {
			b.WriteString(m.styles.Muted.Render("No entries match the filter"))
		}
		return b.String()
	}

	b.WriteString(RenderEntryList(m.visible, m.styles, EntryRenderOptions{
		Width:      m.width,
		Cursor:     m.cursor,
		Offset:     m.offset,
		Limit:      m.listRows(),
		Location:   m.loc,
		TimeFormat: m.timeFormat,
	}))

	if e, ok := m.Selected(); ok {
		b.WriteString(RenderDetail(e, m.styles, m.width))
	}

	return b.String()
}

// SetSize sets the view dimensions
func (m *EntriesModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.clampOffset()
}

// Selected returns the entry under the cursor.
func (m EntriesModel) Selected() (entry.Entry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return entry.Entry{}, false
	}
	return m.visible[m.cursor], true
}

// Visible returns the entries that pass the current filter, newest first.
func (m EntriesModel) Visible() []entry.Entry {
	return m.visible
}

// Query returns the applied filter text.
func (m EntriesModel) Query() string {
	return m.query
}

// Cursor returns the index of the selected entry within Visible.
func (m EntriesModel) Cursor() int {
	return m.cursor
}

// IsInputMode returns true when the view is capturing keyboard input
func (m EntriesModel) IsInputMode() bool {
	return m.filtering
}
