// Package tui provides the interactive journal browser for the jot application.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xolan/jot/internal/entry"
	"github.com/xolan/jot/internal/storage"
	"github.com/xolan/jot/internal/tui/ui"
	"github.com/xolan/jot/internal/tui/views"
)

// Options configures the browser
type Options struct {
	JournalPath string
	Location    *time.Location
	TimeFormat  string
	Theme       string
	// SaveTheme persists the theme chosen in the browser. Optional.
	SaveTheme func(name string) error
}

// Model is the root TUI model
type Model struct {
	opts Options

	width  int
	height int

	entriesView views.EntriesModel
	help        help.Model
	status      string
	err         error

	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap
}

// entriesLoadedMsg is sent when the journal has been read
type entriesLoadedMsg struct {
	entries  []entry.Entry
	warnings int
	err      error
}

// themeSavedMsg reports the outcome of persisting the theme
type themeSavedMsg struct {
	theme string
	err   error
}

// New creates a new TUI model
func New(opts Options) Model {
	themeProvider := ui.NewThemeProvider(opts.Theme)
	styles := themeProvider.Styles()
	keys := ui.DefaultKeyMap()

	return Model{
		opts:          opts,
		entriesView:   views.NewEntriesModel(styles, keys, opts.Location, opts.TimeFormat),
		help:          help.New(),
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return m.loadEntries()
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		// While the filter input has focus every key belongs to it.
		if !m.entriesView.IsInputMode() {
			switch {
			case key.Matches(msg, m.keys.Quit):
				return m, tea.Quit
			case key.Matches(msg, m.keys.Help):
				m.help.ShowAll = !m.help.ShowAll
				return m, nil
			case key.Matches(msg, m.keys.NextTheme):
				return m.changeTheme(m.themeProvider.NextTheme())
			case key.Matches(msg, m.keys.PrevTheme):
				return m.changeTheme(m.themeProvider.PreviousTheme())
			case key.Matches(msg, m.keys.Reload):
				m.status = ""
				return m, m.loadEntries()
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		// Account for padding and the status bar
		m.entriesView.SetSize(m.width-4, m.height-4)
		return m, nil

	case entriesLoadedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.entriesView.SetEntries(msg.entries, msg.warnings)
		}
		return m, nil

	case themeSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("theme not saved: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("theme saved: %s", msg.theme)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.entriesView, cmd = m.entriesView.Update(msg)
	return m, cmd
}

// changeTheme restyles every view and persists the new theme.
func (m Model) changeTheme(name string) (tea.Model, tea.Cmd) {
	m.styles = m.themeProvider.Styles()
	m.entriesView, _ = m.entriesView.Update(ui.ThemeChangedMsg{ThemeName: name, Styles: m.styles})
	m.status = m.themeProvider.CurrentDisplayName()
	return m, m.saveTheme(name)
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render("Press r to retry, q to quit"))
	} else {
		b.WriteString(m.entriesView.View())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	return m.styles.App.Render(b.String())
}

// renderStatusBar renders key help and the current theme
func (m Model) renderStatusBar() string {
	helpView := m.help.View(m.keys)

	right := m.status
	if right == "" {
		right = m.themeProvider.CurrentDisplayName()
	}
	right = m.styles.StatusKey.Render(right)

	gap := m.width - 4 - lipgloss.Width(helpView) - lipgloss.Width(right)
	if gap < 1 {
		return m.styles.StatusBar.Render(helpView + "\n" + right)
	}
	return m.styles.StatusBar.Render(helpView + strings.Repeat(" ", gap) + right)
}

// loadEntries creates a command to read the journal
func (m Model) loadEntries() tea.Cmd {
	path := m.opts.JournalPath
	return func() tea.Msg {
		result, err := storage.ReadEntriesWithWarnings(path)
		if err != nil {
			return entriesLoadedMsg{err: err}
		}
		return entriesLoadedMsg{entries: result.Entries, warnings: len(result.Warnings)}
	}
}

// saveTheme creates a command to persist the theme
func (m Model) saveTheme(name string) tea.Cmd {
	if m.opts.SaveTheme == nil {
		return nil
	}
	save := m.opts.SaveTheme
	return func() tea.Msg {
		return themeSavedMsg{theme: name, err: save(name)}
	}
}

// ThemeName returns the id of the active theme.
func (m Model) ThemeName() string {
	return m.themeProvider.CurrentName()
}

// Run starts the browser
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
