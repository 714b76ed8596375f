package ui

import (
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
)

// Styles contains the styles used by the browser and by list output
type Styles struct {
	App   lipgloss.Style
	Title lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusKey  lipgloss.Style
	StatusHelp lipgloss.Style

	// Entry list
	EntrySelected lipgloss.Style
	EntryNormal   lipgloss.Style
	EntryTime     lipgloss.Style
	EntryTag      lipgloss.Style
	EntryMessage  lipgloss.Style

	// Detail pane for the selected entry
	Detail     lipgloss.Style
	DetailMeta lipgloss.Style

	// Filter input
	Input        lipgloss.Style
	InputFocused lipgloss.Style

	// Help
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	Muted   lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
}

// palette maps semantic roles to colors.
type palette struct {
	primary    lipgloss.TerminalColor
	secondary  lipgloss.TerminalColor
	accent     lipgloss.TerminalColor
	muted      lipgloss.TerminalColor
	success    lipgloss.TerminalColor
	warning    lipgloss.TerminalColor
	errorColor lipgloss.TerminalColor
	fg         lipgloss.TerminalColor
	bg         lipgloss.TerminalColor
	highlight  lipgloss.TerminalColor
}

// DefaultStyles returns styles built from a fixed 256-color palette.
func DefaultStyles() Styles {
	return newStyles(palette{
		primary:    lipgloss.Color("99"),  // Purple
		secondary:  lipgloss.Color("39"),  // Cyan
		accent:     lipgloss.Color("212"), // Pink
		muted:      lipgloss.Color("240"), // Gray
		success:    lipgloss.Color("82"),  // Green
		warning:    lipgloss.Color("214"), // Orange
		errorColor: lipgloss.Color("196"), // Red
		fg:         lipgloss.Color("252"),
		bg:         lipgloss.Color("236"),
		highlight:  lipgloss.Color("237"),
	})
}

// NewStylesFromRegistry creates styles using the current theme of a
// bubbletint registry:
// - Primary: Purple (titles, focused input)
// - Secondary: Cyan (timestamps, keys)
// - Accent: BrightPurple (tags)
// - Muted: BrightBlack (help, metadata, selection background)
func NewStylesFromRegistry(r *tint.Registry) Styles {
	return newStyles(palette{
		primary:    r.Purple(),
		secondary:  r.Cyan(),
		accent:     r.BrightPurple(),
		muted:      r.BrightBlack(),
		success:    r.Green(),
		warning:    r.Yellow(),
		errorColor: r.Red(),
		fg:         r.Fg(),
		bg:         r.Bg(),
		highlight:  r.BrightBlack(),
	})
}

func newStyles(p palette) Styles {
	return Styles{
		App: lipgloss.NewStyle().Padding(1, 2),
		Title: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			MarginBottom(1),

		StatusBar: lipgloss.NewStyle().
			Foreground(p.fg).
			Background(p.bg).
			Padding(0, 1),
		StatusKey: lipgloss.NewStyle().
			Foreground(p.secondary).
			Bold(true),
		StatusHelp: lipgloss.NewStyle().
			Foreground(p.muted),

		EntrySelected: lipgloss.NewStyle().
			Background(p.highlight).
			Bold(true),
		EntryNormal: lipgloss.NewStyle(),
		EntryTime: lipgloss.NewStyle().
			Foreground(p.secondary),
		EntryTag: lipgloss.NewStyle().
			Foreground(p.accent),
		EntryMessage: lipgloss.NewStyle().
			Foreground(p.fg),

		Detail: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.muted).
			Padding(0, 1).
			MarginTop(1),
		DetailMeta: lipgloss.NewStyle().
			Foreground(p.muted),

		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.muted).
			Padding(0, 1),
		InputFocused: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.primary).
			Padding(0, 1),

		HelpKey: lipgloss.NewStyle().
			Foreground(p.secondary).
			Bold(true),
		HelpDesc: lipgloss.NewStyle().
			Foreground(p.muted),

		Muted:   lipgloss.NewStyle().Foreground(p.muted),
		Error:   lipgloss.NewStyle().Foreground(p.errorColor),
		Warning: lipgloss.NewStyle().Foreground(p.warning),
		Success: lipgloss.NewStyle().Foreground(p.success),
	}
}
