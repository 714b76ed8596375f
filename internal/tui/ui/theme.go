package ui

import (
	"slices"

	tint "github.com/lrstanley/bubbletint"
	"github.com/xolan/jot/internal/config"
)

// ThemeProvider holds the bundled bubbletint themes and the active one.
// Names are matched the way the config file stores them, so " Nord " and
// "nord" select the same theme and an empty name selects config.DefaultTheme.
type ThemeProvider struct {
	registry *tint.Registry
	ids      []string // sorted
}

// NewThemeProvider returns a provider switched to the named theme. An unknown
// name leaves config.DefaultTheme active, or the first bundled theme if the
// default is missing from the bundle.
func NewThemeProvider(name string) *ThemeProvider {
	tints := tint.DefaultTints()
	ids := make([]string, 0, len(tints))

	var fallback tint.Tint
	for _, t := range tints {
		ids = append(ids, t.ID())
		if t.ID() == config.DefaultTheme {
			fallback = t
		}
	}
	if fallback == nil && len(tints) > 0 {
		fallback = tints[0]
	}
	slices.Sort(ids)

	tp := &ThemeProvider{registry: tint.NewRegistry(fallback, tints...), ids: ids}
	tp.SetTheme(name)
	return tp
}

// SetTheme switches to the named theme. It returns false, keeping the active
// theme, when no theme has that name.
func (tp *ThemeProvider) SetTheme(name string) bool {
	if !tp.HasTheme(name) {
		return false
	}
	return tp.registry.SetTintID(config.NormalizeTheme(name))
}

func (tp *ThemeProvider) HasTheme(name string) bool {
	_, found := slices.BinarySearch(tp.ids, config.NormalizeTheme(name))
	return found
}

// NextTheme cycles forward and returns the new theme id.
func (tp *ThemeProvider) NextTheme() string {
	tp.registry.NextTint()
	return tp.registry.ID()
}

// PreviousTheme cycles backward and returns the new theme id.
func (tp *ThemeProvider) PreviousTheme() string {
	tp.registry.PreviousTint()
	return tp.registry.ID()
}

func (tp *ThemeProvider) CurrentName() string {
	return tp.registry.ID()
}

// CurrentDisplayName is shown in the browser status bar.
func (tp *ThemeProvider) CurrentDisplayName() string {
	return tp.registry.DisplayName()
}

// AvailableThemes returns every theme id in sorted order. The slice is a
// copy and may be modified by the caller.
func (tp *ThemeProvider) AvailableThemes() []string {
	return slices.Clone(tp.ids)
}

func (tp *ThemeProvider) Registry() *tint.Registry {
	return tp.registry
}

// Styles builds the lipgloss styles for the active theme.
func (tp *ThemeProvider) Styles() Styles {
	return NewStylesFromRegistry(tp.registry)
}
