package ui

// ThemeChangedMsg is broadcast to views after the active theme changes.
type ThemeChangedMsg struct {
	ThemeName string
	Styles    Styles
}
