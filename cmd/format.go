package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/xolan/jot/internal/entry"
	"github.com/xolan/jot/internal/storage"
	"github.com/xolan/jot/internal/tui/ui"
	"github.com/xolan/jot/internal/tui/views"
)

// formatEntryForLog formats an entry for the "Logged:" confirmation.
// Returns "message" or "message [tag]"; multi-line messages are summarized.
func formatEntryForLog(e entry.Entry) string {
	msg := views.Summary(e.Message())
	if e.Tag() == "" {
		return msg
	}
	return fmt.Sprintf("%s [%s]", msg, e.Tag())
}

// printEntries writes entries as aligned columns: time, tag, message.
// Continuation lines of multi-line messages are indented under the message.
func printEntries(w io.Writer, entries []entry.Entry) {
	styles := ui.NewThemeProvider(deps.Config.Theme).Styles()
	loc := deps.Config.Location()
	layout := deps.Config.TimeFormat

	timeWidth := 0
	tagWidth := 0
	for _, e := range entries {
		timeWidth = max(timeWidth, runewidth.StringWidth(views.FormatTime(e.Datetime(), loc, layout)))
		if e.Tag() != "" {
			tagWidth = max(tagWidth, runewidth.StringWidth(e.Tag())+2)
		}
	}

	indent := strings.Repeat(" ", timeWidth+2)
	if tagWidth > 0 {
		indent += strings.Repeat(" ", tagWidth+2)
	}

	for _, e := range entries {
		var b strings.Builder
		b.WriteString(styles.EntryTime.Render(runewidth.FillRight(views.FormatTime(e.Datetime(), loc, layout), timeWidth)))
		b.WriteString("  ")
		if tagWidth > 0 {
			tag := ""
			if e.Tag() != "" {
				tag = "[" + e.Tag() + "]"
			}
			b.WriteString(styles.EntryTag.Render(runewidth.FillRight(tag, tagWidth)))
			b.WriteString("  ")
		}

		for i, line := range strings.Split(e.Message(), "\n") {
			if i > 0 {
				b.WriteString("\n")
				b.WriteString(indent)
			}
			b.WriteString(styles.EntryMessage.Render(line))
		}

		_, _ = fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	}
}

// formatCorruptionWarning formats a ParseWarning into a human-readable string
// with line number, truncated content (max 50 columns), and error description.
func formatCorruptionWarning(warning storage.ParseWarning) string {
	content := runewidth.Truncate(warning.Content, 50, "...")
	return fmt.Sprintf("  Line %d: %s (%s: %s)", warning.LineNumber, content, warning.Kind, warning.Error)
}

// statusLine renders a status message, colored when the output is a terminal.
func statusLine(style lipgloss.Style, format string, args ...any) string {
	return style.Render(fmt.Sprintf(format, args...))
}

// pluralize returns the singular or plural form based on count
func pluralize(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}
