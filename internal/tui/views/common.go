package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/xolan/jot/internal/entry"
	"github.com/xolan/jot/internal/tui/ui"
)

// EntryRenderOptions configures how entries are rendered
type EntryRenderOptions struct {
	Width      int            // Available width; 0 disables truncation
	Cursor     int            // Selected entry index (-1 for none)
	Offset     int            // First entry to render
	Limit      int            // Maximum entries to render; 0 renders all
	Location   *time.Location // Display zone; nil keeps each entry's own offset
	TimeFormat string         // Go layout for the time column
}

// FormatTime renders t in loc using layout. A nil loc keeps t's own offset.
func FormatTime(t time.Time, loc *time.Location, layout string) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(layout)
}

// Summary returns the first line of message, marking elided lines with "…".
func Summary(message string) string {
	first, _, more := strings.Cut(message, "\n")
	if more {
		return first + " …"
	}
	return first
}

// RenderEntryList renders one line per entry: time, tag and message summary.
func RenderEntryList(entries []entry.Entry, styles ui.Styles, opts EntryRenderOptions) string {
	if len(entries) == 0 || opts.Offset >= len(entries) {
		return ""
	}

	end := len(entries)
	if opts.Limit > 0 && opts.Offset+opts.Limit < end {
		end = opts.Offset + opts.Limit
	}
	visible := entries[max(0, opts.Offset):end]

	maxTimeWidth := 0
	maxTagWidth := 0
	for _, e := range visible {
		maxTimeWidth = max(maxTimeWidth, runewidth.StringWidth(FormatTime(e.Datetime(), opts.Location, opts.TimeFormat)))
		if e.Tag() != "" {
			maxTagWidth = max(maxTagWidth, runewidth.StringWidth(e.Tag())+2)
		}
	}

	var b strings.Builder
	for i, e := range visible {
		style := styles.EntryNormal
		if opts.Offset+i == opts.Cursor {
			style = styles.EntrySelected
		}

		timeStr := FormatTime(e.Datetime(), opts.Location, opts.TimeFormat)
		tagStr := ""
		if e.Tag() != "" {
			tagStr = "[" + e.Tag() + "]"
		}

		msg := Summary(e.Message())
		if opts.Width > 0 {
			room := opts.Width - maxTimeWidth - maxTagWidth - 2
			msg = runewidth.Truncate(msg, max(room, 10), "…")
		}

		timeCol := styles.EntryTime.Render(runewidth.FillRight(timeStr, maxTimeWidth))
		line := timeCol
		if maxTagWidth > 0 {
			line += " " + styles.EntryTag.Render(runewidth.FillRight(tagStr, maxTagWidth))
		}
		line += " " + styles.EntryMessage.Render(msg)

		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

// RenderDetail renders the full entry: timestamp with its original offset,
// tag, and every line of the message.
func RenderDetail(e entry.Entry, styles ui.Styles, width int) string {
	var b strings.Builder

	meta := e.Datetime().Format(time.RFC3339)
	if e.Tag() != "" {
		meta = fmt.Sprintf("%s  tag: %s", meta, e.Tag())
	}
	b.WriteString(styles.DetailMeta.Render(meta))
	b.WriteString("\n")
	if e.Message() == "" {
		b.WriteString(styles.Muted.Render("(empty message)"))
	} else {
		b.WriteString(e.Message())
	}

	style := styles.Detail
	if width > 4 {
		style = style.Width(width - 4)
	}
	return style.Render(b.String())
}

func pluralize(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}
