package filter

import (
	"strings"
	"time"

	"github.com/xolan/jot/internal/entry"
	"github.com/xolan/jot/internal/timeutil"
)

// Filter represents search and filtering criteria for journal entries.
// All filter fields are optional - empty values match all entries.
type Filter struct {
	Keyword string    // Case-sensitive substring of the message
	Tag     string    // Exact tag match (case-insensitive)
	From    time.Time // Earliest timestamp, inclusive. Zero means unbounded.
	To      time.Time // Latest timestamp, inclusive. Zero means unbounded.
}

// NewFilter creates a new Filter with the given criteria.
// All parameters are optional - pass empty values to match all entries.
func NewFilter(keyword, tag string, from, to time.Time) *Filter {
	return &Filter{
		Keyword: keyword,
		Tag:     strings.TrimSpace(tag),
		From:    from,
		To:      to,
	}
}

// IsEmpty returns true if all filter fields are empty (matches all entries)
func (f *Filter) IsEmpty() bool {
	return f.Keyword == "" && f.Tag == "" && f.From.IsZero() && f.To.IsZero()
}

// FilterEntries returns a new slice containing only entries that match the filter criteria.
// If the filter is empty, returns all entries.
func FilterEntries(entries []entry.Entry, f *Filter) []entry.Entry {
	if f.IsEmpty() {
		return entries
	}

	filtered := make([]entry.Entry, 0)
	for _, e := range entries {
		if f.Matches(e) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// MatchesKeyword returns true if the keyword occurs in the entry's message.
// An empty keyword matches all entries.
func (f *Filter) MatchesKeyword(e entry.Entry) bool {
	return e.Contains(f.Keyword)
}

// MatchesTag returns true if the entry's tag equals the filter tag (case-insensitive).
// An empty tag filter matches all entries.
func (f *Filter) MatchesTag(e entry.Entry) bool {
	if f.Tag == "" {
		return true
	}
	return strings.EqualFold(e.Tag(), f.Tag)
}

// MatchesDate returns true if the entry's timestamp is within [From, To].
func (f *Filter) MatchesDate(e entry.Entry) bool {
	return timeutil.IsInRange(e.Datetime(), f.From, f.To)
}

// Matches returns true if the entry satisfies every criterion (AND logic).
func (f *Filter) Matches(e entry.Entry) bool {
	return f.MatchesKeyword(e) && f.MatchesTag(e) && f.MatchesDate(e)
}
