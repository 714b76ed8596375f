package entry

import (
	"strings"
	"time"
)

// now is the clock used by the convenience constructors. Tests can replace it.
var now = time.Now

// Entry represents a single journal entry: a timestamp, a tag and a message.
// Entries are immutable once constructed and safe to share between goroutines.
type Entry struct {
	datetime time.Time
	tag      string
	message  string
}

// New creates an entry from raw values.
// Unlike WithMessage and WithTagMessage, New does not trim the tag or the
// message: the values are stored exactly as given, including empty strings.
func New(datetime time.Time, tag, message string) Entry {
	return Entry{
		datetime: datetime,
		tag:      tag,
		message:  message,
	}
}

// WithMessage creates an untagged entry stamped with the current local time.
// Leading and trailing whitespace is trimmed from the message.
func WithMessage(message string) Entry {
	return WithTagMessage("", message)
}

// WithTagMessage creates an entry stamped with the current local time.
// Leading and trailing whitespace is trimmed from both tag and message.
func WithTagMessage(tag, message string) Entry {
	// Round(0) drops the monotonic clock reading so the value compares
	// the same before and after a round trip.
	return New(now().Round(0), strings.TrimSpace(tag), strings.TrimSpace(message))
}

// Datetime returns the entry timestamp with its original UTC offset.
func (e Entry) Datetime() time.Time {
	return e.datetime
}

// Tag returns the entry tag. It may be empty.
func (e Entry) Tag() string {
	return e.tag
}

// Message returns the entry message. It may be empty or span several lines.
func (e Entry) Message() string {
	return e.message
}

// Contains reports whether substr occurs in the message.
// The match is literal and case-sensitive; an empty substr always matches.
func (e Entry) Contains(substr string) bool {
	return strings.Contains(e.message, substr)
}
