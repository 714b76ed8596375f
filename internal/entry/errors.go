package entry

import (
	"errors"
	"fmt"
)

// Error kinds returned by the codec. Every error produced by this package
// matches exactly one of them with errors.Is.
var (
	// ErrIO is returned when the output sink rejects a write.
	ErrIO = errors.New("write failed")

	// ErrMalformedRecord is returned when a record has fewer than three fields
	// or cannot be split as CSV at all.
	ErrMalformedRecord = errors.New("malformed CSV")

	// ErrTimestampParse is returned when the first field is not RFC 3339.
	ErrTimestampParse = errors.New("invalid timestamp")

	// ErrFieldDecode is returned when the tag or message field is not a JSON
	// string literal.
	ErrFieldDecode = errors.New("invalid field")

	// ErrEncoding is returned when a row cannot be produced from an entry.
	ErrEncoding = errors.New("encoding failed")
)

// Error wraps the failure of a single encode or decode call.
// Kind is one of the Err* values above, Err is the underlying cause
// (a *time.ParseError, a *json.SyntaxError, the sink's error, ...).
type Error struct {
	Kind  error
	Field string // "tag" or "message" for ErrFieldDecode
	Err   error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Field != "" {
		msg = fmt.Sprintf("%s %s", msg, e.Field)
	}
	if e.Err == nil {
		return msg
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindOf returns the kind of a codec error, or nil if err did not come from
// this package.
func KindOf(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return nil
}

// KindName returns a short, stable name for the kind of err, suitable for
// grouping warnings. It returns "unknown" for errors from other packages.
func KindName(err error) string {
	switch KindOf(err) {
	case ErrIO:
		return "io"
	case ErrMalformedRecord:
		return "malformed"
	case ErrTimestampParse:
		return "timestamp"
	case ErrFieldDecode:
		return "field"
	case ErrEncoding:
		return "encoding"
	default:
		return "unknown"
	}
}

func ioError(err error) error {
	return &Error{Kind: ErrIO, Err: err}
}

func malformed(err error) error {
	return &Error{Kind: ErrMalformedRecord, Err: err}
}

func encodingError(err error) error {
	return &Error{Kind: ErrEncoding, Err: err}
}

func fieldError(kind error, field string, err error) error {
	return &Error{Kind: kind, Field: field, Err: err}
}
