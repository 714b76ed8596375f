package entry

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"
)

// TimestampLayout is the RFC 3339 layout used for the first field of a row.
// Fractional seconds are written only when present and a zero offset is
// written as +00:00 rather than Z. Parsing accepts any RFC 3339 timestamp.
const TimestampLayout = "2006-01-02T15:04:05.999999999-07:00"

// FieldCount is the number of fields in an encoded row.
const FieldCount = 3

// jsonSpace holds the insignificant whitespace characters of JSON.
const jsonSpace = " \t\r\n"

var (
	errNotString  = errors.New("not a JSON string literal")
	errInvalidUTF = errors.New("not valid UTF-8")
)

// ToCSVRow encodes the entry as a single CSV record terminated by a newline.
// Tag and message are JSON string literals, so the row never spans lines.
func (e Entry) ToCSVRow() (string, error) {
	ts, err := formatTimestamp(e.datetime)
	if err != nil {
		return "", encodingError(err)
	}

	tag, err := encodeString(e.tag)
	if err != nil {
		return "", encodingError(fmt.Errorf("tag: %w", err))
	}

	msg, err := encodeString(e.message)
	if err != nil {
		return "", encodingError(fmt.Errorf("message: %w", err))
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{ts, tag, msg}); err != nil {
		return "", encodingError(err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", encodingError(err)
	}

	return buf.String(), nil
}

// Write encodes the entry and writes the row to w.
// Failures reported by w are returned as ErrIO.
func (e Entry) Write(w io.Writer) error {
	row, err := e.ToCSVRow()
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, row); err != nil {
		return ioError(err)
	}
	return nil
}

// ParseRecord decodes an entry from an already split record.
// Fields 0, 1 and 2 are timestamp, tag and message; extra fields are ignored.
func ParseRecord(fields []string) (Entry, error) {
	ts, tag, msg, err := fieldsOf(fields)
	if err != nil {
		return Entry{}, err
	}
	return decodeFields(ts, tag, msg)
}

// Parse decodes an entry from a raw CSV row. Only the first record in s is
// considered; a trailing newline is optional.
func Parse(s string) (Entry, error) {
	fields, err := splitRecord(s)
	if err != nil {
		return Entry{}, err
	}
	return ParseRecord(fields)
}

// ParseBytes is Parse for a byte slice.
func ParseBytes(b []byte) (Entry, error) {
	return Parse(string(b))
}

// fieldsOf extracts the timestamp, tag and message fields of a record.
func fieldsOf(fields []string) (ts, tag, msg string, err error) {
	if len(fields) < FieldCount {
		return "", "", "", malformed(fmt.Errorf("expected %d fields, got %d", FieldCount, len(fields)))
	}
	return fields[0], fields[1], fields[2], nil
}

func decodeFields(ts, tagField, msgField string) (Entry, error) {
	datetime, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return Entry{}, &Error{Kind: ErrTimestampParse, Err: err}
	}

	tag, err := decodeString(tagField)
	if err != nil {
		return Entry{}, fieldError(ErrFieldDecode, "tag", err)
	}

	msg, err := decodeString(msgField)
	if err != nil {
		return Entry{}, fieldError(ErrFieldDecode, "message", err)
	}

	return New(datetime, tag, msg), nil
}

// splitRecord splits the first CSV record of s into its fields.
func splitRecord(s string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(s))
	r.FieldsPerRecord = -1

	fields, err := r.Read()
	if err == io.EOF {
		return nil, malformed(errors.New("empty record"))
	}
	if err != nil {
		return nil, malformed(err)
	}
	return fields, nil
}

func formatTimestamp(t time.Time) (string, error) {
	if y := t.Year(); y < 0 || y > 9999 {
		return "", fmt.Errorf("timestamp: year %d outside of RFC 3339 range", y)
	}
	return t.Format(TimestampLayout), nil
}

// encodeString returns s as a JSON string literal. HTML characters are kept
// as-is so the stored text stays readable. Invalid UTF-8 is rejected, since
// the JSON encoder would replace it with U+FFFD.
func encodeString(s string) (string, error) {
	if !utf8.ValidString(s) {
		return "", errInvalidUTF
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// decodeString parses a JSON string literal. Other JSON values, including
// null, are rejected. JSON whitespace around the literal is allowed on both
// sides.
func decodeString(field string) (string, error) {
	if !strings.HasPrefix(strings.TrimLeft(field, jsonSpace), `"`) {
		return "", errNotString
	}

	var s string
	if err := json.Unmarshal([]byte(field), &s); err != nil {
		return "", err
	}
	return s, nil
}
