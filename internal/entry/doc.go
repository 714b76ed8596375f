// Package entry defines the journal entry and its single-line CSV encoding.
//
// # Row Format
//
// An entry is stored as one CSV record with three fields:
//
//	<RFC 3339 timestamp>,<JSON string tag>,<JSON string message>
//
// The tag and message are first encoded as JSON string literals and then
// quoted by the CSV writer, so commas, quotes, backslashes and newlines in
// either value never break the record across lines:
//
//	2012-01-01T00:00:00+00:00,"""1""","""hello world"""
//
// The timestamp keeps the UTC offset it was created or parsed with.
//
// # Decoding
//
// Rows can be decoded from a raw string (Parse, ParseBytes) or from a record
// that was already split by a CSV reader (ParseRecord). All three converge on
// the same field decoding and return errors matching one of ErrIO,
// ErrMalformedRecord, ErrTimestampParse, ErrFieldDecode or ErrEncoding.
package entry
