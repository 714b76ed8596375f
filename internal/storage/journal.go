package storage

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xolan/jot/internal/config"
	"github.com/xolan/jot/internal/entry"
	"github.com/xolan/jot/internal/osutil"
)

const (
	// JournalFile is the name of the default journal file
	JournalFile = "journal.csv"
	// MaxLineSize is the longest journal line, without its newline, that is
	// decoded. Longer rows are refused on write and reported on read.
	MaxLineSize = 4 * 1024 * 1024
	// KindLineTooLong is the ParseWarning kind of a line over MaxLineSize
	KindLineTooLong = "too-long"

	// warningContentSize caps the content kept for an oversized line
	warningContentSize = 1024
)

// ErrLineTooLong is returned when an entry encodes to a row over MaxLineSize.
var ErrLineTooLong = errors.New("journal row too long")

// ParseWarning describes a journal line that could not be decoded.
type ParseWarning struct {
	LineNumber int    // Line number in the file (1-indexed)
	Content    string // Raw content of the line
	Error      string // Decoder diagnostic
	Kind       string // entry.KindName of the failure
}

// ReadResult holds the decoded entries of a journal together with warnings
// about lines that could not be decoded.
type ReadResult struct {
	Entries  []entry.Entry
	Warnings []ParseWarning
}

// GetStoragePath returns the default journal path inside the user config
// directory, creating the directory if it doesn't exist.
func GetStoragePath() (string, error) {
	dir, err := osutil.AppDir(config.AppName)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, JournalFile), nil
}

// ResolveStoragePath returns cfg.StoragePath with ~ expanded, or the default
// journal path when it is empty.
func ResolveStoragePath(cfg config.Config) (string, error) {
	if cfg.StoragePath == "" {
		return GetStoragePath()
	}

	path, err := osutil.ExpandHome(cfg.StoragePath)
	if err != nil {
		return "", err
	}
	if err := osutil.Provider.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	return path, nil
}

// AppendEntry appends a single entry to the journal, creating the file if
// needed. O_APPEND keeps each row write atomic with respect to other writers.
func AppendEntry(path string, e entry.Entry) error {
	return AppendEntries(path, []entry.Entry{e})
}

// AppendEntries appends entries to the journal in order. Every entry is
// encoded before the file is touched, so an encoding failure writes nothing.
func AppendEntries(path string, entries []entry.Entry) error {
	var sb strings.Builder
	for i, e := range entries {
		row, err := encodeRow(i, e)
		if err != nil {
			return err
		}
		sb.WriteString(row)
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	_, err = file.WriteString(sb.String())
	return err
}

// encodeRow encodes the i-th entry of a batch as a journal row.
func encodeRow(i int, e entry.Entry) (string, error) {
	row, err := e.ToCSVRow()
	if err != nil {
		return "", err
	}
	if size := len(row) - 1; size > MaxLineSize {
		return "", fmt.Errorf("entry %d: %w (%d bytes, limit is %d)", i+1, ErrLineTooLong, size, MaxLineSize)
	}
	return row, nil
}

// readLine returns the next line of r without its line ending. A line longer
// than MaxLineSize is consumed in full, but only its first MaxLineSize bytes
// are returned and tooLong is set. err is io.EOF after the last line.
func readLine(r *bufio.Reader) (line []byte, tooLong bool, err error) {
	for {
		chunk, err := r.ReadSlice('\n')
		full := errors.Is(err, bufio.ErrBufferFull)
		if err == nil {
			chunk = chunk[:len(chunk)-1]
		}

		if room := MaxLineSize - len(line); len(chunk) > room {
			line = append(line, chunk[:room]...)
			tooLong = true
		} else {
			line = append(line, chunk...)
		}

		if full {
			continue
		}
		if !tooLong {
			line = bytes.TrimSuffix(line, []byte("\r"))
		}
		return line, tooLong, err
	}
}

// ReadEntriesWithWarnings decodes every line of the journal. Lines that fail
// to decode, or that are longer than MaxLineSize, are reported as warnings
// and skipped; blank lines are ignored. A missing file yields an empty result.
func ReadEntriesWithWarnings(path string) (ReadResult, error) {
	result := ReadResult{
		Entries:  []entry.Entry{},
		Warnings: []ParseWarning{},
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return result, nil
		}
		return result, err
	}
	defer func() { _ = file.Close() }()

	reader := bufio.NewReaderSize(file, 64*1024)

	lineNumber := 0
	for {
		raw, tooLong, err := readLine(reader)
		atEOF := errors.Is(err, io.EOF)
		if err != nil && !atEOF {
			return result, fmt.Errorf("reading line %d: %w", lineNumber+1, err)
		}
		if atEOF && len(raw) == 0 {
			break
		}
		lineNumber++

		if tooLong {
			result.Warnings = append(result.Warnings, ParseWarning{
				LineNumber: lineNumber,
				Content:    string(raw[:warningContentSize]),
				Error:      fmt.Sprintf("line exceeds %d bytes", MaxLineSize),
				Kind:       KindLineTooLong,
			})
		} else if line := string(raw); strings.TrimSpace(line) != "" {
			if e, err := entry.Parse(line); err != nil {
				result.Warnings = append(result.Warnings, ParseWarning{
					LineNumber: lineNumber,
					Content:    line,
					Error:      err.Error(),
					Kind:       entry.KindName(err),
				})
			} else {
				result.Entries = append(result.Entries, e)
			}
		}

		if atEOF {
			break
		}
	}

	return result, nil
}

// ReadEntries returns the decodable entries of the journal, skipping bad lines.
func ReadEntries(path string) ([]entry.Entry, error) {
	result, err := ReadEntriesWithWarnings(path)
	return result.Entries, err
}

// WriteEntries replaces the journal with entries. The rows are written to a
// temporary file which is then renamed over the journal.
func WriteEntries(path string, entries []entry.Entry) error {
	tmpFile := path + ".tmp"
	file, err := os.OpenFile(tmpFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(file)
	for i, e := range entries {
		row, err := encodeRow(i, e)
		if err == nil {
			_, err = w.WriteString(row)
		}
		if err != nil {
			_ = file.Close()
			_ = os.Remove(tmpFile)
			return err
		}
	}

	if err := w.Flush(); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFile)
		return err
	}

	if err := file.Close(); err != nil {
		_ = os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, path)
}

// Repair backs up the journal and rewrites it without the lines that fail to
// decode. It returns the warnings for the dropped lines. Nothing is written
// when the journal is already healthy.
func Repair(path string) ([]ParseWarning, error) {
	result, err := ReadEntriesWithWarnings(path)
	if err != nil {
		return nil, err
	}
	if len(result.Warnings) == 0 {
		return result.Warnings, nil
	}

	if err := CreateBackup(path); err != nil {
		return nil, fmt.Errorf("backup failed: %w", err)
	}
	if err := WriteEntries(path, result.Entries); err != nil {
		return nil, err
	}
	return result.Warnings, nil
}

// StorageHealth summarizes the state of the journal file.
type StorageHealth struct {
	TotalLines       int            // Non-blank lines in the file
	ValidEntries     int            // Lines that decode to an entry
	CorruptedEntries int            // Lines that fail to decode
	ByKind           map[string]int // Corrupted lines per error kind
	Warnings         []ParseWarning // Details for each corrupted line
}

// ValidateStorage reads the journal and reports its health. A missing file
// is healthy and empty.
func ValidateStorage(path string) (StorageHealth, error) {
	health := StorageHealth{
		ByKind:   map[string]int{},
		Warnings: []ParseWarning{},
	}

	result, err := ReadEntriesWithWarnings(path)
	if err != nil {
		return health, err
	}

	health.ValidEntries = len(result.Entries)
	health.CorruptedEntries = len(result.Warnings)
	health.TotalLines = health.ValidEntries + health.CorruptedEntries
	health.Warnings = result.Warnings
	for _, w := range result.Warnings {
		health.ByKind[w.Kind]++
	}

	return health, nil
}
