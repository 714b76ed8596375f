package cmd

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/xolan/jot/internal/entry"
	"github.com/xolan/jot/internal/storage"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Append entries from a journal CSV file",
	Long: `Append the entries of another journal CSV file to the journal.

Every record is decoded before anything is written: if any record fails,
nothing is imported and the first failing record is reported. Use "-" to
read from stdin. The journal is backed up before the entries are appended.

Examples:
  jot import backup.csv              Append entries from a file
  jot export --tag work | jot import -
  jot import --dry-run other.csv     Only check that the file decodes`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		importEntries(args[0], dryRun)
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().Bool("dry-run", false, "Decode the file without importing it")
}

// importError reports the record that stopped an import
type importError struct {
	Record int
	Err    error
}

func (e *importError) Error() string {
	return fmt.Sprintf("record %d: %v", e.Record, e.Err)
}

func (e *importError) Unwrap() error {
	return e.Err
}

// decodeRecords reads CSV records from r and decodes each into an entry.
// Records may carry extra fields, which are ignored.
func decodeRecords(r io.Reader) ([]entry.Entry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var entries []entry.Entry
	for record := 1; ; record++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, &importError{Record: record, Err: &entry.Error{Kind: entry.ErrMalformedRecord, Err: err}}
			}
			return nil, &importError{Record: record, Err: err}
		}

		e, err := entry.ParseRecord(fields)
		if err != nil {
			return nil, &importError{Record: record, Err: err}
		}
		entries = append(entries, e)
	}
}

// importEntries decodes source and appends its entries to the journal
func importEntries(source string, dryRun bool) {
	var r io.Reader = deps.Stdin
	if source != "-" {
		file, err := os.Open(source)
		if err != nil {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to open import file")
			_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
			_, _ = fmt.Fprintf(deps.Stderr, "Hint: Check that file exists and is readable: %s\n", source)
			deps.Exit(1)
			return
		}
		defer func() { _ = file.Close() }()
		r = file
	}

	entries, err := decodeRecords(r)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Import aborted, nothing was written")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		var ie *importError
		if errors.As(err, &ie) {
			_, _ = fmt.Fprintf(deps.Stderr, "Hint: Record %d has a %s error; each record must be <RFC 3339 time>,<JSON tag>,<JSON message>\n",
				ie.Record, entry.KindName(err))
		}
		deps.Exit(1)
		return
	}

	if dryRun {
		_, _ = fmt.Fprintf(deps.Stdout, "%d %s would be imported\n", len(entries), pluralize(len(entries), "entry", "entries"))
		return
	}

	if len(entries) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "Nothing to import")
		return
	}

	storagePath, ok := resolveStoragePath()
	if !ok {
		return
	}

	if err := storage.CreateBackup(storagePath); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to back up the journal before import")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	if err := storage.AppendEntries(storagePath, entries); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to append entries to storage")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Check that file is writable: %s\n", storagePath)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Imported %d %s\n", len(entries), pluralize(len(entries), "entry", "entries"))
}
