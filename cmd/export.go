package cmd

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xolan/jot/internal/filter"
	"github.com/xolan/jot/internal/storage"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export entries as journal CSV",
	Long: `Export journal entries as CSV rows in the journal format.

Every row is re-encoded from the decoded entry, so corrupted lines are left
out and the output is always a valid journal that 'jot import' accepts.
Timestamps keep the offset they were logged with.

Filtering:
  Use --tag, --from, --to and --last as with 'jot list'

Examples:
  jot export                         Write all entries to stdout
  jot export -o backup.csv           Write all entries to a file
  jot export --tag work -o work.csv  Export one tag
  jot export --last 30 > month.csv   Export the last 30 days`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		exportEntries(cmd)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	addFilterFlags(exportCmd)
	exportCmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")
}

// exportEntries writes the matching entries to stdout or --output
func exportEntries(cmd *cobra.Command) {
	opts, ok := parseListOptions(cmd, "")
	if !ok {
		return
	}
	output, _ := cmd.Flags().GetString("output")

	storagePath, ok := resolveStoragePath()
	if !ok {
		return
	}

	entries, ok := readJournal(storagePath)
	if !ok {
		return
	}
	entries = filter.FilterEntries(entries, &opts.filter)

	if output != "" {
		if err := storage.WriteEntries(output, entries); err != nil {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to write export file")
			_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
			_, _ = fmt.Fprintf(deps.Stderr, "Hint: Check that the directory exists and is writable: %s\n", output)
			deps.Exit(1)
			return
		}
		_, _ = fmt.Fprintf(deps.Stderr, "Exported %d %s to %s\n", len(entries), pluralize(len(entries), "entry", "entries"), output)
		return
	}

	w := bufio.NewWriter(deps.Stdout)
	for _, e := range entries {
		if err := e.Write(w); err != nil {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to export entry")
			_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
			deps.Exit(1)
			return
		}
	}
	if err := w.Flush(); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to write export")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
	}
}
