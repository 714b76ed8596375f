package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xolan/jot/internal/entry"
	"github.com/xolan/jot/internal/storage"
)

var rootCmd = &cobra.Command{
	Use:   "jot",
	Short: "A tiny journal kept as a CSV file",
	Long: `jot appends timestamped, optionally tagged notes to a journal file.

Each journal line is one CSV record: an RFC 3339 timestamp followed by the
tag and the message, each stored as a JSON string literal.

Usage:
  jot <message>                   Log a new entry
  jot -t work <message>           Log a new entry with a tag
  echo "notes" | jot -            Log a (multi-line) message read from stdin
  jot                             List all entries
  jot list --last 7               List entries from the last 7 days
  jot search <text>               Find entries whose message contains text
  jot export -o backup.csv        Write entries to a journal file
  jot import other.csv            Append entries from another journal
  jot validate                    Check journal health
  jot repair                      Drop corrupted lines (after a backup)
  jot restore [n]                 Restore the journal from a backup
  jot browse                      Interactive browser`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			listEntries(listOptions{})
			return
		}

		tag, _ := cmd.Flags().GetString("tag")
		createEntry(args, tag)
	},
}

func init() {
	rootCmd.Flags().StringP("tag", "t", "", "Tag for the new entry")
	_ = rootCmd.RegisterFlagCompletionFunc("tag", completeTags)
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"jot version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command
func Execute() error {
	rootCmd.SetOut(deps.Stdout)
	rootCmd.SetErr(deps.Stderr)
	return rootCmd.Execute()
}

// createEntry logs a new entry. A single "-" argument reads the message
// from stdin, which allows multi-line messages.
func createEntry(args []string, tag string) {
	message := strings.Join(args, " ")
	if len(args) == 1 && args[0] == "-" {
		data, err := io.ReadAll(bufio.NewReader(deps.Stdin))
		if err != nil {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to read message from stdin")
			_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
			deps.Exit(1)
			return
		}
		message = string(data)
	}

	e := entry.WithTagMessage(tag, message)
	if e.Message() == "" {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Message cannot be empty")
		_, _ = fmt.Fprintln(deps.Stderr, "Usage: jot [-t tag] <message>")
		_, _ = fmt.Fprintln(deps.Stderr, "Example: jot -t work fixed the flaky test")
		deps.Exit(1)
		return
	}

	storagePath, ok := resolveStoragePath()
	if !ok {
		return
	}

	if err := storage.AppendEntry(storagePath, e); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to save entry to storage")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Check that directory exists and is writable: %s\n", storagePath)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Logged: %s\n", formatEntryForLog(e))
}

// resolveStoragePath returns the journal path, reporting failures itself.
func resolveStoragePath() (string, bool) {
	storagePath, err := deps.StoragePath()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to determine storage location")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check that your home directory is accessible or set storage_path in the config file")
		deps.Exit(1)
		return "", false
	}
	return storagePath, true
}

// readJournal reads the journal and prints warnings for corrupted lines to
// stderr. It reports failures itself.
func readJournal(storagePath string) ([]entry.Entry, bool) {
	result, err := storage.ReadEntriesWithWarnings(storagePath)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to read entries from storage")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Check that file exists and is readable: %s\n", storagePath)
		deps.Exit(1)
		return nil, false
	}

	if len(result.Warnings) > 0 {
		_, _ = fmt.Fprintf(deps.Stderr, "Warning: Found %d corrupted line(s) in storage file:\n", len(result.Warnings))
		for _, warning := range result.Warnings {
			_, _ = fmt.Fprintln(deps.Stderr, formatCorruptionWarning(warning))
		}
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Run 'jot validate' for details or 'jot repair' to drop them")
		_, _ = fmt.Fprintln(deps.Stderr)
	}

	return result.Entries, true
}

// completeTags offers the tags already used in the journal.
func completeTags(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	storagePath, err := deps.StoragePath()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	entries, err := storage.ReadEntries(storagePath)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	seen := map[string]bool{}
	var tags []string
	for _, e := range entries {
		if e.Tag() != "" && !seen[e.Tag()] && strings.HasPrefix(e.Tag(), toComplete) {
			seen[e.Tag()] = true
			tags = append(tags, e.Tag())
		}
	}
	return tags, cobra.ShellCompDirectiveNoFileComp
}
