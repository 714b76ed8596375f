package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xolan/jot/internal/storage"
	"github.com/xolan/jot/internal/tui/ui"
)

// maxListedWarnings caps the corrupted lines printed by validate and repair
const maxListedWarnings = 20

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check storage file health",
	Long: `Validate the journal file and report on its health, including the number
of corrupted lines per error kind:

  malformed   the line is not a CSV record with three fields
  timestamp   the first field is not an RFC 3339 timestamp with an offset
  field       the tag or message is not a JSON string literal

Use 'jot repair' to drop corrupted lines.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		validateStorage()
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// validateStorage checks the storage file health and reports status
func validateStorage() {
	storagePath, ok := resolveStoragePath()
	if !ok {
		return
	}

	health, err := storage.ValidateStorage(storagePath)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to validate storage: %v\n", err)
		deps.Exit(1)
		return
	}

	styles := ui.NewThemeProvider(deps.Config.Theme).Styles()

	_, _ = fmt.Fprintf(deps.Stdout, "Storage file: %s\n", storagePath)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))

	_, _ = fmt.Fprintf(deps.Stdout, "Total lines:       %d\n", health.TotalLines)
	_, _ = fmt.Fprintf(deps.Stdout, "Valid entries:     %d\n", health.ValidEntries)
	_, _ = fmt.Fprintf(deps.Stdout, "Corrupted entries: %d\n", health.CorruptedEntries)

	if len(health.ByKind) > 0 {
		kinds := make([]string, 0, len(health.ByKind))
		for kind := range health.ByKind {
			kinds = append(kinds, kind)
		}
		slices.Sort(kinds)
		for _, kind := range kinds {
			_, _ = fmt.Fprintf(deps.Stdout, "  %-16s %d\n", kind+":", health.ByKind[kind])
		}
	}

	if len(health.Warnings) > 0 {
		_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
		_, _ = fmt.Fprintln(deps.Stdout, "Corrupted lines:")
		printWarnings(health.Warnings)
	}

	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	if health.CorruptedEntries == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, statusLine(styles.Success, "Status: ✓ Storage file is healthy"))
	} else {
		_, _ = fmt.Fprintln(deps.Stderr, statusLine(styles.Warning, "Status: ⚠ Storage file has %d corrupted line(s)", health.CorruptedEntries))
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Run 'jot repair' to drop them (a backup is made first)")
	}
}

// printWarnings prints up to maxListedWarnings corrupted lines to stdout
func printWarnings(warnings []storage.ParseWarning) {
	for i, warning := range warnings {
		if i == maxListedWarnings {
			_, _ = fmt.Fprintf(deps.Stdout, "  ... and %d more\n", len(warnings)-maxListedWarnings)
			break
		}
		_, _ = fmt.Fprintln(deps.Stdout, formatCorruptionWarning(warning))
	}
}
