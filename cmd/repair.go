package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xolan/jot/internal/storage"
)

// repairCmd represents the repair command
var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Drop corrupted lines from the journal",
	Long: `Rewrite the journal without the lines that cannot be decoded.

The current journal is saved as the most recent backup first, so a repair
can be undone with 'jot restore 1'. A healthy journal is left untouched.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		repairStorage()
	},
}

func init() {
	rootCmd.AddCommand(repairCmd)
}

// repairStorage handles the repair command logic
func repairStorage() {
	storagePath, ok := resolveStoragePath()
	if !ok {
		return
	}

	dropped, err := storage.Repair(storagePath)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to repair storage")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Check that file is writable: %s\n", storagePath)
		deps.Exit(1)
		return
	}

	if len(dropped) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "Storage file is healthy, nothing to repair")
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Dropped %d corrupted %s:\n", len(dropped), pluralize(len(dropped), "line", "lines"))
	printWarnings(dropped)
	_, _ = fmt.Fprintf(deps.Stdout, "Previous journal saved to %s\n", storage.GetBackupPath(storagePath, 1))
}
