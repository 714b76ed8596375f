package cmd

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xolan/jot/internal/storage"
)

// restoreCmd represents the restore command
var restoreCmd = &cobra.Command{
	Use:   "restore [backup_number]",
	Short: "Restore from a backup file",
	Long: `Restore the journal from a backup.

Backups are made by 'jot repair' and 'jot import'. By default, restores from
the most recent backup (.bak.1). Optionally specify a backup number (1-3).
The journal being replaced becomes the newest backup, so a restore can be
undone too. A confirmation prompt is shown unless --yes is specified.

Examples:
  jot restore       Restore from most recent backup
  jot restore 2     Restore from backup #2
  jot restore --list`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		list, _ := cmd.Flags().GetBool("list")
		yes, _ := cmd.Flags().GetBool("yes")
		restoreFromBackup(args, list, yes)
	},
}

func init() {
	rootCmd.AddCommand(restoreCmd)
	restoreCmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompt")
	restoreCmd.Flags().Bool("list", false, "List available backups without restoring")
}

// restoreFromBackup handles the restore command logic
func restoreFromBackup(args []string, listOnly, yes bool) {
	storagePath, ok := resolveStoragePath()
	if !ok {
		return
	}

	backups, err := storage.ListBackups(storagePath)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to list backups: %v\n", err)
		deps.Exit(1)
		return
	}

	if len(backups) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No backups available")
		if !listOnly {
			deps.Exit(1)
		}
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Available backups:")
	for _, backup := range backups {
		count := ""
		if entries, err := storage.ReadEntries(backup.Path); err == nil {
			count = fmt.Sprintf(" (%d %s)", len(entries), pluralize(len(entries), "entry", "entries"))
		}
		if backup.Number == 1 {
			_, _ = fmt.Fprintf(deps.Stdout, "  %d: %s%s, most recent\n", backup.Number, backup.Path, count)
		} else {
			_, _ = fmt.Fprintf(deps.Stdout, "  %d: %s%s\n", backup.Number, backup.Path, count)
		}
	}
	_, _ = fmt.Fprintln(deps.Stdout)

	if listOnly {
		return
	}

	backupNum := 1
	if len(args) > 0 {
		num, err := strconv.Atoi(args[0])
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid backup number '%s'\n", args[0])
			deps.Exit(1)
			return
		}
		if num < 1 || num > storage.MaxBackupCount {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Backup number must be between 1 and %d (got %d)\n", storage.MaxBackupCount, num)
			deps.Exit(1)
			return
		}
		backupNum = num
	}

	backupExists := false
	for _, backup := range backups {
		if backup.Number == backupNum {
			backupExists = true
			break
		}
	}

	if !backupExists {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Backup %d does not exist\n", backupNum)
		deps.Exit(1)
		return
	}

	if !yes && !promptConfirmation(fmt.Sprintf("Replace the journal with backup %d? [y/N]: ", backupNum)) {
		_, _ = fmt.Fprintln(deps.Stdout, "Restore cancelled")
		return
	}

	if err := storage.RestoreBackup(storagePath, backupNum); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to restore backup: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Successfully restored from backup %d\n", backupNum)
}

// promptConfirmation asks a yes/no question on stdin
// Returns true if user confirms with 'y' or 'Y', false otherwise
func promptConfirmation(question string) bool {
	_, _ = fmt.Fprint(deps.Stdout, question)

	scanner := bufio.NewScanner(deps.Stdin)
	if !scanner.Scan() {
		return false
	}

	response := strings.TrimSpace(scanner.Text())
	return response == "y" || response == "Y"
}
