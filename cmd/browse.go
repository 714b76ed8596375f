package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xolan/jot/internal/tui"
)

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:     "browse",
	Aliases: []string{"tui"},
	Short:   "Browse the journal interactively",
	Long: `Open an interactive browser over the journal.

Entries are shown newest first with the selected entry's full message below
the list. Press / to filter by message text, t / T to cycle color themes
(the choice is saved to the config file) and ? for all key bindings.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runBrowser()
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

// runBrowser starts the interactive browser
func runBrowser() {
	storagePath, ok := resolveStoragePath()
	if !ok {
		return
	}

	err := tui.Run(tui.Options{
		JournalPath: storagePath,
		Location:    deps.Config.Location(),
		TimeFormat:  deps.Config.TimeFormat,
		Theme:       deps.Config.Theme,
		SaveTheme:   saveTheme,
	})
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
	}
}
