package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <text>",
	Short: "Search entries by message text",
	Long: `Search for journal entries whose message contains the given text.

The search is a case-sensitive substring match on the message only; the tag
is not searched (use --tag for that). Multiple arguments are joined with
spaces.

Filtering:
  Use --tag to restrict to one tag
  Use --from and --to to filter by date range
  Use --last to filter by relative days (e.g., 'last 7 days')

Examples:
  jot search standup                      Entries mentioning 'standup'
  jot search "code review"                Entries containing 'code review'
  jot search deploy --tag work            Only entries tagged 'work'
  jot search bug --from 2024-01-01 --to 2024-01-31
  jot search review --last 7`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		searchEntries(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	addFilterFlags(searchCmd)
}

// searchEntries handles the search command logic
func searchEntries(cmd *cobra.Command, args []string) {
	keyword := strings.Join(args, " ")

	opts, ok := parseListOptions(cmd, keyword)
	if !ok {
		return
	}
	listEntries(opts)
}
