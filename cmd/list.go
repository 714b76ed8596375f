package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xolan/jot/internal/filter"
	"github.com/xolan/jot/internal/timeutil"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List journal entries",
	Long: `List journal entries, oldest first, in the configured timezone.

Filtering:
  Use --tag to show only entries with that tag
  Use --from and --to to filter by date range (YYYY-MM-DD or DD/MM/YYYY)
  Use --last to filter by relative days (e.g., 'last 7 days')
  Use -n to show only the newest N matching entries

Examples:
  jot list                           List every entry
  jot list --tag work                List entries tagged 'work'
  jot list --from 2024-01-01         List entries since a date
  jot list --last 7 -n 20            The newest 20 entries of the last week`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		opts, ok := parseListOptions(cmd, "")
		if !ok {
			return
		}
		listEntries(opts)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	addFilterFlags(listCmd)
	listCmd.Flags().IntP("limit", "n", 0, "Show only the newest N matching entries")
}

// listOptions controls which entries listEntries prints
type listOptions struct {
	filter filter.Filter
	limit  int
}

// addFilterFlags registers the shared --tag/--from/--to/--last flags.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("tag", "", "Only entries with this tag")
	cmd.Flags().String("from", "", "Start date for filtering (YYYY-MM-DD or DD/MM/YYYY)")
	cmd.Flags().String("to", "", "End date for filtering (YYYY-MM-DD or DD/MM/YYYY)")
	cmd.Flags().Int("last", 0, "Filter by last N days (e.g., --last 7 for last 7 days)")
	_ = cmd.RegisterFlagCompletionFunc("tag", completeTags)
}

// parseListOptions reads the filter flags of cmd, reporting invalid values.
func parseListOptions(cmd *cobra.Command, keyword string) (listOptions, bool) {
	tag, _ := cmd.Flags().GetString("tag")
	fromStr, _ := cmd.Flags().GetString("from")
	toStr, _ := cmd.Flags().GetString("to")
	lastDays, _ := cmd.Flags().GetInt("last")

	start, end, err := timeutil.ParseDateRangeFlags(fromStr, toStr, lastDays, deps.Config.Location())
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use either --last N or --from/--to with dates like 2024-01-15 or 15/01/2024")
		deps.Exit(1)
		return listOptions{}, false
	}

	opts := listOptions{filter: *filter.NewFilter(keyword, tag, start, end)}
	if cmd.Flags().Lookup("limit") != nil {
		opts.limit, _ = cmd.Flags().GetInt("limit")
		if opts.limit < 0 {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid limit %d, must be positive\n", opts.limit)
			deps.Exit(1)
			return listOptions{}, false
		}
	}
	return opts, true
}

// listEntries prints the journal entries matching opts
func listEntries(opts listOptions) {
	storagePath, ok := resolveStoragePath()
	if !ok {
		return
	}

	entries, ok := readJournal(storagePath)
	if !ok {
		return
	}

	total := len(entries)
	entries = filter.FilterEntries(entries, &opts.filter)
	if len(entries) == 0 {
		if total == 0 {
			_, _ = fmt.Fprintln(deps.Stdout, "No entries yet")
			_, _ = fmt.Fprintln(deps.Stdout, "Hint: Log one with 'jot <message>'")
		} else {
			_, _ = fmt.Fprintln(deps.Stdout, "No entries found")
		}
		return
	}

	matched := len(entries)
	if opts.limit > 0 && len(entries) > opts.limit {
		entries = entries[len(entries)-opts.limit:]
	}

	printEntries(deps.Stdout, entries)

	if len(entries) < matched {
		_, _ = fmt.Fprintf(deps.Stdout, "(showing %d of %d %s)\n", len(entries), matched, pluralize(matched, "entry", "entries"))
	}
}
