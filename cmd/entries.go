package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/studytrack/internal/output"
	"github.com/manav03panchal/studytrack/internal/parser"
)

// Entries command flags.
var (
	entriesFlagFrom  string
	entriesFlagUntil string
	entriesFlagLimit int
)

// entriesCmd lists logged days.
var entriesCmd = &cobra.Command{
	Use:     "entries",
	Aliases: []string{"ls", "list", "history"},
	Short:   "List logged days",
	Long: `List logged days in date order. Without a range every entry is shown.

Examples:
  studytrack entries
  studytrack entries --from "2 weeks ago"
  studytrack entries --from 2025-03-01 --until 2025-03-07
  studytrack entries --limit 5`,
	Args: cobra.NoArgs,
	RunE: runEntries,
}

// deleteCmd removes a single day.
var deleteCmd = &cobra.Command{
	Use:     "delete DATE",
	Aliases: []string{"rm", "del"},
	Short:   "Delete the entry for a day",
	Long: `Delete the entry for a day and recompute the streak.

Examples:
  studytrack delete yesterday
  studytrack delete 2025-03-04`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDelete,
}

func init() {
	entriesCmd.Flags().StringVar(&entriesFlagFrom, "from", "", "First date to include")
	entriesCmd.Flags().StringVar(&entriesFlagUntil, "until", "", "Last date to include")
	entriesCmd.Flags().IntVarP(&entriesFlagLimit, "limit", "n", 0, "Show only the most recent N entries")

	entriesCmd.RegisterFlagCompletionFunc("from", completeDates)
	entriesCmd.RegisterFlagCompletionFunc("until", completeDates)
	deleteCmd.ValidArgsFunction = completeLoggedDates

	rootCmd.AddCommand(entriesCmd)
	rootCmd.AddCommand(deleteCmd)
}

func runEntries(cmd *cobra.Command, args []string) error {
	r, err := parser.ParseDateRange(entriesFlagFrom, entriesFlagUntil, ctx.Now())
	if err != nil {
		return err
	}

	entries, err := ctx.Store.Query(ctx.Ctx, ctx.UserID, r)
	if err != nil {
		return err
	}
	if entriesFlagLimit > 0 && len(entries) > entriesFlagLimit {
		entries = entries[len(entries)-entriesFlagLimit:]
	}
	ctx.Debugf("%d entries in %s..%s", len(entries), r.From, r.To)

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintEntries(entries)
	}

	ctx.CLIFormatter().PrintEntries(entries)
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	date, err := parseEntryDate(args)
	if err != nil {
		return err
	}

	if err := ctx.Analyzer.Remove(ctx.Ctx, ctx.UserID, date); err != nil {
		return err
	}
	if _, err := ctx.Analyzer.Streak(ctx.Ctx, ctx.UserID); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.StatusResponse{Status: "deleted", Date: date.String()})
	}

	ctx.CLIFormatter().Success("Deleted " + date.String())
	return nil
}
