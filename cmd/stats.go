package cmd

import (
	"github.com/spf13/cobra"
)

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:     "stats",
	Aliases: []string{"stat", "week"},
	Short:   "Show averages and trends",
	Long: `Show daily averages over the last 7 days (STUDYTRACK_STATS_WINDOW_DAYS),
how they moved against the 7 days before, and which days of this week
are logged.

Examples:
  studytrack stats
  studytrack stats --format json`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	stats, err := ctx.Analyzer.Stats(ctx.Ctx, ctx.UserID)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintStats(stats)
	}

	ctx.CLIFormatter().PrintStats(stats)
	return nil
}
