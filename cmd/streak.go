package cmd

import (
	"github.com/spf13/cobra"
)

// streakCmd recomputes and shows the current streak.
var streakCmd = &cobra.Command{
	Use:     "streak",
	Aliases: []string{"st"},
	Short:   "Show your current and longest streak",
	Long: `Recompute the streak from your full history and show it.

A streak is a run of consecutive logged days. By default the current streak
only counts if today is logged; set STUDYTRACK_STREAK_POLICY=grace to keep
yesterday's run alive until midnight.

Examples:
  studytrack streak
  studytrack streak --format json`,
	Args: cobra.NoArgs,
	RunE: runStreak,
}

// insightsCmd generates insights over the recent window.
var insightsCmd = &cobra.Command{
	Use:     "insights",
	Aliases: []string{"in", "tips"},
	Short:   "Generate personalised insights",
	Long: `Analyse the last two weeks of entries and suggest improvements.
At least 7 entries are needed (STUDYTRACK_MIN_INSIGHT_ENTRIES).

Examples:
  studytrack insights
  studytrack insights --cached`,
	Args: cobra.NoArgs,
	RunE: runInsights,
}

var insightsFlagCached bool

func init() {
	insightsCmd.Flags().BoolVar(&insightsFlagCached, "cached", false, "Show the last stored report without regenerating")

	rootCmd.AddCommand(streakCmd)
	rootCmd.AddCommand(insightsCmd)
}

func runStreak(cmd *cobra.Command, args []string) error {
	rec, err := ctx.Analyzer.Streak(ctx.Ctx, ctx.UserID)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintStreak(rec)
	}

	ctx.CLIFormatter().PrintStreak(rec)
	return nil
}

func runInsights(cmd *cobra.Command, args []string) error {
	get := ctx.Analyzer.Insights
	if insightsFlagCached {
		get = ctx.Analyzer.CachedInsights
	}

	report, err := get(ctx.Ctx, ctx.UserID)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintInsights(report)
	}

	ctx.CLIFormatter().PrintInsights(report, ctx.Analyzer.MinEntries)
	return nil
}
