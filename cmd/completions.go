package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/studytrack/internal/calendar"
)

// datePhrases are offered for any DATE argument or date flag.
var datePhrases = []string{
	"today\tthe current day",
	"yesterday\tthe day before today",
	"2 days ago\tthe day before yesterday",
	"last monday\tmost recent Monday",
	"last week\tseven days ago",
}

// completeDates suggests date phrases.
func completeDates(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return filterCompletions(datePhrases, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeLoggedDates suggests the user's logged dates, most recent first,
// falling back to date phrases when no store is open.
func completeLoggedDates(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	if ctx == nil || ctx.Store == nil {
		return completeDates(cmd, args, toComplete)
	}

	entries, err := ctx.Store.Query(ctx.Ctx, ctx.UserID, calendar.LastNDays(ctx.Today(), 60))
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var completions []string
	for i := len(entries) - 1; i >= 0; i-- {
		d := entries[i].Date.String()
		if strings.HasPrefix(d, toComplete) {
			completions = append(completions, d+"\t"+entries[i].Date.Weekday().String())
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

// filterCompletions keeps the candidates whose value starts with toComplete.
func filterCompletions(candidates []string, toComplete string) []string {
	var filtered []string
	for _, c := range candidates {
		if strings.HasPrefix(strings.Split(c, "\t")[0], toComplete) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
