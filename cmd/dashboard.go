package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/studytrack/internal/tui"
)

// dashboardCmd represents the dashboard command.
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash", "d", "tui"},
	Short:   "Open the interactive TUI dashboard",
	Long: `Open an interactive terminal dashboard.

The dashboard shows:
  - Current streak and this week's logged days
  - Averages for the last 7 days with trend arrows
  - The latest insights

Data reloads every minute and at midnight.

Keyboard Controls:
  l - How to log today
  r - Refresh data
  q - Quit dashboard

Examples:
  studytrack dashboard
  studytrack dash`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	config := tui.DashboardConfig{
		Ctx:      ctx.Ctx,
		Analyzer: ctx.Analyzer,
		UserID:   ctx.UserID,
	}

	return tui.Run(config)
}
