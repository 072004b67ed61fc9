package cmd

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/studytrack/internal/calendar"
	"github.com/manav03panchal/studytrack/internal/errors"
	"github.com/manav03panchal/studytrack/internal/model"
	"github.com/manav03panchal/studytrack/internal/parser"
	"github.com/manav03panchal/studytrack/internal/validate"
)

// Log command flags.
var (
	logFlagStudy      string
	logFlagBreak      string
	logFlagSleep      string
	logFlagStress     int
	logFlagFocus      int
	logFlagReflection string
)

// logCmd represents the log command.
var logCmd = &cobra.Command{
	Use:     "log [DATE]",
	Aliases: []string{"l", "add"},
	Short:   "Record metrics for a day",
	Long: `Record study hours, break time, sleep, stress and focus for a day.
Logging the same day again updates it: flags you leave out keep their
stored value.

DATE defaults to today and accepts natural language:
  today, yesterday, 3 days ago, last friday, 2025-03-04

Study and sleep take hours (6, 7.5, 2h30m); break takes minutes (45, 1h15m).
Stress and focus are rated 1-5.

Examples:
  studytrack log --study 6 --break 45 --sleep 7.5 --stress 2 --focus 4
  studytrack log yesterday --study 3h30m
  studytrack log 2 days ago --reflection "Struggled with recursion"`,
	Args: cobra.ArbitraryArgs,
	RunE: runLog,
}

func init() {
	logCmd.Flags().StringVarP(&logFlagStudy, "study", "s", "", "Study time in hours")
	logCmd.Flags().StringVarP(&logFlagBreak, "break", "b", "", "Break time in minutes")
	logCmd.Flags().StringVar(&logFlagSleep, "sleep", "", "Sleep in hours")
	logCmd.Flags().IntVar(&logFlagStress, "stress", 0, "Stress level 1-5")
	logCmd.Flags().IntVar(&logFlagFocus, "focus", 0, "Focus level 1-5")
	logCmd.Flags().StringVarP(&logFlagReflection, "reflection", "r", "", "Free-text reflection")

	logCmd.ValidArgsFunction = completeDates

	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, args []string) error {
	date, err := parseEntryDate(args)
	if err != nil {
		return err
	}
	if err := validate.NotFuture(date, ctx.Today()); err != nil {
		return err
	}

	patch, err := buildPatch(cmd)
	if err != nil {
		return err
	}
	if err := validate.Entry(patch); err != nil {
		return err
	}

	entry, created, err := ctx.Analyzer.Record(ctx.Ctx, ctx.UserID, date, patch)
	if err != nil {
		return err
	}

	// Keep the stored streak in step with the new entry.
	streak, err := ctx.Analyzer.Streak(ctx.Ctx, ctx.UserID)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintEntry(entry, created)
	}

	cli := ctx.CLIFormatter()
	cli.PrintEntry(entry, created)
	cli.Println()
	cli.Printf("Streak: %s\n", cli.Value(pluralDays(streak.Current)))
	return nil
}

// parseEntryDate joins args into a single date phrase so "3 days ago" works unquoted.
func parseEntryDate(args []string) (calendar.Date, error) {
	return parser.ParseDate(strings.Join(args, " "), ctx.Now())
}

// buildPatch converts the flags that were set into a partial entry.
func buildPatch(cmd *cobra.Command) (*model.DailyEntry, error) {
	flags := cmd.Flags()
	patch := &model.DailyEntry{}
	set := false

	if flags.Changed("study") {
		hours, err := parser.ParseHours(logFlagStudy)
		if err != nil {
			return nil, err
		}
		patch.StudyHours = model.Float(hours)
		set = true
	}
	if flags.Changed("break") {
		minutes, err := parser.ParseMinutes(logFlagBreak)
		if err != nil {
			return nil, err
		}
		patch.BreakTime = model.Float(minutes)
		set = true
	}
	if flags.Changed("sleep") {
		hours, err := parser.ParseHours(logFlagSleep)
		if err != nil {
			return nil, err
		}
		patch.Sleep = model.Float(hours)
		set = true
	}
	if flags.Changed("stress") {
		patch.StressLevel = model.Int(logFlagStress)
		set = true
	}
	if flags.Changed("focus") {
		patch.Focus = model.Int(logFlagFocus)
		set = true
	}
	if flags.Changed("reflection") {
		patch.Reflection = validate.SanitizeReflection(logFlagReflection)
		set = patch.Reflection != "" || set
	}

	if !set {
		return nil, errors.ErrNothingToLog
	}
	return patch, nil
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return strconv.Itoa(n) + " days"
}
