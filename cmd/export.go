package cmd

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/studytrack/internal/errors"
	"github.com/manav03panchal/studytrack/internal/model"
	"github.com/manav03panchal/studytrack/internal/output"
	"github.com/manav03panchal/studytrack/internal/parser"
	"github.com/manav03panchal/studytrack/internal/storage"
	"github.com/manav03panchal/studytrack/internal/validate"
)

// exportVersion is written into every JSON export.
const exportVersion = "1"

// csvHeader is the column order of CSV exports. Imports match columns by name.
var csvHeader = []string{"date", "study_hours", "break_time", "sleep", "stress_level", "focus", "reflection"}

// Export command flags.
var (
	exportFlagFrom   string
	exportFlagUntil  string
	exportFlagFormat string
	exportFlagOutput string
)

// exportCmd represents the export command.
var exportCmd = &cobra.Command{
	Use:     "export",
	Aliases: []string{"ex", "dump", "backup"},
	Short:   "Export entries",
	Long: `Export your entries as JSON or CSV. JSON exports can be restored with
'studytrack import'. When --output is a directory a file named after the
user and today's date is created inside it.

Examples:
  studytrack export
  studytrack export --from "last month"
  studytrack export -F csv -o entries.csv
  studytrack export -o ~/backups/`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFlagFrom, "from", "", "First date to include")
	exportCmd.Flags().StringVar(&exportFlagUntil, "until", "", "Last date to include")
	exportCmd.Flags().StringVarP(&exportFlagFormat, "format", "F", "json", "Output format: json, csv")
	exportCmd.Flags().StringVarP(&exportFlagOutput, "output", "o", "", "Output file or directory (stdout if omitted)")

	exportCmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions([]string{"json", "csv"}, cobra.ShellCompDirectiveNoFileComp))
	exportCmd.RegisterFlagCompletionFunc("from", completeDates)
	exportCmd.RegisterFlagCompletionFunc("until", completeDates)

	rootCmd.AddCommand(exportCmd)
}

// ExportDocument is the JSON export format.
type ExportDocument struct {
	Version    string                `json:"version"`
	ExportedAt string                `json:"exported_at"`
	UserID     string                `json:"user_id"`
	Entries    []*output.EntryOutput `json:"entries"`
	Count      int                   `json:"count"`
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFlagFormat != "json" && exportFlagFormat != "csv" {
		return errors.NewUserErrorWithField("format", exportFlagFormat, "Unknown export format", "Use json or csv")
	}

	r, err := parser.ParseDateRange(exportFlagFrom, exportFlagUntil, ctx.Now())
	if err != nil {
		return err
	}

	entries, err := ctx.Store.Query(ctx.Ctx, ctx.UserID, r)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	switch exportFlagFormat {
	case "csv":
		err = exportCSV(&buf, entries)
	default:
		err = exportJSON(&buf, ctx.UserID, ctx.Now(), entries)
	}
	if err != nil {
		return err
	}

	if exportFlagOutput == "" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}

	path := exportPath(exportFlagOutput, ctx.UserID, ctx.Today().String(), exportFlagFormat)
	if err := storage.WriteFileAtomic(path, buf.Bytes(), 0o600); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.StatusResponse{Status: "exported", Count: len(entries)})
	}
	ctx.CLIFormatter().Success("Exported " + strconv.Itoa(len(entries)) + " entries to " + path)
	return nil
}

// exportPath resolves -o: a directory gets a generated file name.
func exportPath(target, userID, date, format string) string {
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		name := validate.SafeFilename("studytrack-"+userID+"-"+date) + "." + format
		return filepath.Join(target, name)
	}
	return target
}

func exportJSON(w io.Writer, userID string, now time.Time, entries []model.DailyEntry) error {
	doc := ExportDocument{
		Version:    exportVersion,
		ExportedAt: now.Format(time.RFC3339),
		UserID:     userID,
		Entries:    make([]*output.EntryOutput, len(entries)),
		Count:      len(entries),
	}
	for i := range entries {
		doc.Entries[i] = output.NewEntryOutput(&entries[i])
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}

func exportCSV(w io.Writer, entries []model.DailyEntry) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return err
	}

	for _, e := range entries {
		if err := writer.Write([]string{
			e.Date.String(),
			formatOptionalFloat(e.StudyHours),
			formatOptionalFloat(e.BreakTime),
			formatOptionalFloat(e.Sleep),
			formatOptionalInt(e.StressLevel),
			formatOptionalInt(e.Focus),
			e.Reflection,
		}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatOptionalFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatOptionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
