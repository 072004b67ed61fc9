package cmd

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/studytrack/internal/calendar"
	"github.com/manav03panchal/studytrack/internal/errors"
	"github.com/manav03panchal/studytrack/internal/logging"
	"github.com/manav03panchal/studytrack/internal/model"
	"github.com/manav03panchal/studytrack/internal/output"
	"github.com/manav03panchal/studytrack/internal/storage"
	"github.com/manav03panchal/studytrack/internal/validate"
)

// Import command flags.
var (
	importFlagDryRun bool
	importFlagForce  bool
)

// importCmd represents the import command.
var importCmd = &cobra.Command{
	Use:     "import FILE",
	Aliases: []string{"imp", "restore"},
	Short:   "Import entries from a file",
	Long: `Import entries from a studytrack JSON export or a CSV file with the
columns date, study_hours, break_time, sleep, stress_level, focus and
reflection (any order, extra columns ignored).

Days that are already logged are skipped unless --force is given.
Invalid rows are reported and skipped.

Examples:
  studytrack import backup.json
  studytrack import entries.csv --dry-run
  studytrack import backup.json --force`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importFlagDryRun, "dry-run", false, "Preview import without making changes")
	importCmd.Flags().BoolVar(&importFlagForce, "force", false, "Overwrite days that are already logged")

	rootCmd.AddCommand(importCmd)
}

// importRow is one decoded record before validation.
type importRow struct {
	Line  int
	Entry *model.DailyEntry
	Err   error
}

// ImportSummary reports what an import did (or would do).
type ImportSummary struct {
	Status     string   `json:"status"`
	DryRun     bool     `json:"dry_run"`
	Imported   int      `json:"imported"`
	Overwrites int      `json:"overwrites"`
	Duplicates int      `json:"duplicates"`
	Invalid    int      `json:"invalid"`
	Problems   []string `json:"problems,omitempty"`
}

func runImport(cmd *cobra.Command, args []string) error {
	filename := args[0]

	data, err := os.ReadFile(filename)
	if err != nil {
		return errors.NewUserErrorWithField("file", filename, "Cannot read import file", "Check the path and permissions")
	}

	rows, err := decodeImport(data)
	if err != nil {
		return err
	}

	summary, err := applyImport(rows, ctx.Today(), importFlagDryRun, importFlagForce)
	if err != nil {
		return err
	}

	if summary.Imported > 0 && !importFlagDryRun {
		if _, err := ctx.Analyzer.Streak(ctx.Ctx, ctx.UserID); err != nil {
			return err
		}
	}

	logging.InfoContext(ctx.Ctx, "import finished",
		logging.KeyUser, ctx.UserID,
		logging.KeyPath, filename,
		logging.KeyCount, summary.Imported,
	)

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(summary)
	}
	printImportSummary(ctx.CLIFormatter(), summary)
	return nil
}

// decodeImport detects JSON or CSV by the first non-space byte.
func decodeImport(data []byte) ([]importRow, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.NewUserError("Import file is empty", "Export with 'studytrack export -o FILE'")
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return decodeJSON(trimmed)
	}
	return decodeCSV(bytes.NewReader(trimmed))
}

func decodeJSON(data []byte) ([]importRow, error) {
	var doc ExportDocument
	if data[0] == '[' {
		if err := json.Unmarshal(data, &doc.Entries); err != nil {
			return nil, errors.NewUserError("Cannot parse JSON import: "+err.Error(), "Use a file written by 'studytrack export'")
		}
	} else if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewUserError("Cannot parse JSON import: "+err.Error(), "Use a file written by 'studytrack export'")
	}

	rows := make([]importRow, len(doc.Entries))
	for i, out := range doc.Entries {
		rows[i].Line = i + 1
		if out == nil {
			rows[i].Err = fmt.Errorf("empty entry")
			continue
		}
		date, err := calendar.Parse(out.Date)
		if err != nil {
			rows[i].Err = err
			continue
		}
		rows[i].Entry = &model.DailyEntry{
			Date:        date,
			StudyHours:  out.StudyHours,
			BreakTime:   out.BreakTime,
			Sleep:       out.Sleep,
			StressLevel: out.StressLevel,
			Focus:       out.Focus,
			Reflection:  validate.SanitizeReflection(out.Reflection),
		}
	}
	return rows, nil
}

func decodeCSV(r io.Reader) ([]importRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, errors.NewUserError("Cannot read CSV header", "The first line must name the columns")
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols["date"]; !ok {
		return nil, errors.NewUserError("CSV import has no date column",
			"Expected columns: "+strings.Join(csvHeader, ","))
	}

	var rows []importRow
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row := importRow{Line: line}
		if err != nil {
			row.Err = err
		} else {
			row.Entry, row.Err = csvEntry(record, cols)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func csvEntry(record []string, cols map[string]int) (*model.DailyEntry, error) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	date, err := calendar.Parse(field("date"))
	if err != nil {
		return nil, err
	}
	e := &model.DailyEntry{Date: date, Reflection: validate.SanitizeReflection(field("reflection"))}

	floats := []struct {
		name string
		dst  **float64
	}{
		{"study_hours", &e.StudyHours},
		{"break_time", &e.BreakTime},
		{"sleep", &e.Sleep},
	}
	for _, f := range floats {
		if s := field(f.name); s != "" {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: %q is not a number", f.name, s)
			}
			*f.dst = model.Float(v)
		}
	}

	ints := []struct {
		name string
		dst  **int
	}{
		{"stress_level", &e.StressLevel},
		{"focus", &e.Focus},
	}
	for _, f := range ints {
		if s := field(f.name); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil {
				return nil, fmt.Errorf("%s: %q is not a whole number", f.name, s)
			}
			*f.dst = model.Int(v)
		}
	}
	return e, nil
}

// applyImport validates rows and writes them to the store.
func applyImport(rows []importRow, today calendar.Date, dryRun, force bool) (*ImportSummary, error) {
	summary := &ImportSummary{Status: "imported", DryRun: dryRun}
	if dryRun {
		summary.Status = "dry-run"
	}

	problem := func(line int, err error) {
		summary.Invalid++
		summary.Problems = append(summary.Problems, fmt.Sprintf("entry %d: %s", line, errors.FormatByCategory(err)))
	}

	seen := make(map[calendar.Date]bool, len(rows))
	for _, row := range rows {
		if row.Err != nil {
			problem(row.Line, row.Err)
			continue
		}
		e := row.Entry
		if err := validate.NotFuture(e.Date, today); err != nil {
			problem(row.Line, err)
			continue
		}
		if err := validate.Entry(e); err != nil {
			problem(row.Line, err)
			continue
		}
		if seen[e.Date] {
			summary.Duplicates++
			continue
		}
		seen[e.Date] = true

		_, err := ctx.Store.Get(ctx.Ctx, ctx.UserID, e.Date)
		exists := err == nil
		if err != nil && !storage.IsErrKeyNotFound(err) {
			return nil, err
		}
		if exists && !force {
			summary.Duplicates++
			continue
		}
		if exists {
			summary.Overwrites++
		}

		if !dryRun {
			if err := ctx.Store.Put(ctx.Ctx, ctx.UserID, e.Date, e); err != nil {
				return nil, err
			}
		}
		summary.Imported++
	}
	return summary, nil
}

func printImportSummary(cli *output.CLIFormatter, s *ImportSummary) {
	if s.DryRun {
		cli.Title("Dry Run - Import Preview")
		cli.Printf("Would import: %d\n", s.Imported)
	} else {
		cli.Success("Import complete")
		cli.Printf("  Imported: %d\n", s.Imported)
	}
	if s.Overwrites > 0 {
		cli.Printf("  Overwritten: %d\n", s.Overwrites)
	}
	if s.Duplicates > 0 {
		cli.Printf("  Skipped (already logged): %d\n", s.Duplicates)
	}
	if s.Invalid > 0 {
		cli.Warning(fmt.Sprintf("  Invalid: %d", s.Invalid))
		for _, p := range s.Problems {
			cli.Muted("    " + strings.ReplaceAll(p, "\n", " "))
		}
	}
}
