package outwriter

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/timeline-detective/internal/contract"
	"github.com/huangsam/timeline-detective/internal/parquet"
	"github.com/huangsam/timeline-detective/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// DefaultCSVFileName is the suggested download name for CSV results.
const DefaultCSVFileName = "timeline-detective-results.csv"

// EmptyResultMessage is shown when no visit fell inside the geofence.
const EmptyResultMessage = "No time recorded inside the selected radius and timeframe."

// CSVHeader is the header line of CSV results.
var CSVHeader = []string{"Date", "Time Spent"}

// PrintAnalysisResults outputs the analysis results, dispatching based on the output format configured.
func PrintAnalysisResults(result schema.AnalysisResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.YAMLOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, result)
		}, "Wrote YAML"); err != nil {
			return fmt.Errorf("error writing YAML output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return WriteResultsCSV(w, result)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("--output-file is required for parquet output")
		}
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteResultRows(w, parquet.ConvertAnalysisResult(result))
		}, "Wrote Parquet"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAnalysisTable(w, result, cfg, duration)
		}, "Wrote table")
	}
	return nil
}

// WriteResultsCSV writes one quoted row per bucket under the Date,Time Spent header.
// Values are the display labels verbatim.
func WriteResultsCSV(w io.Writer, result schema.AnalysisResult) error {
	rows := make([][]string, 0, len(result.Rows))
	for _, row := range result.Rows {
		rows = append(rows, []string{row.Label, row.DurationLabel})
	}
	return writeQuotedCSV(w, CSVHeader, rows)
}

// writeAnalysisTable generates and writes the human-readable table.
func writeAnalysisTable(w io.Writer, result schema.AnalysisResult, cfg *contract.Config, duration time.Duration) error {
	if _, err := fmt.Fprintln(w, contract.Paint(contract.HeadlineColor, headline(result), cfg.UseColors)); err != nil {
		return err
	}

	if result.NoResults {
		if _, err := fmt.Fprintln(w, contract.Paint(contract.EmptyColor, EmptyResultMessage, cfg.UseColors)); err != nil {
			return err
		}
		return writeCompletion(w, result, duration)
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Date", "Time Spent", "Visits"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	labelWidth := GetMaxTableLabelWidth(cfg)
	var data [][]string
	for _, row := range result.Rows {
		data = append(data, []string{
			contract.TruncateLabel(row.Label, labelWidth),
			row.DurationLabel,
			strconv.Itoa(row.Visits),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, contract.Paint(contract.TotalColor, result.TotalLabel, cfg.UseColors)); err != nil {
		return err
	}
	return writeCompletion(w, result, duration)
}

func headline(result schema.AnalysisResult) string {
	center := "no location"
	if result.Selection.Center != nil {
		center = result.Selection.Center.String()
	}
	return fmt.Sprintf("📍 Time spent within %d m of %s (by %s)", result.Selection.RadiusMeters, center, result.Granularity)
}

func writeCompletion(w io.Writer, result schema.AnalysisResult, duration time.Duration) error {
	stats := result.Stats
	if _, err := fmt.Fprintf(w, "Counted %d of %d visits across %d segments", stats.VisitsCounted, stats.VisitsConsidered, stats.SegmentsScanned); err != nil {
		return err
	}
	if skipped := formatSkipped(stats.Skipped); skipped != "" {
		if _, err := fmt.Fprintf(w, " (skipped: %s)", skipped); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\nAnalysis completed in %v\n", duration)
	return err
}

// formatSkipped renders skip counts in a stable order.
func formatSkipped(skipped map[schema.SkipReason]int) string {
	reasons := make([]string, 0, len(skipped))
	for reason := range skipped {
		reasons = append(reasons, string(reason))
	}
	sort.Strings(reasons)

	parts := make([]string, 0, len(reasons))
	for _, reason := range reasons {
		parts = append(parts, fmt.Sprintf("%d %s", skipped[schema.SkipReason(reason)], reason))
	}
	return strings.Join(parts, ", ")
}
