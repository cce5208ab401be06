package outwriter

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"time"

	"github.com/huangsam/timeline-detective/internal/contract"
	"github.com/huangsam/timeline-detective/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintSummary outputs timeline segment counts, dispatching based on the output format configured.
func PrintSummary(summary schema.TimelineSummary, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, summary)
		}, "Wrote JSON")
	case schema.YAMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, summary)
		}, "Wrote YAML")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeQuotedCSV(w, []string{"Kind", "Segments"}, summaryRows(summary))
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for summary")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryTable(w, summary, cfg, duration)
		}, "Wrote table")
	}
}

func summaryRows(summary schema.TimelineSummary) [][]string {
	return [][]string{
		{string(schema.VisitKind), strconv.Itoa(summary.Visits)},
		{string(schema.ActivityKind), strconv.Itoa(summary.Activities)},
		{string(schema.PathKind), strconv.Itoa(summary.Paths)},
		{string(schema.UnknownKind), strconv.Itoa(summary.Unknown)},
	}
}

func writeSummaryTable(w io.Writer, summary schema.TimelineSummary, cfg *contract.Config, duration time.Duration) error {
	source := "stored import"
	if summary.Source != "" {
		source = filepath.Base(summary.Source)
	}
	if _, err := fmt.Fprintln(w, contract.Paint(contract.HeadlineColor, "📂 "+source, cfg.UseColors)); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Kind", "Segments"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := table.Bulk(summaryRows(summary)); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, summary.Message()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Loaded %d segments in %v\n", summary.Segments, duration)
	return err
}
