// Package parquet provides data structures and functions for exporting analysis
// results and stored timeline segments using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/timeline-detective/schema"
	"github.com/parquet-go/parquet-go"
)

// ResultRow is one calendar bucket of an analysis result.
type ResultRow struct {
	// Granularity is the bucket size (day, week, month)
	Granularity string `parquet:"granularity,snappy"`

	// BucketKey is the grouping identity, e.g. 2024-01-01 or week-2023-12-31
	BucketKey string `parquet:"bucket_key,snappy"`

	// Label is the human-readable bucket label
	Label string `parquet:"label,snappy"`

	// StartDate is the earliest visit start inside the bucket
	StartDate time.Time `parquet:"start_date,snappy"`

	// DurationMs is the time spent inside the geofence in milliseconds
	DurationMs int64 `parquet:"duration_ms,snappy"`

	// DurationLabel renders DurationMs as "<H>h <M>m"
	DurationLabel string `parquet:"duration_label,snappy"`

	// Visits is the number of visits counted in the bucket
	Visits int32 `parquet:"visits,snappy"`
}

// Segment is one stored timeline segment.
// This struct maps to the timeline_segments database table.
type Segment struct {
	ImportID      int64   `parquet:"import_id,snappy"`
	Position      int32   `parquet:"position,snappy"`
	Kind          string  `parquet:"kind,snappy"`
	StartTime     string  `parquet:"start_time,snappy"`
	EndTime       string  `parquet:"end_time,snappy"`
	PlaceLocation *string `parquet:"place_location,optional,snappy"`
	Payload       string  `parquet:"payload,snappy"`
}

// WriteResultRows writes result rows to w.
func WriteResultRows(w io.Writer, data []ResultRow) error {
	return writeRows(w, data)
}

// WriteSegmentsParquet writes stored segments to a Parquet file.
func WriteSegmentsParquet(data []Segment, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return writeRows(file, data)
}

// writeRows encodes data with a schema inferred from the struct tags of T.
func writeRows[T any](w io.Writer, data []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertAnalysisResult converts the rows of an analysis result for Parquet export.
func ConvertAnalysisResult(result schema.AnalysisResult) []ResultRow {
	rows := make([]ResultRow, len(result.Rows))
	for i, row := range result.Rows {
		rows[i] = ResultRow{
			Granularity:   string(result.Granularity),
			BucketKey:     row.Key,
			Label:         row.Label,
			StartDate:     row.StartDate,
			DurationMs:    row.DurationMs,
			DurationLabel: row.DurationLabel,
			Visits:        int32(row.Visits),
		}
	}
	return rows
}

// ConvertSegmentRecords converts schema.SegmentRecord to Segment for Parquet export.
func ConvertSegmentRecords(records []schema.SegmentRecord) []Segment {
	result := make([]Segment, len(records))
	for i, record := range records {
		var place *string
		if record.PlaceLocation.Valid {
			value := record.PlaceLocation.String
			place = &value
		}
		result[i] = Segment{
			ImportID:      record.ImportID,
			Position:      int32(record.Position),
			Kind:          record.Kind,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			PlaceLocation: place,
			Payload:       record.Payload,
		}
	}
	return result
}
