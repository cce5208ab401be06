package schema

import (
	"database/sql"
	"time"
)

// ImportRecord represents a row from the timeline_imports table.
type ImportRecord struct {
	ImportID      int64  `db:"import_id"`
	Source        string `db:"source"`
	ImportedAtMs  int64  `db:"imported_at"`
	TotalSegments int    `db:"total_segments"`
}

// ImportedAt returns the import time.
func (r ImportRecord) ImportedAt() time.Time {
	return time.UnixMilli(r.ImportedAtMs)
}

// SegmentRecord represents a row from the timeline_segments table.
type SegmentRecord struct {
	ImportID      int64          `db:"import_id"`
	Position      int            `db:"position"`
	Kind          string         `db:"kind"`
	StartTime     string         `db:"start_time"`
	EndTime       string         `db:"end_time"`
	PlaceLocation sql.NullString `db:"place_location"`
	Payload       string         `db:"payload"`
}
