package schema

import "time"

// StoreStatus represents the status of the segment store.
type StoreStatus struct {
	Backend        string           `json:"backend"`
	Connected      bool             `json:"connected"`
	ImportID       int64            `json:"import_id"`
	Source         string           `json:"source"`
	ImportedAt     time.Time        `json:"imported_at"`
	TotalSegments  int64            `json:"total_segments"`
	SegmentsByKind map[string]int64 `json:"segments_by_kind"`
	TableSizes     map[string]int64 `json:"table_sizes"`
}
