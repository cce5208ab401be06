package schema

import (
	"fmt"
	"time"
)

// GeoPoint is a coordinate in decimal degrees.
type GeoPoint struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// String renders the point the way exports write coordinates.
func (p GeoPoint) String() string {
	return fmt.Sprintf("%.6f°, %.6f°", p.Lat, p.Lng)
}

// Selection is the geofence an analysis is run against. A nil Center means
// no location has been chosen yet.
type Selection struct {
	Center       *GeoPoint `json:"center" yaml:"center"`
	RadiusMeters int       `json:"radiusMeters" yaml:"radiusMeters"`
}

// TimeWindow bounds visits by start time. Zero bounds are open.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls within the window (inclusive).
func (w TimeWindow) Contains(t time.Time) bool {
	if !w.Start.IsZero() && t.Before(w.Start) {
		return false
	}
	if !w.End.IsZero() && t.After(w.End) {
		return false
	}
	return true
}

// Bucket accumulates time spent within one calendar period.
type Bucket struct {
	Key                string
	RepresentativeDate time.Time
	TotalDurationMs    int64
	Visits             int
}

// Accumulator maps bucket keys to their running totals.
type Accumulator map[string]*Bucket

// AnalysisStats counts what happened to each scanned segment.
type AnalysisStats struct {
	SegmentsScanned  int                `json:"segmentsScanned" yaml:"segmentsScanned"`
	VisitsConsidered int                `json:"visitsConsidered" yaml:"visitsConsidered"`
	VisitsCounted    int                `json:"visitsCounted" yaml:"visitsCounted"`
	Skipped          map[SkipReason]int `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// Skip records a skipped visit.
func (s *AnalysisStats) Skip(reason SkipReason) {
	if s.Skipped == nil {
		s.Skipped = make(map[SkipReason]int)
	}
	s.Skipped[reason]++
}

// ResultRow is one line of the results table.
type ResultRow struct {
	Key           string    `json:"key" yaml:"key"`
	Label         string    `json:"label" yaml:"label"`
	DurationLabel string    `json:"durationLabel" yaml:"durationLabel"`
	StartDate     time.Time `json:"startDate" yaml:"startDate"`
	DurationMs    int64     `json:"durationMs" yaml:"durationMs"`
	Visits        int       `json:"visits" yaml:"visits"`
}

// AnalysisResult is the formatted outcome of an analysis run.
type AnalysisResult struct {
	Granularity     Granularity   `json:"granularity" yaml:"granularity"`
	Selection       Selection     `json:"selection" yaml:"selection"`
	Rows            []ResultRow   `json:"rows" yaml:"rows"`
	TotalDurationMs int64         `json:"totalDurationMs" yaml:"totalDurationMs"`
	TotalLabel      string        `json:"totalLabel" yaml:"totalLabel"`
	NoResults       bool          `json:"noResults" yaml:"noResults"`
	Stats           AnalysisStats `json:"stats" yaml:"stats"`
}

// TimelineSummary holds informational counts for a loaded export.
type TimelineSummary struct {
	Source     string `json:"source,omitempty" yaml:"source,omitempty"`
	Segments   int    `json:"segments" yaml:"segments"`
	Visits     int    `json:"visits" yaml:"visits"`
	Activities int    `json:"activities" yaml:"activities"`
	Paths      int    `json:"paths" yaml:"paths"`
	Unknown    int    `json:"unknown" yaml:"unknown"`
}

// Message renders the summary as a load status line.
func (s TimelineSummary) Message() string {
	return fmt.Sprintf("File loaded successfully: %d visits, %d activities, %d path segments", s.Visits, s.Activities, s.Paths)
}
