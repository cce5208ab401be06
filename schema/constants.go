package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// Granularity represents the calendar bucket size used for grouping.
	Granularity string

	// SegmentKind discriminates the variant held by a Segment.
	SegmentKind string

	// SkipReason explains why a segment was left out of the aggregation.
	SkipReason string

	// DatabaseBackend represents the database backend for the segment store.
	DatabaseBackend string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	YAMLOut    OutputMode = "yaml"
	ParquetOut OutputMode = "parquet"
)

// All granularities supported.
const (
	DayGranularity   Granularity = "day" // default
	WeekGranularity  Granularity = "week"
	MonthGranularity Granularity = "month"
)

// All segment kinds.
const (
	VisitKind    SegmentKind = "visit"
	ActivityKind SegmentKind = "activity"
	PathKind     SegmentKind = "path"
	UnknownKind  SegmentKind = "unknown"
)

// Reasons a visit is skipped. An empty reason means the visit was kept.
const (
	NotSkipped          SkipReason = ""
	SkipNoLocation      SkipReason = "no_location"
	SkipBadLocation     SkipReason = "bad_location"
	SkipOutsideRadius   SkipReason = "outside_radius"
	SkipBadDuration     SkipReason = "bad_duration"
	SkipOutsideTimeSpan SkipReason = "outside_time_window"
)

// All store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// DefaultRadiusMeters is the geofence radius used when none is given.
const DefaultRadiusMeters = 500

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	YAMLOut:    {},
	ParquetOut: {},
}

// ValidGranularities lists all valid granularities.
var ValidGranularities = map[Granularity]struct{}{
	DayGranularity:   {},
	WeekGranularity:  {},
	MonthGranularity: {},
}

// ValidDatabaseBackends lists all valid store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// AllGranularities returns granularities in display order.
var AllGranularities = []Granularity{DayGranularity, WeekGranularity, MonthGranularity}
