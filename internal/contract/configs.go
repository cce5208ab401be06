package contract

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/timeline-detective/schema"
)

// MaxRadiusMeters caps the geofence radius at half the Earth's circumference.
const MaxRadiusMeters = 20_037_508

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for the analysis.
// This struct remains the "final, validated" config.
type Config struct {
	TimelinePath string

	Center       *schema.GeoPoint // nil until a location is chosen
	RadiusMeters int
	Granularity  schema.Granularity
	Location     *time.Location
	StartTime    time.Time // zero = unbounded
	EndTime      time.Time // zero = unbounded

	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext
	Import         bool   // Persist the loaded export into the segment store
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	TimelinePathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Lat            string `mapstructure:"lat"`
	Lng            string `mapstructure:"lng"`
	Radius         int    `mapstructure:"radius"`
	Granularity    string `mapstructure:"granularity"`
	Timezone       string `mapstructure:"timezone"`
	Start          string `mapstructure:"start"`
	End            string `mapstructure:"end"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Width          int    `mapstructure:"width"`
	Color          string `mapstructure:"color"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`

	// --- Fields from analyzeCmd.Flags() ---
	Import bool `mapstructure:"import"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Center != nil {
		center := *c.Center
		clone.Center = &center
	}
	return &clone
}

// Selection returns the geofence described by the config.
func (c *Config) Selection() schema.Selection {
	return schema.Selection{Center: c.Center, RadiusMeters: c.RadiusMeters}
}

// Window returns the time window visits must start in.
func (c *Config) Window() schema.TimeWindow {
	return schema.TimeWindow{Start: c.StartTime, End: c.EndTime}
}

// AnalysisLocation returns the zone used for bucketing, defaulting to local time.
func (c *Config) AnalysisLocation() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

// RequireCenter reports an error when no geofence center was configured.
func (c *Config) RequireCenter() error {
	if c.Center == nil {
		return fmt.Errorf("--lat and --lng are required")
	}
	return nil
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processSelection(cfg, input); err != nil {
		return err
	}
	if err := processTimeRange(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates the output, store and display fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.TimelinePath = strings.TrimSpace(input.TimelinePathStr)
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Import = input.Import

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, yaml, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required for parquet output")
	}

	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	if err := ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
		return err
	}
	if cfg.Import && cfg.StoreBackend == schema.NoneBackend {
		return fmt.Errorf("--import needs a store backend other than none")
	}

	return nil
}

// processSelection parses the geofence and bucketing inputs.
func processSelection(cfg *Config, input *ConfigRawInput) error {
	lat := strings.TrimSpace(input.Lat)
	lng := strings.TrimSpace(input.Lng)
	switch {
	case lat == "" && lng == "":
		cfg.Center = nil
	case lat == "" || lng == "":
		return fmt.Errorf("--lat and --lng must be given together")
	default:
		center, err := parseCenter(lat, lng)
		if err != nil {
			return err
		}
		cfg.Center = center
	}

	if input.Radius < 0 || input.Radius > MaxRadiusMeters {
		return fmt.Errorf("radius must be between 0 and %d meters (received %d)", MaxRadiusMeters, input.Radius)
	}
	cfg.RadiusMeters = input.Radius

	g, err := ParseGranularity(input.Granularity)
	if err != nil {
		return err
	}
	cfg.Granularity = g

	loc, err := loadLocation(input.Timezone)
	if err != nil {
		return err
	}
	cfg.Location = loc
	return nil
}

// ParseGranularity validates a user supplied granularity.
func ParseGranularity(s string) (schema.Granularity, error) {
	g := schema.Granularity(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := schema.ValidGranularities[g]; !ok {
		return "", fmt.Errorf("invalid granularity '%s'. must be day, week, month", s)
	}
	return g, nil
}

func parseCenter(lat, lng string) (*schema.GeoPoint, error) {
	latVal, err := strconv.ParseFloat(lat, 64)
	if err != nil || math.IsNaN(latVal) || latVal < -90 || latVal > 90 {
		return nil, fmt.Errorf("invalid --lat '%s'. must be a number between -90 and 90", lat)
	}
	lngVal, err := strconv.ParseFloat(lng, 64)
	if err != nil || math.IsNaN(lngVal) || lngVal < -180 || lngVal > 180 {
		return nil, fmt.Errorf("invalid --lng '%s'. must be a number between -180 and 180", lng)
	}
	return &schema.GeoPoint{Lat: latVal, Lng: lngVal}, nil
}

func loadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone '%s': %w", name, err)
	}
	return loc, nil
}

// processTimeRange parses the optional --start/--end window.
func processTimeRange(cfg *Config, input *ConfigRawInput) error {
	now := time.Now()
	cfg.StartTime = time.Time{}
	cfg.EndTime = time.Time{}

	if input.Start != "" {
		t, err := ParseTimeBound(input.Start, now, cfg.AnalysisLocation())
		if err != nil {
			return fmt.Errorf("invalid start date format for '%s': %w", input.Start, err)
		}
		cfg.StartTime = t
	}

	if input.End != "" {
		t, err := ParseTimeBound(input.End, now, cfg.AnalysisLocation())
		if err != nil {
			return fmt.Errorf("invalid end date format for '%s': %w", input.End, err)
		}
		cfg.EndTime = t
	}

	if !cfg.StartTime.IsZero() && !cfg.EndTime.IsZero() && cfg.StartTime.After(cfg.EndTime) {
		return fmt.Errorf("start time (%s) cannot be after end time (%s)", cfg.StartTime.Format(DateTimeFormat), cfg.EndTime.Format(DateTimeFormat))
	}

	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}
