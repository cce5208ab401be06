package contract

import (
	"fmt"
	"strings"
	"time"
)

// Overrides carries per-request parameters from the MCP and HTTP surfaces.
// Zero fields keep the values already in the config.
type Overrides struct {
	TimelinePath string
	Lat          string
	Lng          string
	Radius       *int
	Granularity  string
	Timezone     string
	Start        string
	End          string
}

// ApplyOverrides validates o and merges it into cfg, which should be a clone.
func ApplyOverrides(cfg *Config, o Overrides) error {
	if p := strings.TrimSpace(o.TimelinePath); p != "" {
		cfg.TimelinePath = p
	}

	lat := strings.TrimSpace(o.Lat)
	lng := strings.TrimSpace(o.Lng)
	if lat != "" || lng != "" {
		if lat == "" || lng == "" {
			return fmt.Errorf("lat and lng must be given together")
		}
		center, err := parseCenter(lat, lng)
		if err != nil {
			return err
		}
		cfg.Center = center
	}

	if o.Radius != nil {
		if *o.Radius < 0 || *o.Radius > MaxRadiusMeters {
			return fmt.Errorf("radius must be between 0 and %d meters (received %d)", MaxRadiusMeters, *o.Radius)
		}
		cfg.RadiusMeters = *o.Radius
	}

	if o.Granularity != "" {
		g, err := ParseGranularity(o.Granularity)
		if err != nil {
			return err
		}
		cfg.Granularity = g
	}

	if o.Timezone != "" {
		loc, err := loadLocation(o.Timezone)
		if err != nil {
			return err
		}
		cfg.Location = loc
	}

	now := time.Now()
	if o.Start != "" {
		t, err := ParseTimeBound(o.Start, now, cfg.AnalysisLocation())
		if err != nil {
			return fmt.Errorf("invalid start date format for '%s': %w", o.Start, err)
		}
		cfg.StartTime = t
	}
	if o.End != "" {
		t, err := ParseTimeBound(o.End, now, cfg.AnalysisLocation())
		if err != nil {
			return fmt.Errorf("invalid end date format for '%s': %w", o.End, err)
		}
		cfg.EndTime = t
	}
	if !cfg.StartTime.IsZero() && !cfg.EndTime.IsZero() && cfg.StartTime.After(cfg.EndTime) {
		return fmt.Errorf("start time (%s) cannot be after end time (%s)", cfg.StartTime.Format(DateTimeFormat), cfg.EndTime.Format(DateTimeFormat))
	}
	return nil
}
