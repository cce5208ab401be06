package core

import (
	"path/filepath"
	"time"

	"github.com/huangsam/timeline-detective/internal/contract"
)

// logAnalysisHeader prints a concise header for an analysis run to stderr.
func logAnalysisHeader(cfg *contract.Config, source string, segments int) {
	name := filepath.Base(source)
	if source == "" {
		name = "stored import"
	}

	contract.LogInfo("📂 Timeline: %s (%d segments)", name, segments)
	contract.LogInfo("📍 Center: %s (radius: %d m, by %s)", cfg.Center, cfg.RadiusMeters, cfg.Granularity)

	if !cfg.StartTime.IsZero() || !cfg.EndTime.IsZero() {
		contract.LogInfo("📅 Range: %s → %s", formatBound(cfg.StartTime), formatBound(cfg.EndTime))
	}
}

func formatBound(t time.Time) string {
	if t.IsZero() {
		return "*"
	}
	return t.Format(contract.DateTimeFormat)
}
