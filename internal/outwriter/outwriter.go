// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/huangsam/timeline-detective/internal/contract"
	"github.com/huangsam/timeline-detective/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteAnalysis prints geofence analysis results using the configured output format.
func (ow *OutWriter) WriteAnalysis(result schema.AnalysisResult, cfg *contract.Config, duration time.Duration) error {
	return PrintAnalysisResults(result, cfg, duration)
}

// WriteSummary prints timeline segment counts using the configured output format.
func (ow *OutWriter) WriteSummary(summary schema.TimelineSummary, cfg *contract.Config, duration time.Duration) error {
	return PrintSummary(summary, cfg, duration)
}

// GetMaxTableLabelWidth calculates the maximum width for bucket labels in table output
// based on terminal width and table configuration.
func GetMaxTableLabelWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Time Spent + Visits columns plus borders, separators and padding
	baseWidth := 30

	available := termWidth - baseWidth
	if available < 12 {
		return 12
	}
	if available > 40 {
		return 40
	}
	return available
}
