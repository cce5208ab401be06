package cmd

import (
	"github.com/huangsam/timeline-detective/core"
	"github.com/huangsam/timeline-detective/internal/contract"
	"github.com/spf13/cobra"
)

// analyzeCmd totals time spent inside the geofence.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [timeline.json]",
	Short: "Total the time spent within a radius of a coordinate.",
	Long: `Read a Google Timeline export and add up how long your visits stayed
within --radius meters of --lat/--lng, grouped by day, week or month.

Only visit segments count. Activities and paths are ignored, and visits with
missing coordinates or broken timestamps are skipped and reported.

Without a file argument the most recent stored import is analyzed.

Examples:
  # Daily totals around a point
  detective analyze Timeline.json --lat 41.0082 --lng 28.9784

  # Weekly totals within 1 km, in a specific timezone
  detective analyze Timeline.json --lat 41.0082 --lng 28.9784 -r 1000 -g week --timezone Europe/Istanbul

  # Save the export for later and write CSV
  detective analyze Timeline.json --import --lat 41.0082 --lng 28.9784 --output csv --output-file results.csv

  # Reuse the stored export, last six months only
  detective analyze --lat 41.0082 --lng 28.9784 --start "6 months ago"`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAnalyze(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run geofence analysis", err)
		}
	},
}
