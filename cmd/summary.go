package cmd

import (
	"github.com/huangsam/timeline-detective/core"
	"github.com/huangsam/timeline-detective/internal/contract"
	"github.com/spf13/cobra"
)

// summaryCmd prints segment counts for an export.
var summaryCmd = &cobra.Command{
	Use:   "summary [timeline.json]",
	Short: "Count the visits, activities and paths in an export.",
	Long: `Load a Google Timeline export and report how many segments of each kind it holds.

Useful for checking that an export parses before running an analysis.

Examples:
  detective summary Timeline.json
  detective summary Timeline.json --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSummary(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot summarize timeline", err)
		}
	},
}
