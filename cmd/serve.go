package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/huangsam/timeline-detective/internal/httpapi"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultServeAddr = ":8080"

// serveCmd runs the HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve [timeline.json]",
	Short: "Serve geofence analysis over HTTP.",
	Long: `Start an HTTP API that analyzes uploaded Timeline exports.

Routes:
  GET  /health
  POST /api/v1/summary   multipart "file"
  POST /api/v1/analyze   multipart "file" plus lat, lng, radius, granularity (?format=csv for CSV)

Requests without a file fall back to the file given here, then to the stored import.

Examples:
  detective serve --addr :9000
  curl -F file=@Timeline.json -F lat=41.0082 -F lng=28.9784 localhost:9000/api/v1/analyze`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		return httpapi.Serve(ctx, viper.GetString("addr"), cfg, storeManager)
	},
}
