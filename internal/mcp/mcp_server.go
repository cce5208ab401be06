// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/timeline-detective/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Timeline Detective MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Timeline Detective Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: analyze_geofence ---
	s.AddTool(mcp.NewTool("analyze_geofence",
		mcp.WithDescription("Total the time spent within a radius of a coordinate, grouped by day, week or month."),
		mcp.WithString("timeline_path", mcp.Description("Path to the Timeline.json export (defaults to the stored import if not specified).")),
		mcp.WithString("lat", mcp.Description("Latitude of the geofence center in decimal degrees.")),
		mcp.WithString("lng", mcp.Description("Longitude of the geofence center in decimal degrees.")),
		mcp.WithNumber("radius", mcp.Description("Geofence radius in meters. Defaults to 500.")),
		mcp.WithString("granularity", mcp.Description("Bucket size. Defaults to 'day'."), mcp.Enum("day", "week", "month")),
		mcp.WithString("timezone", mcp.Description("IANA timezone used for calendar buckets (e.g., 'Europe/Istanbul').")),
		mcp.WithString("start", mcp.Description("Only count visits starting at or after this time (e.g., '2024-01-01', '6 months ago').")),
		mcp.WithString("end", mcp.Description("Only count visits starting at or before this time.")),
	), h.handleAnalyzeGeofence)

	// --- 2. Tool: summarize_timeline ---
	s.AddTool(mcp.NewTool("summarize_timeline",
		mcp.WithDescription("Count the visits, activities and path segments of a timeline export."),
		mcp.WithString("timeline_path", mcp.Description("Path to the Timeline.json export (defaults to the stored import).")),
	), h.handleSummarizeTimeline)

	return s
}

// StartMCPServer starts the Timeline Detective MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
