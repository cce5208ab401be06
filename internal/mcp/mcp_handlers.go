package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/timeline-detective/core"
	"github.com/huangsam/timeline-detective/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

func (h *toolHandler) handleAnalyzeGeofence(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	overrides := contract.Overrides{
		TimelinePath: request.GetString("timeline_path", ""),
		Lat:          request.GetString("lat", ""),
		Lng:          request.GetString("lng", ""),
		Granularity:  request.GetString("granularity", ""),
		Timezone:     request.GetString("timezone", ""),
		Start:        request.GetString("start", ""),
		End:          request.GetString("end", ""),
	}
	if r := request.GetInt("radius", -1); r >= 0 {
		overrides.Radius = &r
	}

	if err := contract.ApplyOverrides(cfg, overrides); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid analysis parameters: %v", err)), nil
	}

	result, err := core.GetAnalyzeResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleSummarizeTimeline(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("timeline_path", ""); p != "" {
		cfg.TimelinePath = p
	}

	summary, err := core.GetSummaryResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("summary failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(summary, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
