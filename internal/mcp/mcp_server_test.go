package mcp_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/huangsam/timeline-detective/internal/contract"
	"github.com/huangsam/timeline-detective/internal/iostore"
	mcp_internal "github.com/huangsam/timeline-detective/internal/mcp"
	"github.com/huangsam/timeline-detective/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func callTool(t *testing.T, cfg *contract.Config, mgr contract.StoreManager, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	s := mcp_internal.NewMCPServer(cfg, mgr)
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	res, err := tool.Handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	})
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	return res
}

func baseConfig() *contract.Config {
	return &contract.Config{
		RadiusMeters: schema.DefaultRadiusMeters,
		Granularity:  schema.DayGranularity,
		Location:     time.UTC,
		StoreBackend: schema.NoneBackend,
	}
}

func TestAnalyzeGeofence(t *testing.T) {
	res := callTool(t, baseConfig(), nil, "analyze_geofence", map[string]any{
		"timeline_path": "testdata/sample.json",
		"lat":           "41.0082",
		"lng":           "28.9784",
		"radius":        500.0,
	})
	require.False(t, res.IsError, res.Content)

	var result schema.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &result))
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "Jan 1, 2024", result.Rows[0].Label)
	assert.Equal(t, "2h 0m", result.Rows[0].DurationLabel)
	assert.Equal(t, 2, result.Rows[0].Visits)
}

func TestAnalyzeGeofenceValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		args     map[string]any
		contains string
	}{
		{"missing center", map[string]any{"timeline_path": "testdata/sample.json"}, "--lat and --lng are required"},
		{"lat without lng", map[string]any{"lat": "41"}, "given together"},
		{"bad granularity", map[string]any{"lat": "41", "lng": "28", "granularity": "year"}, "invalid granularity"},
		{"missing file", map[string]any{"timeline_path": "testdata/nope.json", "lat": "41", "lng": "28"}, "Error reading file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := callTool(t, baseConfig(), nil, "analyze_geofence", tt.args)
			assert.True(t, res.IsError, "The response should indicate an error state")
			assert.Contains(t, res.Content[0].(mcp.TextContent).Text, tt.contains)
		})
	}
}

func TestAnalyzeGeofenceDoesNotMutateBaseConfig(t *testing.T) {
	cfg := baseConfig()
	callTool(t, cfg, nil, "analyze_geofence", map[string]any{
		"timeline_path": "testdata/sample.json",
		"lat":           "41.0082",
		"lng":           "28.9784",
		"granularity":   "month",
	})
	assert.Nil(t, cfg.Center)
	assert.Empty(t, cfg.TimelinePath)
	assert.Equal(t, schema.DayGranularity, cfg.Granularity)
}

func TestSummarizeTimeline(t *testing.T) {
	res := callTool(t, baseConfig(), nil, "summarize_timeline", map[string]any{
		"timeline_path": "testdata/sample.json",
	})
	require.False(t, res.IsError)

	var summary schema.TimelineSummary
	require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &summary))
	assert.Equal(t, 5, summary.Segments)
	assert.Equal(t, 2, summary.Visits)
	assert.Equal(t, 1, summary.Activities)
	assert.Equal(t, 1, summary.Paths)
	assert.Equal(t, 1, summary.Unknown)
}

func TestSummarizeTimelineFromStore(t *testing.T) {
	store := &iostore.MockSegmentStore{}
	mgr := &iostore.MockStoreManager{}
	mgr.On("GetSegmentStore").Return(store)

	store.On("LoadTimeline", mock.Anything).Return(nil, schema.ImportRecord{}, contract.ErrNoImport).Once()
	res := callTool(t, baseConfig(), mgr, "summarize_timeline", nil)
	assert.True(t, res.IsError)
	assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "No file selected")

	stored := &schema.Timeline{Segments: []schema.Segment{{Kind: schema.VisitKind}}}
	store.On("LoadTimeline", mock.Anything).Return(stored, schema.ImportRecord{ImportID: 1, Source: "Timeline.json"}, nil).Once()
	res = callTool(t, baseConfig(), mgr, "summarize_timeline", nil)
	require.False(t, res.IsError)
	assert.Contains(t, res.Content[0].(mcp.TextContent).Text, `"visits": 1`)

	store.AssertExpectations(t)
}
