// Package core has core logic for loading timelines and running geofence analysis.
package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/huangsam/timeline-detective/core/agg"
	"github.com/huangsam/timeline-detective/internal/contract"
	"github.com/huangsam/timeline-detective/internal/outwriter"
	"github.com/huangsam/timeline-detective/internal/timeline"
	"github.com/huangsam/timeline-detective/schema"
)

// ExecuteAnalyze runs the geofence analysis and writes results in the configured format.
// It serves as the main entry point for the 'analyze' command.
func ExecuteAnalyze(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	result, err := GetAnalyzeResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteAnalysis(result, cfg, time.Since(start))
}

// GetAnalyzeResults loads the timeline and returns the formatted analysis
// without writing it anywhere.
func GetAnalyzeResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (schema.AnalysisResult, error) {
	if err := cfg.RequireCenter(); err != nil {
		return schema.AnalysisResult{}, err
	}
	tl, source, err := LoadTimeline(ctx, cfg, mgr)
	if err != nil {
		return schema.AnalysisResult{}, err
	}
	if !shouldSuppressHeader(ctx) {
		logAnalysisHeader(cfg, source, len(tl.Segments))
	}
	return AnalyzeTimeline(tl, cfg), nil
}

// AnalyzeTimeline runs the aggregation and formatting steps over a loaded timeline.
func AnalyzeTimeline(tl *schema.Timeline, cfg *contract.Config) schema.AnalysisResult {
	sel := cfg.Selection()
	acc, total, stats := agg.Analyze(tl, sel, agg.Options{
		Granularity: cfg.Granularity,
		Location:    cfg.AnalysisLocation(),
		Window:      cfg.Window(),
	})
	result := FormatResults(acc, total, cfg.Granularity)
	result.Selection = sel
	result.Stats = stats
	return result
}

// ExecuteSummary loads the timeline and writes its segment counts.
func ExecuteSummary(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	summary, err := GetSummaryResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteSummary(summary, cfg, time.Since(start))
}

// GetSummaryResults loads the timeline and counts its segments per kind.
func GetSummaryResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (schema.TimelineSummary, error) {
	tl, source, err := LoadTimeline(ctx, cfg, mgr)
	if err != nil {
		return schema.TimelineSummary{}, err
	}
	summary := timeline.Summarize(tl)
	summary.Source = source
	return summary, nil
}

// LoadTimeline returns the export named by cfg.TimelinePath, or the stored
// import when no path is given. With cfg.Import set, a file is also written
// to the store so later runs can omit it.
func LoadTimeline(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (*schema.Timeline, string, error) {
	store := segmentStore(mgr)

	if cfg.TimelinePath != "" {
		tl, err := timeline.LoadFile(ctx, cfg.TimelinePath)
		if err != nil {
			return nil, "", err
		}
		if cfg.Import {
			if store == nil {
				return nil, "", errors.New("segment store is not initialized")
			}
			importID, err := store.ImportTimeline(ctx, cfg.TimelinePath, tl)
			if err != nil {
				return nil, "", fmt.Errorf("failed to import timeline: %w", err)
			}
			contract.LogInfo("💾 Imported %d segments as import #%d", len(tl.Segments), importID)
		}
		return tl, cfg.TimelinePath, nil
	}

	if store == nil {
		return nil, "", &timeline.LoadError{Status: timeline.StatusNoFile}
	}
	tl, record, err := store.LoadTimeline(ctx)
	if errors.Is(err, contract.ErrNoImport) {
		return nil, "", &timeline.LoadError{Status: timeline.StatusNoFile, Err: err}
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to load stored timeline: %w", err)
	}
	return tl, record.Source, nil
}

func segmentStore(mgr contract.StoreManager) contract.SegmentStore {
	if mgr == nil {
		return nil
	}
	return mgr.GetSegmentStore()
}

// ExecuteImport saves the export named by cfg.TimelinePath into the store and
// reports its segment counts.
func ExecuteImport(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	cfg.Import = true
	summary, err := GetSummaryResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	contract.LogInfo("✅ %s", summary.Message())
	return nil
}
