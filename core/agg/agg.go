// Package agg has aggregation logic for timeline segments.
package agg

import (
	"strings"
	"time"

	"github.com/huangsam/timeline-detective/core/algo"
	"github.com/huangsam/timeline-detective/schema"
)

// zonelessLayouts are timestamp layouts without an offset, read in the analysis zone.
var zonelessLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// Options controls how visits are bucketed.
type Options struct {
	Granularity schema.Granularity
	Location    *time.Location    // zone calendar fields are read in (nil = time.Local)
	Window      schema.TimeWindow // optional start-time filter
}

func (o Options) location() *time.Location {
	if o.Location == nil {
		return time.Local
	}
	return o.Location
}

// visitSample is a visit that passed every filter.
type visitSample struct {
	start      time.Time
	durationMs int64
}

// Analyze scans the timeline and accumulates time spent within the selection
// per calendar bucket. It returns the accumulator, the grand total in
// milliseconds, and per-reason skip counts. A nil timeline or a selection
// without a center yields an empty result. The scan does not depend on
// segment order.
func Analyze(timeline *schema.Timeline, sel schema.Selection, opts Options) (schema.Accumulator, int64, schema.AnalysisStats) {
	acc := schema.Accumulator{}
	var stats schema.AnalysisStats
	if timeline == nil || sel.Center == nil {
		return acc, 0, stats
	}

	var total int64
	for i := range timeline.Segments {
		seg := &timeline.Segments[i]
		stats.SegmentsScanned++
		if seg.Kind != schema.VisitKind {
			continue
		}
		stats.VisitsConsidered++

		sample, reason := classifyVisit(seg, sel, opts)
		if reason != schema.NotSkipped {
			stats.Skip(reason)
			continue
		}

		key := algo.BucketKey(sample.start, opts.Granularity)
		bucket, ok := acc[key]
		if !ok {
			bucket = &schema.Bucket{Key: key, RepresentativeDate: sample.start}
			acc[key] = bucket
		}
		if sample.start.Before(bucket.RepresentativeDate) {
			bucket.RepresentativeDate = sample.start
		}
		bucket.TotalDurationMs += sample.durationMs
		bucket.Visits++
		total += sample.durationMs
		stats.VisitsCounted++
	}

	return acc, total, stats
}

// classifyVisit applies the containment, duration and window filters in order.
func classifyVisit(seg *schema.Segment, sel schema.Selection, opts Options) (visitSample, schema.SkipReason) {
	text, ok := seg.Location()
	if !ok || text == "" {
		return visitSample{}, schema.SkipNoLocation
	}

	distance, inside := algo.DistanceFromCenter(text, sel.Center, float64(sel.RadiusMeters))
	if distance < 0 {
		return visitSample{}, schema.SkipBadLocation
	}
	if !inside {
		return visitSample{}, schema.SkipOutsideRadius
	}

	loc := opts.location()
	start, okStart := ParseTimestamp(seg.StartTime, loc)
	end, okEnd := ParseTimestamp(seg.EndTime, loc)
	if !okStart || !okEnd {
		return visitSample{}, schema.SkipBadDuration
	}
	durationMs := end.Sub(start).Milliseconds()
	if durationMs <= 0 {
		return visitSample{}, schema.SkipBadDuration
	}

	if !opts.Window.Contains(start) {
		return visitSample{}, schema.SkipOutsideTimeSpan
	}

	return visitSample{start: start.In(loc), durationMs: durationMs}, schema.NotSkipped
}

// ParseTimestamp parses an export timestamp. Offsets in the text win;
// zone-less date-times are read in loc and bare dates are read as UTC.
func ParseTimestamp(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	for _, layout := range zonelessLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
