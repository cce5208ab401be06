package core

import (
	"fmt"
	"sort"

	"github.com/huangsam/timeline-detective/core/algo"
	"github.com/huangsam/timeline-detective/schema"
)

// FormatDuration renders milliseconds as "<H>h <M>m", flooring to whole minutes.
func FormatDuration(ms int64) string {
	totalMinutes := ms / (1000 * 60)
	return fmt.Sprintf("%dh %dm", totalMinutes/60, totalMinutes%60)
}

// FormatTotal renders the grand total line.
func FormatTotal(ms int64) string {
	return "Total time: " + FormatDuration(ms)
}

// FormatResults turns an accumulator into rows ordered by representative
// date, earliest first. Ties are broken by bucket key. An empty accumulator
// sets NoResults and yields no rows.
func FormatResults(acc schema.Accumulator, totalDurationMs int64, g schema.Granularity) schema.AnalysisResult {
	result := schema.AnalysisResult{
		Granularity:     g,
		Rows:            []schema.ResultRow{},
		TotalDurationMs: totalDurationMs,
		TotalLabel:      FormatTotal(totalDurationMs),
	}
	if len(acc) == 0 {
		result.NoResults = true
		return result
	}

	buckets := make([]*schema.Bucket, 0, len(acc))
	for _, b := range acc {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		if !buckets[i].RepresentativeDate.Equal(buckets[j].RepresentativeDate) {
			return buckets[i].RepresentativeDate.Before(buckets[j].RepresentativeDate)
		}
		return buckets[i].Key < buckets[j].Key
	})

	for _, b := range buckets {
		result.Rows = append(result.Rows, schema.ResultRow{
			Key:           b.Key,
			Label:         algo.BucketLabel(b.RepresentativeDate, g),
			DurationLabel: FormatDuration(b.TotalDurationMs),
			StartDate:     b.RepresentativeDate,
			DurationMs:    b.TotalDurationMs,
			Visits:        b.Visits,
		})
	}
	return result
}
