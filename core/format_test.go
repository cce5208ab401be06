package core

import (
	"testing"
	"time"

	"github.com/huangsam/timeline-detective/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		ms       int64
		expected string
	}{
		{0, "0h 0m"},
		{45000, "0h 0m"},
		{59999, "0h 0m"},
		{60000, "0h 1m"},
		{5400000, "1h 30m"},
		{3600000, "1h 0m"},
		{90000000, "25h 0m"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDuration(tt.ms))
		})
	}
}

func TestFormatResultsEmpty(t *testing.T) {
	result := FormatResults(schema.Accumulator{}, 0, schema.DayGranularity)

	assert.True(t, result.NoResults)
	assert.Empty(t, result.Rows)
	assert.NotNil(t, result.Rows)
	assert.Equal(t, "Total time: 0h 0m", result.TotalLabel)
}

func TestFormatResultsZeroDurationBucketStillProducesRow(t *testing.T) {
	acc := schema.Accumulator{
		"2024-01-01": {Key: "2024-01-01", RepresentativeDate: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), TotalDurationMs: 45000, Visits: 1},
	}
	result := FormatResults(acc, 45000, schema.DayGranularity)

	assert.False(t, result.NoResults)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "0h 0m", result.Rows[0].DurationLabel)
}

func TestFormatResultsSorted(t *testing.T) {
	acc := schema.Accumulator{
		"2024-03": {Key: "2024-03", RepresentativeDate: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), TotalDurationMs: 60000},
		"2023-12": {Key: "2023-12", RepresentativeDate: time.Date(2023, 12, 30, 0, 0, 0, 0, time.UTC), TotalDurationMs: 5400000},
		"2024-01": {Key: "2024-01", RepresentativeDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), TotalDurationMs: 3600000},
	}
	result := FormatResults(acc, 9060000, schema.MonthGranularity)

	require.Len(t, result.Rows, 3)
	assert.Equal(t, "December 2023", result.Rows[0].Label)
	assert.Equal(t, "1h 30m", result.Rows[0].DurationLabel)
	assert.Equal(t, "January 2024", result.Rows[1].Label)
	assert.Equal(t, "March 2024", result.Rows[2].Label)
	assert.Equal(t, "Total time: 2h 31m", result.TotalLabel)
	assert.Equal(t, schema.MonthGranularity, result.Granularity)
}

func TestFormatResultsWeekLabels(t *testing.T) {
	acc := schema.Accumulator{
		"week-2023-12-31": {Key: "week-2023-12-31", RepresentativeDate: time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC), TotalDurationMs: 60000},
	}
	result := FormatResults(acc, 60000, schema.WeekGranularity)

	require.Len(t, result.Rows, 1)
	assert.Equal(t, "Week of Dec 31 - Jan 6", result.Rows[0].Label)
	assert.Equal(t, "week-2023-12-31", result.Rows[0].Key)
}
