package schema

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentUnmarshalKinds(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected SegmentKind
	}{
		{"visit", `{"startTime":"a","visit":{"topCandidate":{"placeLocation":"1°, 2°"}}}`, VisitKind},
		{"activity", `{"activity":{"distanceMeters":12.5}}`, ActivityKind},
		{"path", `{"timelinePath":[{"point":"1°, 2°","time":"t"}]}`, PathKind},
		{"empty path still counts", `{"timelinePath":[]}`, PathKind},
		{"null visit is absent", `{"visit":null,"activity":{}}`, ActivityKind},
		{"visit wins over activity", `{"visit":{},"activity":{}}`, VisitKind},
		{"nothing populated", `{"startTime":"a","endTime":"b"}`, UnknownKind},
		{"not an object", `42`, UnknownKind},
		{"null element", `null`, UnknownKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seg Segment
			require.NoError(t, json.Unmarshal([]byte(tt.input), &seg))
			assert.Equal(t, tt.expected, seg.Kind)
		})
	}
}

func TestSegmentUnmarshalLenientFields(t *testing.T) {
	input := `{"startTime": 5, "endTime": "2024-01-01T11:00:00Z", "visit": {"probability": "high", "topCandidate": {"placeLocation": "41.0082°, 28.9784°"}}}`

	var seg Segment
	require.NoError(t, json.Unmarshal([]byte(input), &seg))

	assert.Equal(t, VisitKind, seg.Kind)
	assert.Empty(t, seg.StartTime, "non-string startTime should be left empty")
	assert.Equal(t, "2024-01-01T11:00:00Z", seg.EndTime)

	loc, ok := seg.Location()
	require.True(t, ok)
	assert.Equal(t, "41.0082°, 28.9784°", loc)
}

func TestPlaceLocationShapes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{"bare string", `{"visit":{"topCandidate":{"placeLocation":"1.5°, 2.5°"}}}`, "1.5°, 2.5°", true},
		{"latLng object", `{"visit":{"topCandidate":{"placeLocation":{"latLng":"1.5°, 2.5°"}}}}`, "1.5°, 2.5°", true},
		{"unexpected type", `{"visit":{"topCandidate":{"placeLocation":17}}}`, "", true},
		{"missing location", `{"visit":{"topCandidate":{}}}`, "", false},
		{"null location", `{"visit":{"topCandidate":{"placeLocation":null}}}`, "", false},
		{"missing candidate", `{"visit":{}}`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seg Segment
			require.NoError(t, json.Unmarshal([]byte(tt.input), &seg))
			loc, ok := seg.Location()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, loc)
		})
	}
}

func TestSegmentLocationNonVisit(t *testing.T) {
	seg := Segment{Kind: ActivityKind, Activity: &Activity{}}
	_, ok := seg.Location()
	assert.False(t, ok)
}

func TestSegmentRoundTripKeepsKind(t *testing.T) {
	segments := []Segment{
		{Kind: VisitKind, StartTime: "s", EndTime: "e", Visit: &Visit{TopCandidate: &PlaceCandidate{PlaceLocation: &PlaceLocation{LatLng: "1°, 2°"}}}},
		{Kind: ActivityKind, Activity: &Activity{DistanceMeters: 3}},
		{Kind: PathKind, Path: []PathPoint{}},
	}

	for _, seg := range segments {
		data, err := json.Marshal(seg)
		require.NoError(t, err)

		var decoded Segment
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, seg.Kind, decoded.Kind)
	}
}

func TestTimeWindowContains(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	assert.True(t, TimeWindow{}.Contains(start), "open window contains everything")
	assert.True(t, TimeWindow{Start: start, End: end}.Contains(start), "start bound is inclusive")
	assert.True(t, TimeWindow{Start: start, End: end}.Contains(end), "end bound is inclusive")
	assert.False(t, TimeWindow{Start: start}.Contains(start.Add(-time.Second)))
	assert.False(t, TimeWindow{End: end}.Contains(end.Add(time.Second)))
}

func TestAnalysisStatsSkip(t *testing.T) {
	var stats AnalysisStats
	stats.Skip(SkipOutsideRadius)
	stats.Skip(SkipOutsideRadius)
	stats.Skip(SkipBadDuration)

	assert.Equal(t, 2, stats.Skipped[SkipOutsideRadius])
	assert.Equal(t, 1, stats.Skipped[SkipBadDuration])
}

func TestTimelineSummaryMessage(t *testing.T) {
	summary := TimelineSummary{Visits: 3, Activities: 2, Paths: 1}
	assert.Equal(t, "File loaded successfully: 3 visits, 2 activities, 1 path segments", summary.Message())
}

func TestGeoPointString(t *testing.T) {
	assert.Equal(t, "41.008200°, 28.978400°", GeoPoint{Lat: 41.0082, Lng: 28.9784}.String())
}
