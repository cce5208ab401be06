package algo

import (
	"math"
	"testing"

	"github.com/huangsam/timeline-detective/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversineDistanceMeters(t *testing.T) {
	t.Run("identical points", func(t *testing.T) {
		assert.Zero(t, HaversineDistanceMeters(41.0082, 28.9784, 41.0082, 28.9784))
	})

	t.Run("symmetric", func(t *testing.T) {
		ab := HaversineDistanceMeters(41.0082, 28.9784, 40.7128, -74.0060)
		ba := HaversineDistanceMeters(40.7128, -74.0060, 41.0082, 28.9784)
		assert.InDelta(t, ab, ba, 1e-6)
	})

	t.Run("one degree of latitude", func(t *testing.T) {
		expected := EarthRadiusMeters * math.Pi / 180
		assert.InDelta(t, expected, HaversineDistanceMeters(0, 0, 1, 0), 0.01)
	})

	t.Run("monotonic in separation", func(t *testing.T) {
		prev := 0.0
		for _, lat := range []float64{0.001, 0.01, 0.1, 1, 10, 90} {
			d := HaversineDistanceMeters(0, 0, lat, 0)
			assert.Greater(t, d, prev)
			prev = d
		}
	})
}

func TestParseCoordinatePair(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected schema.GeoPoint
		ok       bool
	}{
		{"degree glyphs", "41.0082°, 28.9784°", schema.GeoPoint{Lat: 41.0082, Lng: 28.9784}, true},
		{"no glyphs", "41.0082,28.9784", schema.GeoPoint{Lat: 41.0082, Lng: 28.9784}, true},
		{"negative values", " -33.8688° , -151.2093° ", schema.GeoPoint{Lat: -33.8688, Lng: -151.2093}, true},
		{"empty", "", schema.GeoPoint{}, false},
		{"garbage", "abc", schema.GeoPoint{}, false},
		{"single number", "41.0082°", schema.GeoPoint{}, false},
		{"three parts", "1, 2, 3", schema.GeoPoint{}, false},
		{"second part garbage", "41.0082°, north", schema.GeoPoint{}, false},
		{"NaN", "NaN, 1", schema.GeoPoint{}, false},
		{"infinity", "1, Inf", schema.GeoPoint{}, false},
		{"spelled infinity", "Infinity, 1", schema.GeoPoint{}, false},
		{"hemisphere suffix", "41.0082 N, 28.9784 E", schema.GeoPoint{Lat: 41.0082, Lng: 28.9784}, true},
		{"hex reads leading zero", "0x1p4, 2", schema.GeoPoint{Lat: 0, Lng: 2}, true},
		{"exponent", "4.1e1, -2.5E-1", schema.GeoPoint{Lat: 41, Lng: -0.25}, true},
		{"leading dot", ".5, 1.", schema.GeoPoint{Lat: 0.5, Lng: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			point, ok := ParseCoordinatePair(tt.input)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, point)
		})
	}
}
