// Package algo has the geospatial and calendar primitives used by analysis.
package algo

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/golang/geo/s2"
	"github.com/huangsam/timeline-detective/schema"
)

// leadingNumber matches the decimal prefix of a coordinate part, so trailing
// text like " N" is ignored and "0x1p4" reads as 0.
var leadingNumber = regexp.MustCompile(`^[+-]?(?:Infinity|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)`)

// EarthRadiusMeters is the mean Earth radius used for great-circle distances.
const EarthRadiusMeters = 6371000.0

// HaversineDistanceMeters returns the great-circle distance between two points in meters.
func HaversineDistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// ParseCoordinatePair parses "<lat>°, <lng>°" into a point. Degree glyphs are
// optional and each part is read up to the end of its leading number. It
// returns false, not an error, when the text is empty or does not split into
// exactly two parts. It also returns false when a part has no finite leading number.
func ParseCoordinatePair(text string) (schema.GeoPoint, bool) {
	if text == "" {
		return schema.GeoPoint{}, false
	}
	parts := strings.Split(strings.ReplaceAll(text, "°", ""), ",")
	if len(parts) != 2 {
		return schema.GeoPoint{}, false
	}
	lat, ok := parseFinite(parts[0])
	if !ok {
		return schema.GeoPoint{}, false
	}
	lng, ok := parseFinite(parts[1])
	if !ok {
		return schema.GeoPoint{}, false
	}
	return schema.GeoPoint{Lat: lat, Lng: lng}, true
}

func parseFinite(s string) (float64, bool) {
	prefix := leadingNumber.FindString(strings.TrimSpace(s))
	if prefix == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
