package algo

import "github.com/huangsam/timeline-detective/schema"

// IsWithinRadius reports whether the location text lies within radiusMeters
// of center. The boundary is inclusive. A nil center, empty text or
// unparseable text is never inside.
func IsWithinRadius(locationText string, center *schema.GeoPoint, radiusMeters float64) bool {
	_, inside := DistanceFromCenter(locationText, center, radiusMeters)
	return inside
}

// DistanceFromCenter is IsWithinRadius that also returns the computed
// distance. The distance is negative when it could not be computed.
func DistanceFromCenter(locationText string, center *schema.GeoPoint, radiusMeters float64) (float64, bool) {
	if center == nil || locationText == "" {
		return -1, false
	}
	point, ok := ParseCoordinatePair(locationText)
	if !ok {
		return -1, false
	}
	d := HaversineDistanceMeters(point.Lat, point.Lng, center.Lat, center.Lng)
	return d, d <= radiusMeters
}
