package schema

import (
	"bytes"
	"encoding/json"
)

// Timeline is a decoded location-history export.
type Timeline struct {
	Segments []Segment `json:"semanticSegments" yaml:"semanticSegments"`
}

// Segment is one record of the export. Kind is decided once at decode time
// from which of visit, activity or timelinePath is populated.
type Segment struct {
	Kind      SegmentKind `json:"kind" yaml:"kind"`
	StartTime string      `json:"startTime" yaml:"startTime"`
	EndTime   string      `json:"endTime" yaml:"endTime"`
	Visit     *Visit      `json:"visit,omitempty" yaml:"visit,omitempty"`
	Activity  *Activity   `json:"activity,omitempty" yaml:"activity,omitempty"`
	Path      []PathPoint `json:"timelinePath" yaml:"timelinePath,omitempty"`
}

// Visit is a stay at a place.
type Visit struct {
	HierarchyLevel int             `json:"hierarchyLevel,omitempty" yaml:"hierarchyLevel,omitempty"`
	Probability    float64         `json:"probability,omitempty" yaml:"probability,omitempty"`
	TopCandidate   *PlaceCandidate `json:"topCandidate,omitempty" yaml:"topCandidate,omitempty"`
}

// PlaceCandidate is the most likely place for a visit.
type PlaceCandidate struct {
	PlaceID       string         `json:"placeId,omitempty" yaml:"placeId,omitempty"`
	SemanticType  string         `json:"semanticType,omitempty" yaml:"semanticType,omitempty"`
	Probability   float64        `json:"probability,omitempty" yaml:"probability,omitempty"`
	PlaceLocation *PlaceLocation `json:"placeLocation,omitempty" yaml:"placeLocation,omitempty"`
}

// PlaceLocation holds a "<lat>°, <lng>°" coordinate string. Exports carry it
// either as a bare string or as an object with a latLng field.
type PlaceLocation struct {
	LatLng string `json:"latLng" yaml:"latLng"`
}

// UnmarshalJSON accepts both location shapes and never fails; an unusable
// value leaves LatLng empty so the visit is skipped later.
func (p *PlaceLocation) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		p.LatLng = text
		return nil
	}
	var obj struct {
		LatLng string `json:"latLng"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		p.LatLng = obj.LatLng
	}
	return nil
}

// Activity is movement between two points.
type Activity struct {
	Start          *PlaceLocation     `json:"start,omitempty" yaml:"start,omitempty"`
	End            *PlaceLocation     `json:"end,omitempty" yaml:"end,omitempty"`
	DistanceMeters float64            `json:"distanceMeters,omitempty" yaml:"distanceMeters,omitempty"`
	TopCandidate   *ActivityCandidate `json:"topCandidate,omitempty" yaml:"topCandidate,omitempty"`
}

// ActivityCandidate is the most likely mode of movement.
type ActivityCandidate struct {
	Type        string  `json:"type,omitempty" yaml:"type,omitempty"`
	Probability float64 `json:"probability,omitempty" yaml:"probability,omitempty"`
}

// PathPoint is a single sampled point of a timeline path.
type PathPoint struct {
	Point string `json:"point,omitempty" yaml:"point,omitempty"`
	Time  string `json:"time,omitempty" yaml:"time,omitempty"`
}

// UnmarshalJSON decodes a segment leniently. Elements that are not objects,
// or whose fields have unexpected types, decode as UnknownKind or with the
// offending fields left empty instead of failing the whole export.
func (s *Segment) UnmarshalJSON(data []byte) error {
	*s = Segment{Kind: UnknownKind}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return nil
	}

	_ = json.Unmarshal(fields["startTime"], &s.StartTime)
	_ = json.Unmarshal(fields["endTime"], &s.EndTime)

	switch {
	case present(fields, "visit"):
		s.Kind = VisitKind
		s.Visit = &Visit{}
		_ = json.Unmarshal(fields["visit"], s.Visit)
	case present(fields, "activity"):
		s.Kind = ActivityKind
		s.Activity = &Activity{}
		_ = json.Unmarshal(fields["activity"], s.Activity)
	case present(fields, "timelinePath"):
		s.Kind = PathKind
		s.Path = []PathPoint{}
		_ = json.Unmarshal(fields["timelinePath"], &s.Path)
	}
	return nil
}

// Location returns the visit's place coordinate text, or false when the
// segment carries none.
func (s *Segment) Location() (string, bool) {
	if s.Kind != VisitKind || s.Visit == nil || s.Visit.TopCandidate == nil || s.Visit.TopCandidate.PlaceLocation == nil {
		return "", false
	}
	return s.Visit.TopCandidate.PlaceLocation.LatLng, true
}

// present reports whether key exists and is not JSON null.
func present(fields map[string]json.RawMessage, key string) bool {
	raw, ok := fields[key]
	if !ok {
		return false
	}
	return !bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
