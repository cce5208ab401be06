// Package timeline loads and validates location-history exports.
package timeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/timeline-detective/schema"
)

// segmentsField is the required top-level array of an export.
const segmentsField = "semanticSegments"

// CheckFileType accepts a file when its name ends in .json or its content
// type is application/json.
func CheckFileType(name, contentType string) error {
	if strings.EqualFold(filepath.Ext(name), ".json") {
		return nil
	}
	if strings.HasPrefix(strings.ToLower(contentType), "application/json") {
		return nil
	}
	return newLoadError(StatusWrongFileType, nil)
}

// LoadFile reads and decodes the export at path.
func LoadFile(ctx context.Context, path string) (*schema.Timeline, error) {
	if path == "" {
		return nil, newLoadError(StatusNoFile, nil)
	}
	if err := CheckFileType(path, ""); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, newLoadError(StatusReadError, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newLoadError(StatusReadError, err)
	}
	return Decode(data)
}

// Load reads an export from r. The name and content type are checked the
// same way LoadFile checks the path.
func Load(ctx context.Context, r io.Reader, name, contentType string) (*schema.Timeline, error) {
	if r == nil {
		return nil, newLoadError(StatusNoFile, nil)
	}
	if err := CheckFileType(name, contentType); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, newLoadError(StatusReadError, err)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, newLoadError(StatusReadError, err)
	}
	return Decode(data)
}

// Decode parses export bytes. Invalid JSON is a parse error; valid JSON
// without a top-level semanticSegments array is rejected as a whole.
func Decode(data []byte) (*schema.Timeline, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, newLoadError(StatusMissingSegments, err)
		}
		return nil, newLoadError(StatusParseError, err)
	}

	raw, ok := doc[segmentsField]
	if !ok || !isArray(raw) {
		return nil, newLoadError(StatusMissingSegments, nil)
	}

	var segments []schema.Segment
	if err := json.Unmarshal(raw, &segments); err != nil {
		return nil, newLoadError(StatusParseError, err)
	}
	return &schema.Timeline{Segments: segments}, nil
}

// Summarize counts segments per kind.
func Summarize(tl *schema.Timeline) schema.TimelineSummary {
	var summary schema.TimelineSummary
	if tl == nil {
		return summary
	}
	summary.Segments = len(tl.Segments)
	for _, seg := range tl.Segments {
		switch seg.Kind {
		case schema.VisitKind:
			summary.Visits++
		case schema.ActivityKind:
			summary.Activities++
		case schema.PathKind:
			summary.Paths++
		default:
			summary.Unknown++
		}
	}
	return summary
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
