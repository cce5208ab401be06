package timeline

import (
	"errors"
	"fmt"
)

// Status classifies why an export could not be loaded.
type Status string

// All load statuses.
const (
	StatusNoFile          Status = "no_file"
	StatusWrongFileType   Status = "wrong_file_type"
	StatusReadError       Status = "read_error"
	StatusParseError      Status = "parse_error"
	StatusMissingSegments Status = "missing_segments"
)

// LoadError is returned for every load failure so callers can surface the
// status instead of crashing.
type LoadError struct {
	Status Status
	Err    error
}

// Error implements the error interface with the user-facing status text.
func (e *LoadError) Error() string {
	switch e.Status {
	case StatusNoFile:
		return "No file selected"
	case StatusWrongFileType:
		return "Please select a JSON file"
	case StatusReadError:
		if e.Err != nil {
			return fmt.Sprintf("Error reading file: %v", e.Err)
		}
		return "Error reading file"
	case StatusParseError:
		return fmt.Sprintf("Error parsing JSON file: %v", e.Err)
	case StatusMissingSegments:
		return "Invalid timeline JSON: Missing semanticSegments array"
	default:
		return fmt.Sprintf("timeline load failed: %v", e.Err)
	}
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// StatusOf extracts the load status from err.
func StatusOf(err error) (Status, bool) {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Status, true
	}
	return "", false
}

func newLoadError(status Status, err error) *LoadError {
	return &LoadError{Status: status, Err: err}
}
