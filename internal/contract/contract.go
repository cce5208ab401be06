// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"errors"

	"github.com/huangsam/timeline-detective/schema"
)

// ErrNoImport is returned when the segment store holds no timeline.
var ErrNoImport = errors.New("no timeline has been imported")

// StoreManager defines the interface for managing the segment store.
// This allows the store layer to be mocked for testing.
type StoreManager interface {
	GetSegmentStore() SegmentStore
}

// SegmentStore persists an imported export so later runs can analyze it
// without the original file.
type SegmentStore interface {
	// ImportTimeline replaces the stored export and returns the new import ID
	ImportTimeline(ctx context.Context, source string, tl *schema.Timeline) (int64, error)

	// LoadTimeline rebuilds the stored export. It returns ErrNoImport when empty.
	LoadTimeline(ctx context.Context) (*schema.Timeline, schema.ImportRecord, error)

	// AllSegments returns the raw stored rows in export order
	AllSegments(ctx context.Context) ([]schema.SegmentRecord, error)

	// GetStatus returns status information about the store
	GetStatus() (schema.StoreStatus, error)

	// Close closes the underlying connection
	Close() error
}
