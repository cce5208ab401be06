// Package iostore persists imported timelines so later runs can skip the export file.
package iostore

import (
	"sync"

	"github.com/huangsam/timeline-detective/internal/contract"
)

// StoreManager holds the active SegmentStore.
type StoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	segments     contract.SegmentStore
}

var _ contract.StoreManager = &StoreManager{} // Compile-time check

// GetSegmentStore returns the SegmentStore, or nil before InitStores.
func (mgr *StoreManager) GetSegmentStore() contract.SegmentStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.segments
}
