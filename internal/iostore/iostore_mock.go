package iostore

import (
	"context"

	"github.com/huangsam/timeline-detective/internal/contract"
	"github.com/huangsam/timeline-detective/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetSegmentStore implements the StoreManager interface.
func (m *MockStoreManager) GetSegmentStore() contract.SegmentStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.SegmentStore)
	return store
}

// MockSegmentStore is a mock implementation of SegmentStore for testing.
type MockSegmentStore struct {
	mock.Mock
}

var _ contract.SegmentStore = &MockSegmentStore{} // Compile-time check

// ImportTimeline implements the SegmentStore interface.
func (m *MockSegmentStore) ImportTimeline(ctx context.Context, source string, tl *schema.Timeline) (int64, error) {
	args := m.Called(ctx, source, tl)
	return args.Get(0).(int64), args.Error(1)
}

// LoadTimeline implements the SegmentStore interface.
func (m *MockSegmentStore) LoadTimeline(ctx context.Context) (*schema.Timeline, schema.ImportRecord, error) {
	args := m.Called(ctx)
	tl, _ := args.Get(0).(*schema.Timeline)
	return tl, args.Get(1).(schema.ImportRecord), args.Error(2)
}

// AllSegments implements the SegmentStore interface.
func (m *MockSegmentStore) AllSegments(ctx context.Context) ([]schema.SegmentRecord, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]schema.SegmentRecord)
	return records, args.Error(1)
}

// GetStatus implements the SegmentStore interface.
func (m *MockSegmentStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the SegmentStore interface.
func (m *MockSegmentStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
