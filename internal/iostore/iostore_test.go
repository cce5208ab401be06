package iostore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/timeline-detective/internal/contract"
	"github.com/huangsam/timeline-detective/internal/timeline"
	"github.com/huangsam/timeline-detective/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const sampleExport = `{
  "semanticSegments": [
    {"startTime": "2024-01-01T09:00:00Z", "endTime": "2024-01-01T10:00:00Z", "visit": {"topCandidate": {"placeLocation": {"latLng": "41.0082°, 28.9784°"}}}},
    {"startTime": "2024-01-01T10:00:00Z", "endTime": "2024-01-01T10:30:00Z", "activity": {"distanceMeters": 1200}},
    {"startTime": "2024-01-01T10:30:00Z", "endTime": "2024-01-01T11:00:00Z", "timelinePath": [{"point": "41.01°, 28.97°", "time": "2024-01-01T10:31:00Z"}]},
    {"startTime": "2024-01-01T11:00:00Z", "endTime": "2024-01-01T12:00:00Z", "visit": {"topCandidate": {"placeLocation": "41.0090°, 28.9790°"}}},
    {"startTime": "2024-01-01T12:00:00Z"}
  ]
}`

func sampleTimeline(t *testing.T) *schema.Timeline {
	t.Helper()
	tl, err := timeline.Decode([]byte(sampleExport))
	require.NoError(t, err)
	return tl
}

func newSQLiteStore(t *testing.T) contract.SegmentStore {
	t.Helper()
	store, err := NewSegmentStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSegmentStoreEmpty(t *testing.T) {
	store := newSQLiteStore(t)

	_, _, err := store.LoadTimeline(context.Background())
	assert.ErrorIs(t, err, contract.ErrNoImport)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, "sqlite", status.Backend)
	assert.Zero(t, status.ImportID)
	assert.Zero(t, status.TotalSegments)
}

func TestSegmentStoreImportAndLoad(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)
	original := sampleTimeline(t)

	importID, err := store.ImportTimeline(ctx, "Timeline.json", original)
	require.NoError(t, err)
	assert.Positive(t, importID)

	loaded, record, err := store.LoadTimeline(ctx)
	require.NoError(t, err)
	assert.Equal(t, importID, record.ImportID)
	assert.Equal(t, "Timeline.json", record.Source)
	assert.Equal(t, 5, record.TotalSegments)
	assert.False(t, record.ImportedAt().IsZero())

	require.Len(t, loaded.Segments, len(original.Segments))
	for i := range original.Segments {
		assert.Equal(t, original.Segments[i].Kind, loaded.Segments[i].Kind)
		assert.Equal(t, original.Segments[i].StartTime, loaded.Segments[i].StartTime)
		assert.Equal(t, original.Segments[i].EndTime, loaded.Segments[i].EndTime)
	}

	loc, ok := loaded.Segments[0].Location()
	require.True(t, ok)
	assert.Equal(t, "41.0082°, 28.9784°", loc)

	assert.Equal(t, timeline.Summarize(original), timeline.Summarize(loaded))
}

func TestSegmentStoreImportReplaces(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	_, err := store.ImportTimeline(ctx, "first.json", sampleTimeline(t))
	require.NoError(t, err)

	second := &schema.Timeline{Segments: sampleTimeline(t).Segments[:2]}
	secondID, err := store.ImportTimeline(ctx, "second.json", second)
	require.NoError(t, err)

	_, record, err := store.LoadTimeline(ctx)
	require.NoError(t, err)
	assert.Equal(t, secondID, record.ImportID)
	assert.Equal(t, "second.json", record.Source)

	records, err := store.AllSegments(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(1), status.TableSizes[importsTable])
	assert.Equal(t, int64(2), status.TableSizes[segmentsTable])
}

func TestSegmentStoreAllSegmentsAndStatus(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	_, err := store.ImportTimeline(ctx, "Timeline.json", sampleTimeline(t))
	require.NoError(t, err)

	records, err := store.AllSegments(ctx)
	require.NoError(t, err)
	require.Len(t, records, 5)
	for i, rec := range records {
		assert.Equal(t, i, rec.Position)
	}
	assert.Equal(t, "visit", records[0].Kind)
	assert.True(t, records[0].PlaceLocation.Valid)
	assert.Equal(t, "41.0082°, 28.9784°", records[0].PlaceLocation.String)
	assert.False(t, records[1].PlaceLocation.Valid)
	assert.NotEmpty(t, records[2].Payload)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(5), status.TotalSegments)
	assert.Equal(t, "Timeline.json", status.Source)
	assert.Equal(t, map[string]int64{"visit": 2, "activity": 1, "path": 1, "unknown": 1}, status.SegmentsByKind)
}

func TestSegmentStoreReopenKeepsImport(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "store.db")

	store, err := NewSegmentStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	_, err = store.ImportTimeline(ctx, "Timeline.json", sampleTimeline(t))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := NewSegmentStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	tl, _, err := reopened.LoadTimeline(ctx)
	require.NoError(t, err)
	assert.Len(t, tl.Segments, 5)
}

func TestNoneBackendStore(t *testing.T) {
	ctx := context.Background()
	store, err := NewSegmentStore(schema.NoneBackend, "")
	require.NoError(t, err)

	_, err = store.ImportTimeline(ctx, "x.json", sampleTimeline(t))
	assert.Error(t, err)

	_, _, err = store.LoadTimeline(ctx)
	assert.ErrorIs(t, err, contract.ErrNoImport)

	records, err := store.AllSegments(ctx)
	assert.NoError(t, err)
	assert.Nil(t, records)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
	assert.NoError(t, store.Close())
}

func TestNewSegmentStoreUnsupported(t *testing.T) {
	_, err := NewSegmentStore(schema.DatabaseBackend("oracle"), "")
	assert.ErrorContains(t, err, "unsupported backend")
}

func TestMigrateStore(t *testing.T) {
	t.Run("none backend", func(t *testing.T) {
		err := MigrateStore(schema.NoneBackend, "", -1)
		assert.ErrorContains(t, err, "migrations are not supported for NoneBackend")
	})

	t.Run("sqlite up and down", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "migrate.db")

		require.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, -1))
		_, err := os.Stat(dbPath)
		assert.NoError(t, err)

		// Already at latest
		assert.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, -1))
		assert.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, 1))
		assert.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, 0))
		assert.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, 2))

		store, err := NewSegmentStore(schema.SQLiteBackend, dbPath)
		require.NoError(t, err)
		defer func() { _ = store.Close() }()
		_, err = store.ImportTimeline(context.Background(), "Timeline.json", sampleTimeline(t))
		assert.NoError(t, err)
	})
}

func TestSegmentColumnsHoldArbitraryText(t *testing.T) {
	// Export strings are stored verbatim, so no backend may cap their length.
	for _, dir := range []string{"sqlite", "mysql", "postgres"} {
		t.Run(dir, func(t *testing.T) {
			data, err := migrationsFS.ReadFile("migrations/" + dir + "/000002_create_timeline_segments.up.sql")
			require.NoError(t, err)
			ddl := strings.ToUpper(string(data))
			for _, column := range []string{"START_TIME", "END_TIME", "PLACE_LOCATION"} {
				assert.Regexp(t, column+`\s+TEXT\b`, ddl)
			}
		})
	}
}

func TestSegmentStoreKeepsLongStrings(t *testing.T) {
	store := newSQLiteStore(t)
	long := strings.Repeat("9", 300)
	tl := &schema.Timeline{Segments: []schema.Segment{{
		Kind:      schema.VisitKind,
		StartTime: long,
		EndTime:   long,
		Visit: &schema.Visit{TopCandidate: &schema.PlaceCandidate{
			PlaceLocation: &schema.PlaceLocation{LatLng: strings.Repeat("1°, 2° ", 40)},
		}},
	}}}

	_, err := store.ImportTimeline(context.Background(), "long.json", tl)
	require.NoError(t, err)

	loaded, _, err := store.LoadTimeline(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded.Segments, 1)
	assert.Equal(t, long, loaded.Segments[0].StartTime)
}

func TestClearStore(t *testing.T) {
	t.Run("sqlite removes file", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "clear.db")
		store, err := NewSegmentStore(schema.SQLiteBackend, dbPath)
		require.NoError(t, err)
		require.NoError(t, store.Close())

		require.NoError(t, ClearStore(schema.SQLiteBackend, dbPath, ""))
		_, err = os.Stat(dbPath)
		assert.True(t, os.IsNotExist(err))

		// Missing file is fine
		assert.NoError(t, ClearStore(schema.SQLiteBackend, dbPath, ""))
	})

	t.Run("sqlite needs path", func(t *testing.T) {
		assert.Error(t, ClearStore(schema.SQLiteBackend, "", ""))
	})

	t.Run("none backend", func(t *testing.T) {
		assert.NoError(t, ClearStore(schema.NoneBackend, "", ""))
	})

	t.Run("unsupported", func(t *testing.T) {
		assert.Error(t, ClearStore(schema.DatabaseBackend("oracle"), "", ""))
	})
}

func managerFor(store contract.SegmentStore) *MockStoreManager {
	mgr := &MockStoreManager{}
	mgr.On("GetSegmentStore").Return(store)
	return mgr
}

func TestExecuteStoreExport(t *testing.T) {
	ctx := context.Background()

	t.Run("requires output file", func(t *testing.T) {
		err := ExecuteStoreExport(ctx, &MockStoreManager{}, "")
		assert.ErrorContains(t, err, "--output-file")
	})

	t.Run("empty store", func(t *testing.T) {
		store := &MockSegmentStore{}
		store.On("GetStatus").Return(schema.StoreStatus{Backend: "sqlite", Connected: true}, nil)

		err := ExecuteStoreExport(ctx, managerFor(store), filepath.Join(t.TempDir(), "out"))
		assert.ErrorContains(t, err, "no imported segments")
		store.AssertNotCalled(t, "AllSegments", mock.Anything)
	})

	t.Run("status failure", func(t *testing.T) {
		store := &MockSegmentStore{}
		store.On("GetStatus").Return(schema.StoreStatus{}, errors.New("connection reset"))

		err := ExecuteStoreExport(ctx, managerFor(store), filepath.Join(t.TempDir(), "out"))
		assert.ErrorContains(t, err, "connection reset")
	})

	t.Run("uninitialized", func(t *testing.T) {
		mgr := &MockStoreManager{}
		mgr.On("GetSegmentStore").Return(nil)

		err := ExecuteStoreExport(ctx, mgr, filepath.Join(t.TempDir(), "out"))
		assert.ErrorContains(t, err, "not initialized")
	})

	t.Run("writes parquet", func(t *testing.T) {
		store := newSQLiteStore(t)
		_, err := store.ImportTimeline(ctx, "Timeline.json", sampleTimeline(t))
		require.NoError(t, err)

		out := filepath.Join(t.TempDir(), "export")
		require.NoError(t, ExecuteStoreExport(ctx, managerFor(store), out))

		info, err := os.Stat(out + ".segments.parquet")
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	})
}

func TestStoreManagerGetSegmentStore(t *testing.T) {
	mgr := &StoreManager{}
	assert.Nil(t, mgr.GetSegmentStore())

	store := newSQLiteStore(t)
	mgr.segments = store
	assert.Equal(t, store, mgr.GetSegmentStore())
}
