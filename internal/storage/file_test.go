package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kadhiravan2002/AuraX/internal"
)

func ptr(v float64) *float64 { return &v }

func record(userID, date string, mood float64) *internal.HealthRecord {
	return &internal.HealthRecord{UserID: userID, Date: date, Mood: ptr(mood)}
}

func openStore(t *testing.T, path string) *FileRecordStore {
	t.Helper()
	store, err := NewFileRecordStore(path, internal.NopLogger{})
	require.NoError(t, err)
	return store
}

func TestFileStoreUpsertAndGet(t *testing.T) {
	ctx := context.Background()
	store := openStore(t, filepath.Join(t.TempDir(), "records.json"))
	defer store.Close()

	require.NoError(t, store.Upsert(ctx, record("u1", "2024-01-01", 5)))
	require.NoError(t, store.Upsert(ctx, record("u1", "2024-01-01", 8)))

	got, err := store.GetByUserDate(ctx, "u1", "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, 8.0, *got.Mood)
	assert.False(t, got.CreatedAt.IsZero())

	_, err = store.GetByUserDate(ctx, "u1", "2024-01-02")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreInsertRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	store := openStore(t, filepath.Join(t.TempDir(), "records.json"))
	defer store.Close()

	require.NoError(t, store.Insert(ctx, record("u1", "2024-01-01", 5)))
	assert.ErrorIs(t, store.Insert(ctx, record("u1", "2024-01-01", 9)), ErrDuplicate)
	// Same date under a different user is fine.
	assert.NoError(t, store.Insert(ctx, record("u2", "2024-01-01", 9)))

	got, err := store.GetByUserDate(ctx, "u1", "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, 5.0, *got.Mood)
}

func TestFileStoreListByUserSortedNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := openStore(t, filepath.Join(t.TempDir(), "records.json"))
	defer store.Close()

	for _, d := range []string{"2024-01-02", "2024-01-05", "2024-01-01"} {
		require.NoError(t, store.Upsert(ctx, record("u1", d, 5)))
	}
	require.NoError(t, store.Upsert(ctx, record("other", "2024-01-03", 5)))

	records, err := store.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "2024-01-05", records[0].Date)
	assert.Equal(t, "2024-01-02", records[1].Date)
	assert.Equal(t, "2024-01-01", records[2].Date)

	empty, err := store.ListByUser(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestFileStoreDeleteWhere(t *testing.T) {
	ctx := context.Background()
	store := openStore(t, filepath.Join(t.TempDir(), "records.json"))
	defer store.Close()

	for _, d := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		require.NoError(t, store.Upsert(ctx, record("u1", d, 5)))
	}

	require.NoError(t, store.DeleteWhere(ctx, "u1", []string{"2024-01-01", "2024-01-03", "2024-01-09"}))

	records, err := store.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2024-01-02", records[0].Date)

	// Unknown user is a no-op, not an error.
	assert.NoError(t, store.DeleteWhere(ctx, "nobody", []string{"2024-01-01"}))
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "records.json")

	store := openStore(t, path)
	require.NoError(t, store.Upsert(ctx, record("u1", "2024-01-01", 7)))
	require.NoError(t, store.Upsert(ctx, record("u2", "2024-01-02", 4)))
	require.NoError(t, store.Close())

	reopened := openStore(t, path)
	defer reopened.Close()

	got, err := reopened.GetByUserDate(ctx, "u1", "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, 7.0, *got.Mood)
	records, err := reopened.ListByUser(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestFileMappingStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "mappings.json")
	store := NewFileMappingStore(path, internal.NopLogger{})

	// Missing file reads as empty, not as an error.
	loaded, err := store.LoadMappings(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)

	mappings := []internal.SavedMapping{
		{ID: "m1", Name: "fitbit", Mapping: internal.ColumnMapping{internal.FieldDate: "Date"}, Headers: []string{"Date"}},
		{ID: "m2", Name: "garmin", Mapping: internal.ColumnMapping{internal.FieldMood: "Mood"}, Headers: []string{"Mood"}},
	}
	require.NoError(t, store.StoreMappings(ctx, mappings))

	loaded, err = store.LoadMappings(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "fitbit", loaded[0].Name)
	assert.Equal(t, "Mood", loaded[1].Mapping[internal.FieldMood])
}
