package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-reqcache/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(8, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_PutAndGet(t *testing.T) {
	store := newTestStore(t)

	rec := &models.CacheRecord{
		CreatedAt:  time.Now().Unix(),
		TTLSeconds: 60,
		Payload:    []byte("payload"),
	}
	require.NoError(t, store.Put("key", rec))

	got, found := store.Get("key")
	require.True(t, found)
	assert.Equal(t, rec.CreatedAt, got.CreatedAt)
	assert.Equal(t, rec.Payload, got.Payload)
}

func TestStore_Get_NotFound(t *testing.T) {
	store := newTestStore(t)

	rec, found := store.Get("missing")
	assert.False(t, found)
	assert.Nil(t, rec)
}

func TestStore_DeleteAll(t *testing.T) {
	store := newTestStore(t)

	rec := &models.CacheRecord{CreatedAt: time.Now().Unix(), TTLSeconds: 60}
	require.NoError(t, store.Put("a", rec))
	require.NoError(t, store.Put("b", rec))

	assert.Equal(t, 2, store.DeleteAll())

	_, found := store.Get("a")
	assert.False(t, found)
}

func TestStore_Keys(t *testing.T) {
	store := newTestStore(t)

	rec := &models.CacheRecord{CreatedAt: time.Now().Unix(), TTLSeconds: 60}
	require.NoError(t, store.Put("one", rec))
	require.NoError(t, store.Put("two", rec))

	assert.ElementsMatch(t, []string{"one", "two"}, store.Keys())
}

func TestStore_Stats(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()

	require.NoError(t, store.Put("fresh", &models.CacheRecord{CreatedAt: now.Unix(), TTLSeconds: 3600}))
	require.NoError(t, store.Put("stale", &models.CacheRecord{CreatedAt: now.Add(-2 * time.Hour).Unix(), TTLSeconds: 60}))

	stats := store.Stats(now)
	assert.True(t, stats.Exists)
	assert.Equal(t, 2, stats.TotalFiles)
	assert.Equal(t, 1, stats.ValidEntries)
	assert.Equal(t, 1, stats.ExpiredEntries)
	assert.Empty(t, stats.CacheDir)
}
