// Package memory implements an in-process hot tier for cache records on
// top of BigCache. It is an accelerator in front of the durable file
// store, never the source of truth.
package memory

import (
	"context"
	"encoding/json"
	"time"

	"github.com/allegro/bigcache/v3"
	"go.uber.org/zap"

	"go-reqcache/internal/interfaces"
	"go-reqcache/internal/metrics"
	"go-reqcache/internal/models"
)

// Ensure Store implements interfaces.Store
var _ interfaces.Store = (*Store)(nil)

// Store keeps serialized records in a BigCache instance.
type Store struct {
	cache  *bigcache.BigCache
	logger *zap.Logger
}

// New creates a memory store capped at sizeMB megabytes. BigCache's own
// eviction window is generous; record-level TTL is enforced by the
// caller, the same as for the file store.
func New(sizeMB int, logger *zap.Logger) (*Store, error) {
	config := bigcache.DefaultConfig(10 * time.Minute)
	config.HardMaxCacheSize = sizeMB
	config.Verbose = false
	config.MaxEntrySize = 1024 * 1024

	cache, err := bigcache.New(context.Background(), config)
	if err != nil {
		return nil, err
	}

	return &Store{
		cache:  cache,
		logger: logger,
	}, nil
}

// Put stores the serialized record under key.
func (s *Store) Put(key string, rec *models.CacheRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		metrics.RecordStoreError("memory", "encode")
		return err
	}

	if err := s.cache.Set(key, data); err != nil {
		s.logger.Warn("Failed to set memory cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordStoreError("memory", "write")
		return err
	}

	return nil
}

// Get returns the record for key. Undecodable entries are dropped and
// reported as a miss.
func (s *Store) Get(key string) (*models.CacheRecord, bool) {
	data, err := s.cache.Get(key)
	if err != nil {
		return nil, false
	}

	var rec models.CacheRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		s.logger.Warn("Corrupt memory cache entry dropped", zap.String("key", key), zap.Error(err))
		metrics.RecordStoreError("memory", "decode")
		_ = s.cache.Delete(key)
		return nil, false
	}

	return &rec, true
}

// DeleteAll resets the cache and returns how many entries it held.
func (s *Store) DeleteAll() int {
	count := s.cache.Len()
	if err := s.cache.Reset(); err != nil {
		s.logger.Warn("Failed to reset memory cache", zap.Error(err))
		return 0
	}
	return count
}

// Keys lists all resident keys.
func (s *Store) Keys() []string {
	keys := make([]string, 0, s.cache.Len())
	it := s.cache.Iterator()
	for it.SetNext() {
		entry, err := it.Value()
		if err != nil {
			continue
		}
		keys = append(keys, entry.Key())
	}
	return keys
}

// Stats reports resident entries. Exists is always true for a live
// memory tier; CacheDir stays empty since nothing is on disk.
func (s *Store) Stats(now time.Time) models.CacheStats {
	stats := models.CacheStats{Exists: true}

	it := s.cache.Iterator()
	for it.SetNext() {
		entry, err := it.Value()
		if err != nil {
			continue
		}
		stats.TotalFiles++
		stats.TotalSizeBytes += int64(len(entry.Value()))

		var rec models.CacheRecord
		if err := json.Unmarshal(entry.Value(), &rec); err != nil {
			stats.ExpiredEntries++
			continue
		}
		if rec.Valid(now) {
			stats.ValidEntries++
		} else {
			stats.ExpiredEntries++
		}
	}

	return stats
}

// Close releases the underlying BigCache resources.
func (s *Store) Close() error {
	return s.cache.Close()
}
