// Package file implements the durable record store: one JSON file per
// cache key under a root directory.
package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"go-reqcache/internal/interfaces"
	"go-reqcache/internal/metrics"
	"go-reqcache/internal/models"
)

// Ensure Store implements interfaces.Store
var _ interfaces.Store = (*Store)(nil)

// RecordExt is the filename extension of record files.
const RecordExt = ".cache"

// Store persists records as `{key}.cache` files. A single mutex
// serializes all file operations, so readers in this process never
// observe a half-written record. Cross-process coordination is out of
// scope; concurrent processes sharing a directory race last-writer-wins.
type Store struct {
	dir    string
	mu     sync.Mutex
	logger *zap.Logger
}

// New creates a file store rooted at dir. The directory is created
// lazily on first write, not here.
func New(dir string, logger *zap.Logger) *Store {
	return &Store{
		dir:    dir,
		logger: logger,
	}
}

// Put writes the record for key, replacing any existing file wholesale.
func (s *Store) Put(key string, rec *models.CacheRecord) error {
	defer metrics.TimeStoreOperation("put", "file")()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		metrics.RecordStoreError("file", "mkdir")
		return fmt.Errorf("create cache dir %s: %w", s.dir, err)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		metrics.RecordStoreError("file", "encode")
		return fmt.Errorf("encode cache record: %w", err)
	}

	if err := os.WriteFile(s.recordPath(key), data, 0o644); err != nil {
		metrics.RecordStoreError("file", "write")
		return fmt.Errorf("write cache record: %w", err)
	}

	return nil
}

// Get returns the record for key. Absent files, unreadable files and
// undecodable content all report a miss; a broken cache never blocks
// the request path.
func (s *Store) Get(key string) (*models.CacheRecord, bool) {
	defer metrics.TimeStoreOperation("get", "file")()

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.readRecord(s.recordPath(key))
}

// DeleteAll removes every record file and returns the number deleted.
// A missing root directory yields 0. Per-file removal failures are
// skipped so one stubborn file doesn't abort the purge.
func (s *Store) DeleteAll() int {
	defer metrics.TimeStoreOperation("delete_all", "file")()

	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, path := range s.recordFiles() {
		if err := os.Remove(path); err != nil {
			s.logger.Warn("Failed to delete cache record", zap.String("path", path), zap.Error(err))
			metrics.RecordStoreError("file", "delete")
			continue
		}
		count++
	}

	return count
}

// Keys lists the keys of all record files, expired ones included.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	files := s.recordFiles()
	keys := make([]string, 0, len(files))
	for _, path := range files {
		keys = append(keys, strings.TrimSuffix(filepath.Base(path), RecordExt))
	}
	return keys
}

// Stats enumerates record files and classifies each against now.
// Corrupt files count as expired: they can never produce a hit.
func (s *Store) Stats(now time.Time) models.CacheStats {
	defer metrics.TimeStoreOperation("stats", "file")()

	s.mu.Lock()
	defer s.mu.Unlock()

	stats := models.CacheStats{CacheDir: s.absDir()}

	if _, err := os.Stat(s.dir); err != nil {
		return stats
	}
	stats.Exists = true

	for _, path := range s.recordFiles() {
		stats.TotalFiles++

		info, err := os.Stat(path)
		if err == nil {
			stats.TotalSizeBytes += info.Size()
		}

		rec, ok := s.readRecord(path)
		if !ok {
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

// readRecord decodes one record file. Caller must hold the mutex.
func (s *Store) readRecord(path string) (*models.CacheRecord, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Debug("Failed to read cache record", zap.String("path", path), zap.Error(err))
			metrics.RecordStoreError("file", "read")
		}
		return nil, false
	}

	var rec models.CacheRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		s.logger.Debug("Corrupt cache record treated as miss", zap.String("path", path), zap.Error(err))
		metrics.RecordStoreError("file", "decode")
		return nil, false
	}

	// A decodable file without a write timestamp is still not a record.
	if rec.CreatedAt <= 0 {
		s.logger.Debug("Cache record missing required fields", zap.String("path", path))
		metrics.RecordStoreError("file", "decode")
		return nil, false
	}

	return &rec, true
}

func (s *Store) recordPath(key string) string {
	return filepath.Join(s.dir, key+RecordExt)
}

func (s *Store) recordFiles() []string {
	paths, err := filepath.Glob(filepath.Join(s.dir, "*"+RecordExt))
	if err != nil {
		return nil
	}
	return paths
}

func (s *Store) absDir() string {
	abs, err := filepath.Abs(s.dir)
	if err != nil {
		return s.dir
	}
	return abs
}
