package interfaces

import (
	"time"

	"go-reqcache/internal/models"
)

//go:generate mockgen -package=mock -source=store.go -destination=mock/store.go

// Store persists cache records keyed by fingerprint. Implementations are
// fail-open: a record that cannot be read back is a miss, never an error.
type Store interface {
	// Put writes the record for key, replacing any previous one.
	Put(key string, rec *models.CacheRecord) error

	// Get returns the record for key and whether one was found. Absent,
	// corrupt and undecodable records all report found=false.
	Get(key string) (*models.CacheRecord, bool)

	// DeleteAll removes every record and returns how many were deleted.
	// Per-record removal failures are skipped, not surfaced.
	DeleteAll() int

	// Keys lists the keys of all stored records, including expired ones.
	Keys() []string

	// Stats enumerates stored records and classifies them against now.
	Stats(now time.Time) models.CacheStats
}
