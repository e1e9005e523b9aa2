package models

import "time"

// TTL sentinel values understood by the cache layer.
const (
	// TTLDisabled bypasses the cache entirely: nothing is read or written.
	TTLDisabled = 0
	// TTLPermanent marks a record that never expires.
	TTLPermanent = -1
)

// CacheRecord is the unit of storage: one record per cache key, written
// wholesale and never patched in place.
type CacheRecord struct {
	// CreatedAt is the wall-clock write time in epoch seconds.
	CreatedAt int64 `json:"created_at"`

	// TTLSeconds is the validity window. TTLPermanent (-1) disables the
	// expiry check for this record.
	TTLSeconds int `json:"ttl_seconds"`

	// Payload holds the serialized response bytes. The store treats it as
	// opaque; encoding and decoding belong to the caller.
	Payload []byte `json:"payload"`
}

// Valid reports whether the record is still usable at the given instant.
// Permanent records are always valid; anything else expires once
// now - CreatedAt exceeds TTLSeconds.
func (r *CacheRecord) Valid(now time.Time) bool {
	if r.TTLSeconds == TTLPermanent {
		return true
	}
	return now.Unix()-r.CreatedAt <= int64(r.TTLSeconds)
}
