// Package reqcache is a transparent TTL-based caching layer in front of
// an HTTP client. Every outbound request is mapped to a deterministic
// fingerprint; a non-expired cached result for that fingerprint is
// returned without touching the network, otherwise the request is
// executed and its result persisted for future reuse.
//
// The ttl argument on every call is three-valued:
//
//   - TTLDisabled (0): bypass the cache entirely, never read or write
//   - TTLPermanent (-1): cache forever, no expiry check
//   - n > 0: cache for n seconds (TTLDefault is 86400)
//
// Records live as one file per key under the configured cache directory.
// A broken record is always treated as a miss, never as an error: the
// cache must not block the request path.
package reqcache
