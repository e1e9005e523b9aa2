package models

// CacheStats aggregates what the store enumeration found on disk.
// Corrupt files count as expired: they will never produce a hit.
type CacheStats struct {
	Exists         bool   `json:"exists"`
	TotalFiles     int    `json:"total_files"`
	TotalSizeBytes int64  `json:"total_size_bytes"`
	ValidEntries   int    `json:"valid_entries"`
	ExpiredEntries int    `json:"expired_entries"`
	CacheDir       string `json:"cache_dir"`
}
