package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheRecord_Valid(t *testing.T) {
	now := time.Unix(1_000_000, 0)

	tests := []struct {
		name   string
		record CacheRecord
		want   bool
	}{
		{
			name:   "fresh record within ttl",
			record: CacheRecord{CreatedAt: now.Unix() - 100, TTLSeconds: 3600},
			want:   true,
		},
		{
			name:   "record exactly at ttl boundary",
			record: CacheRecord{CreatedAt: now.Unix() - 3600, TTLSeconds: 3600},
			want:   true,
		},
		{
			name:   "record one second past ttl",
			record: CacheRecord{CreatedAt: now.Unix() - 3601, TTLSeconds: 3600},
			want:   false,
		},
		{
			name:   "permanent record from the distant past",
			record: CacheRecord{CreatedAt: 1, TTLSeconds: TTLPermanent},
			want:   true,
		},
		{
			name:   "zero ttl behaves like any tiny ttl",
			record: CacheRecord{CreatedAt: now.Unix(), TTLSeconds: 0},
			want:   true,
		},
		{
			name:   "zero ttl expired one second later",
			record: CacheRecord{CreatedAt: now.Unix() - 1, TTLSeconds: 0},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.record.Valid(now))
		})
	}
}
