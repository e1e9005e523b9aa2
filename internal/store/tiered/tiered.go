// Package tiered composes record stores ordered fastest-first, with the
// last tier acting as the durable source of truth.
package tiered

import (
	"time"

	"go.uber.org/zap"

	"go-reqcache/internal/interfaces"
	"go-reqcache/internal/models"
)

// Ensure Store implements interfaces.Store
var _ interfaces.Store = (*Store)(nil)

// Store tries each tier in order on reads and writes through all tiers.
// Admin operations (Keys, Stats) reflect only the durable tier, so
// counters always describe what is on disk.
type Store struct {
	tiers   []interfaces.Store
	promote bool
	logger  *zap.Logger
}

// New creates a tiered store. When promote is set, a hit in a slower
// tier is copied into the tiers in front of it.
func New(tiers []interfaces.Store, promote bool, logger *zap.Logger) *Store {
	return &Store{
		tiers:   tiers,
		promote: promote,
		logger:  logger,
	}
}

// Get returns the record from the first tier that has it.
func (s *Store) Get(key string) (*models.CacheRecord, bool) {
	for i, tier := range s.tiers {
		rec, found := tier.Get(key)
		if !found {
			continue
		}
		if s.promote && i > 0 {
			for _, front := range s.tiers[:i] {
				if err := front.Put(key, rec); err != nil {
					s.logger.Debug("Failed to promote cache record", zap.String("key", key), zap.Error(err))
				}
			}
		}
		return rec, true
	}
	return nil, false
}

// Put writes the record through every tier. The durable tier decides
// whether the write succeeded; faster tiers are best-effort.
func (s *Store) Put(key string, rec *models.CacheRecord) error {
	var durableErr error
	for i, tier := range s.tiers {
		err := tier.Put(key, rec)
		if err == nil {
			continue
		}
		if i == len(s.tiers)-1 {
			durableErr = err
		} else {
			s.logger.Debug("Failed to write cache record to fast tier", zap.String("key", key), zap.Error(err))
		}
	}
	return durableErr
}

// DeleteAll purges every tier and reports the durable tier's count.
func (s *Store) DeleteAll() int {
	count := 0
	for i, tier := range s.tiers {
		n := tier.DeleteAll()
		if i == len(s.tiers)-1 {
			count = n
		}
	}
	return count
}

// Keys lists keys from the durable tier.
func (s *Store) Keys() []string {
	if len(s.tiers) == 0 {
		return nil
	}
	return s.tiers[len(s.tiers)-1].Keys()
}

// Stats reports the durable tier's view.
func (s *Store) Stats(now time.Time) models.CacheStats {
	if len(s.tiers) == 0 {
		return models.CacheStats{}
	}
	return s.tiers[len(s.tiers)-1].Stats(now)
}
