package slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"patio-slots/internal/models"
	"patio-slots/internal/store"

	"go.uber.org/zap"
)

// DefaultKeyPrefix namespaces slot lists in the KV store.
const DefaultKeyPrefix = "slots_"

// Store persists whole slot lists per yard.
type Store struct {
	kv     store.KV
	prefix string
	logger *zap.Logger
}

// NewStore creates a slot store over kv. An empty prefix falls back to DefaultKeyPrefix.
func NewStore(kv store.KV, prefix string, logger *zap.Logger) *Store {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Store{
		kv:     kv,
		prefix: prefix,
		logger: logger,
	}
}

// Key returns the KV key holding yardID's slot list.
func (s *Store) Key(yardID string) string {
	return s.prefix + yardID
}

// LoadSlots returns the persisted list for yardID. The boolean is false when nothing
// usable is stored: a miss, an unreachable backend and a corrupt payload all read as absent.
func (s *Store) LoadSlots(ctx context.Context, yardID string) ([]models.Slot, bool) {
	key := s.Key(yardID)

	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrMiss) {
			s.logger.Error("Failed to load slots",
				zap.String("yard_id", yardID),
				zap.String("key", key),
				zap.Error(err),
			)
		}
		return nil, false
	}

	var list []models.Slot
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		s.logger.Warn("Discarding corrupt slot payload",
			zap.String("yard_id", yardID),
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, false
	}
	if list == nil {
		// "null" decodes without error but is not a list.
		s.logger.Warn("Discarding null slot payload", zap.String("key", key))
		return nil, false
	}

	for i := range list {
		list[i] = list[i].Normalized()
	}
	return list, true
}

// SaveSlots replaces the persisted list for yardID with list.
// Failures are returned as is; nothing is retried.
func (s *Store) SaveSlots(ctx context.Context, yardID string, list []models.Slot) error {
	key := s.Key(yardID)

	if list == nil {
		list = []models.Slot{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to marshal slots for yard %s: %w", yardID, err)
	}

	if err := s.kv.Set(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("failed to save slots for yard %s: %w", yardID, err)
	}

	s.logger.Debug("Saved slots",
		zap.String("yard_id", yardID),
		zap.String("key", key),
		zap.Int("slot_count", len(list)),
	)
	return nil
}

// Resolve loads yardID's slots, falling back to its seed list and then to an empty list.
// The returned slice is never nil.
func (s *Store) Resolve(ctx context.Context, yardID string) []models.Slot {
	if list, ok := s.LoadSlots(ctx, yardID); ok {
		return list
	}
	if seed, ok := Seed(yardID); ok {
		return seed
	}
	return []models.Slot{}
}
