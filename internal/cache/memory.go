package cache

import (
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rohmanhakim/liondine-api/internal/menu"
)

// MemoryStore is the in-memory implementation of the Store port.
// It uses a map guarded by an RWMutex; all read-modify-write sequences
// (expiry deletes, puts, sweeps, clears) run under the write lock.
//
// The store lives for the process lifetime and offers no persistence.
// Its operations never fail.
type MemoryStore struct {
	mu       sync.RWMutex
	entries  map[string]entry
	lifetime time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

// NewMemoryStore creates an empty store with the given entry lifetime.
// A non-positive lifetime falls back to DefaultLifetime.
func NewMemoryStore(lifetime time.Duration, logger *zap.Logger) *MemoryStore {
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemoryStore{
		entries:  make(map[string]entry),
		lifetime: lifetime,
		now:      time.Now,
		logger:   logger,
	}
}

// NewMemoryStoreForTest creates a store with an injected clock so tests can
// exercise expiry and day rollover deterministically.
func NewMemoryStoreForTest(lifetime time.Duration, now func() time.Time) *MemoryStore {
	s := NewMemoryStore(lifetime, zap.NewNop())
	s.now = now
	return s
}

func (s *MemoryStore) Get(meal menu.MealType) (menu.MenuData, bool) {
	now := s.now()
	key := Key(meal, now)

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		s.logger.Debug("cache miss", zap.String("key", key))
		return menu.MenuData{}, false
	}

	if now.Sub(e.CreatedAt) >= s.lifetime {
		// Lazy expiry: the lookup itself deletes the stale entry.
		s.mu.Lock()
		// Re-check under the write lock; a Put may have raced in a fresh entry.
		if e2, ok2 := s.entries[key]; ok2 && now.Sub(e2.CreatedAt) >= s.lifetime {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		s.logger.Debug("cache expired", zap.String("key", key))
		return menu.MenuData{}, false
	}

	s.logger.Debug("cache hit", zap.String("key", key))
	return e.Data, true
}

func (s *MemoryStore) Put(meal menu.MealType, data menu.MenuData) {
	now := s.now()
	key := Key(meal, now)

	s.mu.Lock()
	s.entries[key] = entry{Data: data, CreatedAt: now}
	s.mu.Unlock()

	s.logger.Debug("cache stored", zap.String("key", key))
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	s.entries = make(map[string]entry)
	s.mu.Unlock()

	s.logger.Info("cache cleared")
}

func (s *MemoryStore) Sweep() int {
	now := s.now()

	s.mu.Lock()
	removed := 0
	for key, e := range s.entries {
		if now.Sub(e.CreatedAt) >= s.lifetime {
			delete(s.entries, key)
			removed++
		}
	}
	s.mu.Unlock()

	if removed > 0 {
		s.logger.Info("cache sweep removed expired entries", zap.Int("removed", removed))
	}
	return removed
}

func (s *MemoryStore) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.entries))
	for key := range s.entries {
		keys = append(keys, key)
	}

	// Serialized size mirrors what a JSON dump of the store would occupy.
	// Marshal cannot fail here: entries hold only strings, slices, and times.
	size := 0
	if raw, err := json.Marshal(s.entries); err == nil {
		size = len(raw)
	}

	return Stats{
		Entries:   len(s.entries),
		Keys:      keys,
		SizeBytes: size,
	}
}

// Compile-time interface check
var _ Store = (*MemoryStore)(nil)
