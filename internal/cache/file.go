package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rohmanhakim/liondine-api/internal/menu"
)

const cacheFileName = "menu-cache.json"

// FileStore is the file-backed implementation of the Store port. It honors
// the same contract as MemoryStore and additionally survives process
// restarts by persisting the entry map as one JSON file under dir.
//
// Construction fails if the cache directory cannot be created; after that,
// I/O failures during saves are logged and the in-memory view stays
// authoritative, so the port's no-error contract holds for every operation.
type FileStore struct {
	mu       sync.Mutex
	path     string
	entries  map[string]entry
	lifetime time.Duration
	loaded   bool
	now      func() time.Time
	logger   *zap.Logger
}

// NewFileStore creates a store persisting to dir/menu-cache.json.
// The directory is created if missing.
func NewFileStore(dir string, lifetime time.Duration, logger *zap.Logger) (*FileStore, error) {
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCacheDirUnusable, err.Error())
	}
	return &FileStore{
		path:     filepath.Join(dir, cacheFileName),
		entries:  make(map[string]entry),
		lifetime: lifetime,
		now:      time.Now,
		logger:   logger,
	}, nil
}

// NewFileStoreForTest creates a FileStore with an injected clock.
func NewFileStoreForTest(dir string, lifetime time.Duration, now func() time.Time) (*FileStore, error) {
	s, err := NewFileStore(dir, lifetime, zap.NewNop())
	if err != nil {
		return nil, err
	}
	s.now = now
	return s, nil
}

// loadLocked reads the cache file into memory once. A missing or corrupted
// file starts the store empty; yesterday's data is not worth failing over.
func (s *FileStore) loadLocked() {
	if s.loaded {
		return
	}
	s.loaded = true

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("cache file unreadable, starting empty", zap.Error(err))
		}
		return
	}
	if err := json.Unmarshal(raw, &s.entries); err != nil {
		s.logger.Warn("cache file corrupted, starting empty", zap.Error(err))
		s.entries = make(map[string]entry)
		return
	}
	s.logger.Info("cache loaded from disk", zap.Int("entries", len(s.entries)))
}

func (s *FileStore) saveLocked() {
	raw, err := json.Marshal(s.entries)
	if err != nil {
		s.logger.Error("cache serialization failed", zap.Error(err))
		return
	}
	if err := os.WriteFile(s.path, raw, 0644); err != nil {
		s.logger.Error("cache save failed", zap.Error(err), zap.String("path", s.path))
	}
}

func (s *FileStore) Get(meal menu.MealType) (menu.MenuData, bool) {
	now := s.now()
	key := Key(meal, now)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked()

	e, ok := s.entries[key]
	if !ok {
		return menu.MenuData{}, false
	}
	if now.Sub(e.CreatedAt) >= s.lifetime {
		delete(s.entries, key)
		s.saveLocked()
		return menu.MenuData{}, false
	}
	return e.Data, true
}

func (s *FileStore) Put(meal menu.MealType, data menu.MenuData) {
	now := s.now()
	key := Key(meal, now)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked()

	s.entries[key] = entry{Data: data, CreatedAt: now}
	s.saveLocked()
}

func (s *FileStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true
	s.entries = make(map[string]entry)
	s.saveLocked()
}

func (s *FileStore) Sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked()

	removed := 0
	for key, e := range s.entries {
		if now.Sub(e.CreatedAt) >= s.lifetime {
			delete(s.entries, key)
			removed++
		}
	}
	if removed > 0 {
		s.saveLocked()
	}
	return removed
}

func (s *FileStore) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked()

	keys := make([]string, 0, len(s.entries))
	for key := range s.entries {
		keys = append(keys, key)
	}
	size := 0
	if raw, err := json.Marshal(s.entries); err == nil {
		size = len(raw)
	}
	return Stats{Entries: len(s.entries), Keys: keys, SizeBytes: size}
}

// Compile-time interface check
var _ Store = (*FileStore)(nil)
