// Package cache provides the in-process result cache for dataset profiles.
// Entries are keyed by content fingerprint, expire after a TTL, and the
// oldest entry is evicted when the cache is full.
package cache

import (
	"context"
	"sync"
	"time"

	"gradstat/domain/core"
	"gradstat/internal"
	"gradstat/ports"
)

type entry struct {
	value    interface{}
	storedAt time.Time
}

// Manager implements ports.Cache with a mutex-guarded map. Suitable for a
// single process; the content-fingerprint keys make entries portable to a
// shared store later without a key-scheme change.
type Manager struct {
	mu          sync.Mutex
	entries     map[core.ContentKey]entry
	ttl         time.Duration
	maxEntries  int
	hits        int64
	misses      int64
	evictions   int64
	expirations int64
	logger      *internal.Logger
	now         func() time.Time
}

var _ ports.Cache = (*Manager)(nil)

func NewManager(ttl time.Duration, maxEntries int, logger *internal.Logger) *Manager {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if maxEntries <= 0 {
		maxEntries = 100
	}
	return &Manager{
		entries:    make(map[core.ContentKey]entry),
		ttl:        ttl,
		maxEntries: maxEntries,
		logger:     logger.Named("cache"),
		now:        time.Now,
	}
}

func (m *Manager) Get(_ context.Context, key core.ContentKey) (interface{}, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		m.misses++
		return nil, false
	}
	if m.ttl > 0 && m.now().Sub(e.storedAt) > m.ttl {
		delete(m.entries, key)
		m.expirations++
		m.misses++
		m.logger.Debug("entry expired: %s", key.Short())
		return nil, false
	}
	m.hits++
	return e.value, true
}

func (m *Manager) Set(_ context.Context, key core.ContentKey, value interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[key]; !exists && len(m.entries) >= m.maxEntries {
		m.evictOldestLocked()
	}
	m.entries[key] = entry{value: value, storedAt: m.now()}
}

func (m *Manager) Clear(_ context.Context) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.entries)
	m.entries = make(map[core.ContentKey]entry)
	m.logger.Info("cleared %d entries", n)
	return n
}

func (m *Manager) Stats(_ context.Context) ports.CacheStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats := ports.CacheStats{
		Entries:     len(m.entries),
		MaxEntries:  m.maxEntries,
		Hits:        m.hits,
		Misses:      m.misses,
		Evictions:   m.evictions,
		Expirations: m.expirations,
		TTLSeconds:  int(m.ttl / time.Second),
	}
	if total := m.hits + m.misses; total > 0 {
		stats.HitRate = float64(m.hits) / float64(total)
	}
	return stats
}

// evictOldestLocked drops the entry with the earliest store time. Callers
// hold the mutex.
func (m *Manager) evictOldestLocked() {
	var oldestKey core.ContentKey
	var oldestAt time.Time
	first := true
	for key, e := range m.entries {
		if first || e.storedAt.Before(oldestAt) {
			oldestKey, oldestAt, first = key, e.storedAt, false
		}
	}
	if !first {
		delete(m.entries, oldestKey)
		m.evictions++
		m.logger.Debug("evicted oldest entry: %s", oldestKey.Short())
	}
}
