// Package cache provides the short-TTL result cache shared by all
// aggregation services. The store is constructed once in main and passed by
// handle; there is no package-global state.
package cache

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"ai-crypto-pulse/internal/domain"
)

// Entry is one cached fetch result: the normalized records plus the moment
// they were fetched.
type Entry struct {
	Videos    []domain.VideoRecord  `json:"videos,omitempty"`
	Markets   []domain.MarketRecord `json:"markets,omitempty"`
	FetchedAt time.Time             `json:"fetched_at"`
}

// Store is the cache contract. Get returns (entry, true) only while the
// entry is younger than the TTL; an expired or missing entry reads as
// absent. Put overwrites unconditionally, last write wins.
type Store interface {
	Get(ctx context.Context, key string) (Entry, bool)
	Put(ctx context.Context, key string, entry Entry)
}

// Key builds a cache key from a provider name and its normalized parameter
// tuple. Symbol lists must be sorted by the caller via SymbolsKey.
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

// SymbolsKey normalizes a symbol list into a stable key fragment:
// uppercased, sorted, underscore-joined.
func SymbolsKey(symbols []string) string {
	upper := make([]string, 0, len(symbols))
	for _, s := range symbols {
		upper = append(upper, strings.ToUpper(strings.TrimSpace(s)))
	}
	sort.Strings(upper)
	return strings.Join(upper, "_")
}

type memoryEntry struct {
	entry    Entry
	storedAt time.Time
}

// MemoryStore is an in-process TTL map. Keys are never evicted by count,
// only lazily dropped when read after expiry; key cardinality here is
// providers x parameter tuples, which stays small.
type MemoryStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (Entry, bool) {
	s.mu.RLock()
	me, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return Entry{}, false
	}
	if s.now().Sub(me.storedAt) >= s.ttl {
		s.mu.Lock()
		// Re-check under the write lock; a fresher Put may have landed.
		if cur, ok := s.entries[key]; ok && s.now().Sub(cur.storedAt) >= s.ttl {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return Entry{}, false
	}
	return me.entry, true
}

func (s *MemoryStore) Put(_ context.Context, key string, entry Entry) {
	s.mu.Lock()
	s.entries[key] = memoryEntry{entry: entry, storedAt: s.now()}
	s.mu.Unlock()
}

var _ Store = (*MemoryStore)(nil)
