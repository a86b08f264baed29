package recommendation

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
	"sync"
	"time"
)

// cacheEntry is the stored shape for both result caches: the last
// computed list plus the generation signature and timestamp that decide
// staleness at read time.
type cacheEntry struct {
	Recommendations []Recommendation `json:"recommendations"`
	Signature       string           `json:"signature"`
	GeneratedAt     time.Time        `json:"generated_at"`
}

func (e cacheEntry) valid(signature string, ttl time.Duration, now time.Time) bool {
	if len(e.Recommendations) == 0 {
		return false
	}
	if e.Signature != signature {
		return false
	}
	return now.Sub(e.GeneratedAt) < ttl
}

// ResultCache holds the last unfiltered recommendation list per user.
// Injected rather than process-global so tests and concurrent sessions
// stay isolated. TTL expiry is checked at read time, not swept.
type ResultCache struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

// NewResultCache creates a result cache with the given TTL
func NewResultCache(ttl time.Duration) *ResultCache {
	return &ResultCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

// Get returns the cached list when it is non-empty, non-stale and the
// generation signature still matches.
func (c *ResultCache) Get(key, signature string) ([]Recommendation, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || !entry.valid(signature, c.ttl, time.Now()) {
		return nil, false
	}
	return entry.Recommendations, true
}

// Set overwrites the cached list for a key. Last writer wins; a stale
// overwrite from a racing invocation is only a minor inefficiency.
func (c *ResultCache) Set(key, signature string, recs []Recommendation) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{
		Recommendations: recs,
		Signature:       signature,
		GeneratedAt:     time.Now(),
	}
	c.mu.Unlock()
}

// Invalidate drops the cached list for a key
func (c *ResultCache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// kvResultCache persists cache entries through the generic key-value
// store; used for hidden gems so results survive restarts. Read or parse
// failures are treated as cache misses.
type kvResultCache struct {
	store  KVStore
	prefix string
	ttl    time.Duration
}

func newKVResultCache(store KVStore, prefix string, ttl time.Duration) *kvResultCache {
	return &kvResultCache{
		store:  store,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (c *kvResultCache) Get(key, signature string) ([]Recommendation, bool) {
	raw, err := c.store.Get(c.prefix + key)
	if err != nil || len(raw) == 0 {
		return nil, false
	}

	var entry cacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, false
	}
	if !entry.valid(signature, c.ttl, time.Now()) {
		return nil, false
	}
	return entry.Recommendations, true
}

func (c *kvResultCache) Set(key, signature string, recs []Recommendation) error {
	raw, err := json.Marshal(cacheEntry{
		Recommendations: recs,
		Signature:       signature,
		GeneratedAt:     time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	return c.store.Set(c.prefix+key, raw)
}

// buildSignature hashes the generation inputs - genre affinities and the
// liked-item keys - into a stable content signature. A change in either
// invalidates cached results on the next read.
func buildSignature(affinities map[int]float64, likedKeys []string) string {
	genreIDs := make([]int, 0, len(affinities))
	for id := range affinities {
		genreIDs = append(genreIDs, id)
	}
	sort.Ints(genreIDs)

	var b strings.Builder
	for _, id := range genreIDs {
		fmt.Fprintf(&b, "%d:%g;", id, affinities[id])
	}
	b.WriteString("|")

	sortedKeys := append([]string{}, likedKeys...)
	sort.Strings(sortedKeys)
	b.WriteString(strings.Join(sortedKeys, ";"))

	h := fnv.New64a()
	h.Write([]byte(b.String()))
	return fmt.Sprintf("%016x", h.Sum64())
}
