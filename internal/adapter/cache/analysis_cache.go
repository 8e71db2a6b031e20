package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"sync"
	"time"

	"codectx/internal/domain"
)

// AnalysisCache memoizes structural analysis results in memory, keyed by
// file identity (path, size, mtime). Entries expire after a TTL and the
// oldest entries are evicted once maxSize is reached.
type AnalysisCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	order   []string
	maxSize int
	ttl     time.Duration
}

type cacheEntry struct {
	structure domain.FileStructure
	timestamp time.Time
}

// NewAnalysisCache creates a cache. Non-positive arguments select the
// defaults (500 entries, 10 minutes).
func NewAnalysisCache(maxSize int, ttl time.Duration) *AnalysisCache {
	if maxSize <= 0 {
		maxSize = 500
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &AnalysisCache{
		entries: make(map[string]*cacheEntry),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
		ttl:     ttl,
	}
}

// Key derives the cache key for a file identity. A file that changes size or
// mtime gets a fresh key, so stale analysis never survives an edit.
func Key(path string, size, modTime int64) string {
	data := make([]byte, 0, len(path)+16)
	data = append(data, path...)
	data = binary.BigEndian.AppendUint64(data, uint64(size))
	data = binary.BigEndian.AppendUint64(data, uint64(modTime))
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:16])
}

// Get returns the cached structure for a file identity, if fresh.
func (c *AnalysisCache) Get(path string, size, modTime int64) (domain.FileStructure, bool) {
	key := Key(path, size, modTime)

	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		return domain.FileStructure{}, false
	}
	if time.Since(entry.timestamp) > c.ttl {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return domain.FileStructure{}, false
	}
	return entry.structure, true
}

// Put stores the structure for a file identity, evicting the oldest entry
// when full.
func (c *AnalysisCache) Put(path string, size, modTime int64, s domain.FileStructure) error {
	key := Key(path, size, modTime)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		if len(c.order) >= c.maxSize {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
		}
		c.order = append(c.order, key)
	}

	c.entries[key] = &cacheEntry{structure: s, timestamp: time.Now()}
	return nil
}

// Len returns the number of live entries.
func (c *AnalysisCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
