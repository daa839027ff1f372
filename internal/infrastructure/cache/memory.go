// Package cache provides the in-memory, time- and capacity-bounded store of
// assistant answers.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"github.com/asoraledecnal/vantage/internal/domain"
	"github.com/asoraledecnal/vantage/internal/ports"
)

type entry struct {
	answer    string
	createdAt time.Time
}

// MemoryCache maps hashed (tool, context, normalized question) keys to
// answer text. Entries expire lazily after the TTL; when an insert pushes
// the map past maxEntries, the single oldest entry is evicted.
type MemoryCache struct {
	mu         sync.Mutex
	entries    map[string]entry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// NewMemoryCache builds a cache with the given entry lifetime and capacity.
// Both must be positive; config validation rejects anything else at startup.
func NewMemoryCache(ttl time.Duration, maxEntries int) *MemoryCache {
	return &MemoryCache{
		entries:    make(map[string]entry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get returns the cached answer for the request, or a miss. Expired entries
// are removed on access; no background sweep runs.
func (c *MemoryCache) Get(tool string, recent *domain.RecentActivity, question string) (string, bool) {
	key := cacheKey(tool, recent, question)

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if c.now().Sub(e.createdAt) > c.ttl {
		delete(c.entries, key)
		return "", false
	}
	return e.answer, true
}

// Set stores an answer, overwriting any existing entry under the same key
// (the creation timestamp restarts). If the insert exceeds capacity, the
// oldest entry other than the one just inserted is evicted.
func (c *MemoryCache) Set(tool string, recent *domain.RecentActivity, question, answer string) {
	key := cacheKey(tool, recent, question)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{answer: answer, createdAt: c.now()}
	if len(c.entries) <= c.maxEntries {
		return
	}

	oldestKey := ""
	var oldestAt time.Time
	for k, e := range c.entries {
		if k == key {
			continue
		}
		if oldestKey == "" || e.createdAt.Before(oldestAt) {
			oldestKey = k
			oldestAt = e.createdAt
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

// Len reports the current entry count.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// cacheKey hashes the tool, the context fingerprint, and the normalized
// question so trivially reformatted questions share an entry while the same
// question under different recent activity does not.
func cacheKey(tool string, recent *domain.RecentActivity, question string) string {
	h := sha256.New()
	h.Write([]byte(tool))
	h.Write([]byte{0})
	h.Write([]byte(Fingerprint(recent)))
	h.Write([]byte{0})
	h.Write([]byte(NormalizeQuestion(question)))
	return hex.EncodeToString(h.Sum(nil))
}

// NormalizeQuestion lowercases and collapses whitespace.
func NormalizeQuestion(question string) string {
	return strings.Join(strings.Fields(strings.ToLower(question)), " ")
}

// Fingerprint reduces recent activity to a short stable string.
func Fingerprint(recent *domain.RecentActivity) string {
	if recent == nil {
		return ""
	}
	parts := make([]string, 0, 3)
	if recent.Tool != "" {
		parts = append(parts, recent.Tool)
	}
	if recent.Target != "" {
		parts = append(parts, recent.Target)
	}
	if recent.Summary != "" {
		parts = append(parts, recent.Summary)
	}
	return strings.Join(parts, "|")
}

var _ ports.ResponseCache = (*MemoryCache)(nil)
