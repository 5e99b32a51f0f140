package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"
)

// cacheEntry is one cached answer.
type cacheEntry struct {
	answer    *Answer
	expiresAt time.Time
}

// AnswerCache keeps recent answers in memory for a fixed TTL.
//
// Keys include the engine id, so a reloaded dataset never serves answers
// computed against the previous table. A nil *AnswerCache is a valid,
// always-missing cache.
type AnswerCache struct {
	mu    sync.RWMutex
	store map[string]*cacheEntry
	ttl   time.Duration
	now   func() time.Time
	stop  chan struct{}
	once  sync.Once
}

// NewAnswerCache returns nil when ttl <= 0 (caching disabled). Otherwise it
// starts a janitor goroutine; call Close to stop it.
func NewAnswerCache(ttl time.Duration) *AnswerCache {
	if ttl <= 0 {
		return nil
	}
	c := &AnswerCache{
		store: make(map[string]*cacheEntry),
		ttl:   ttl,
		now:   time.Now,
		stop:  make(chan struct{}),
	}
	go c.cleanup(cleanupInterval(ttl))
	return c
}

// Get retrieves a cached answer if present and not expired.
func (c *AnswerCache) Get(engineID, question string) (*Answer, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.store[cacheKey(engineID, question)]
	if !ok || c.now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.answer, true
}

// Set stores an answer.
func (c *AnswerCache) Set(engineID, question string, answer *Answer) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[cacheKey(engineID, question)] = &cacheEntry{
		answer:    answer,
		expiresAt: c.now().Add(c.ttl),
	}
}

// Len counts stored entries, expired ones included.
func (c *AnswerCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// Clear removes all entries.
func (c *AnswerCache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]*cacheEntry)
}

// Close stops the janitor goroutine.
func (c *AnswerCache) Close() {
	if c == nil {
		return
	}
	c.once.Do(func() { close(c.stop) })
}

func (c *AnswerCache) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.evictExpired()
		}
	}
}

func (c *AnswerCache) evictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for key, entry := range c.store {
		if now.After(entry.expiresAt) {
			delete(c.store, key)
		}
	}
}

func cleanupInterval(ttl time.Duration) time.Duration {
	if ttl < 5*time.Minute {
		return ttl
	}
	return 5 * time.Minute
}

// cacheKey hashes the engine id and the lower-cased question; the parser is
// case-insensitive, so casing never changes an answer.
func cacheKey(engineID, question string) string {
	hash := sha256.Sum256([]byte(engineID + "\x00" + strings.ToLower(question)))
	return hex.EncodeToString(hash[:])
}
