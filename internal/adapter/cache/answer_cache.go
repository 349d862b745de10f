// Package cache memoizes generated answers per document and question.
// Entries are invalidated when their document is re-ingested, so a cached
// answer never outlives the index it was retrieved from.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

type AnswerCache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
	order   []string
	maxSize int
	ttl     time.Duration
	docGens map[string]uint64
}

type cacheEntry struct {
	answer     string
	documentID string
	timestamp  time.Time
	docGen     uint64
}

func NewAnswerCache(maxSize int, ttl time.Duration) *AnswerCache {
	if maxSize <= 0 {
		maxSize = 100
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &AnswerCache{
		entries: make(map[string]*cacheEntry),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
		ttl:     ttl,
		docGens: make(map[string]uint64),
	}
}

func cacheKey(documentID, question string, topK int) string {
	data := []byte(fmt.Sprintf("%s\x00%s\x00%d", documentID, question, topK))
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:16])
}

// Get returns the cached answer for (documentID, question, topK) if it is
// fresh and the document has not been replaced since the answer was stored.
func (c *AnswerCache) Get(documentID, question string, topK int) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(documentID, question, topK)
	entry, exists := c.entries[key]
	if !exists {
		return "", false
	}

	if time.Since(entry.timestamp) > c.ttl || entry.docGen != c.docGens[documentID] {
		delete(c.entries, key)
		c.removeFromOrder(key)
		return "", false
	}

	c.moveToEnd(key)
	return entry.answer, true
}

// Put stores an answer, evicting the least recently used entry when full.
func (c *AnswerCache) Put(documentID, question string, topK int, answer string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(documentID, question, topK)
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		oldest := c.order[0]
		delete(c.entries, oldest)
		c.order = c.order[1:]
	}

	if _, exists := c.entries[key]; !exists {
		c.order = append(c.order, key)
	} else {
		c.moveToEnd(key)
	}

	c.entries[key] = &cacheEntry{
		answer:     answer,
		documentID: documentID,
		timestamp:  time.Now(),
		docGen:     c.docGens[documentID],
	}
}

// Invalidate marks every cached answer for documentID stale. Called after a
// document is ingested or re-ingested.
func (c *AnswerCache) Invalidate(documentID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.docGens[documentID]++
}

func (c *AnswerCache) removeFromOrder(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

func (c *AnswerCache) moveToEnd(key string) {
	c.removeFromOrder(key)
	c.order = append(c.order, key)
}
