// ============================================================================
// nestedencoder (nenc) - Verschachtelte Zeichenketten-Kodierung
// ============================================================================
//
// Package:     cache
// Description: Cache for encode results keyed by pattern and text digest
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// ResultCache caches encoder output. Keys are digests, the text itself is
// never stored as a key.
type ResultCache struct {
	cache *Cache
}

// NewResultCache creates a result cache
func NewResultCache(cfg Config) *ResultCache {
	return &ResultCache{cache: New(cfg)}
}

// ResultKey generates a cache key from the request fields. Every field is
// hashed with its length in front, so no field content can shift into its
// neighbour.
func ResultKey(fields ...string) string {
	h := sha256.New()
	var n [8]byte

	binary.BigEndian.PutUint64(n[:], uint64(len(fields)))
	h.Write(n[:])
	for _, f := range fields {
		binary.BigEndian.PutUint64(n[:], uint64(len(f)))
		h.Write(n[:])
		h.Write([]byte(f))
	}
	return "result:" + hex.EncodeToString(h.Sum(nil)[:16])
}

// Get retrieves a cached result
func (c *ResultCache) Get(key string) (string, bool) {
	if val, ok := c.cache.Get(key); ok {
		if s, ok := val.(string); ok {
			return s, true
		}
	}
	return "", false
}

// Set caches a result
func (c *ResultCache) Set(key, result string) {
	c.cache.Set(key, result)
}

// Stats returns cache statistics
func (c *ResultCache) Stats() map[string]interface{} {
	hits, misses, rate := c.cache.Stats()
	return map[string]interface{}{
		"size":     c.cache.Size(),
		"hits":     hits,
		"misses":   misses,
		"hit_rate": rate,
	}
}

// Clear removes all cached results
func (c *ResultCache) Clear() {
	c.cache.Clear()
}

// Close stops the underlying cache
func (c *ResultCache) Close() {
	c.cache.Close()
}
