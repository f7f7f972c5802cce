package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go-document-validator/document"

	"github.com/redis/go-redis/v9"
)

// ResultCache remembers validation results for a short while. Keys are
// derived from the cleaned document with CacheKey so the document number
// itself is never stored.
//
// Implementations must be safe for concurrent use.
type ResultCache interface {
	// Store saves the result under key, overwriting any previous value.
	Store(ctx context.Context, key string, result document.ValidationResult) error

	// Retrieve returns the cached result and whether it was found.
	// A miss is not an error.
	Retrieve(ctx context.Context, key string) (document.ValidationResult, bool, error)
}

// CacheKey hashes a cleaned document into a cache key.
func CacheKey(cleaned string) string {
	sum := sha256.Sum256([]byte(cleaned))
	return hex.EncodeToString(sum[:])
}

// ------------------------------------------------------------------------------

// NoopResultCache is used when caching is disabled.
type NoopResultCache struct{}

func (NoopResultCache) Store(context.Context, string, document.ValidationResult) error {
	return nil
}

func (NoopResultCache) Retrieve(context.Context, string) (document.ValidationResult, bool, error) {
	return document.ValidationResult{}, false, nil
}

// ------------------------------------------------------------------------------

type cacheEntry struct {
	result    document.ValidationResult
	expiresAt time.Time
}

// InMemoryResultCache drops expired entries on Store at most once per ttl,
// so it never holds more than two ttl windows of results.
type InMemoryResultCache struct {
	entries   map[string]cacheEntry
	ttl       time.Duration
	now       func() time.Time
	nextSweep time.Time
	mutex     sync.Mutex
}

func NewInMemoryResultCache(ttl time.Duration) *InMemoryResultCache {
	return &InMemoryResultCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *InMemoryResultCache) Store(_ context.Context, key string, result document.ValidationResult) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := c.now()
	if !now.Before(c.nextSweep) {
		c.removeExpired(now)
		c.nextSweep = now.Add(c.ttl)
	}

	c.entries[key] = cacheEntry{result: result, expiresAt: now.Add(c.ttl)}
	return nil
}

// removeExpired must be called with the mutex held.
func (c *InMemoryResultCache) removeExpired(now time.Time) {
	removed := 0
	for key, entry := range c.entries {
		if !now.Before(entry.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	if removed > 0 {
		slog.Debug("Removed expired cache entries", "removed", removed, "remaining", len(c.entries))
	}
}

func (c *InMemoryResultCache) Retrieve(_ context.Context, key string) (document.ValidationResult, bool, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return document.ValidationResult{}, false, nil
	}
	if !c.now().Before(entry.expiresAt) {
		delete(c.entries, key)
		return document.ValidationResult{}, false, nil
	}
	return entry.result, true, nil
}

// ------------------------------------------------------------------------------

type RedisResultCache struct {
	client    *redis.Client
	namespace string
	ttl       time.Duration
}

func NewRedisResultCache(client *redis.Client, namespace string, ttl time.Duration) *RedisResultCache {
	return &RedisResultCache{client: client, namespace: namespace, ttl: ttl}
}

type cachedResult struct {
	Valid        bool `json:"valid"`
	DocumentType int  `json:"document_type"`
}

func createKey(namespace, key string) string {
	return fmt.Sprintf("%s:result:%s", namespace, key)
}

func (c *RedisResultCache) Store(ctx context.Context, key string, result document.ValidationResult) error {
	payload, err := json.Marshal(cachedResult{Valid: result.Valid, DocumentType: int(result.DocumentType)})
	if err != nil {
		return fmt.Errorf("encode cached result: %w", err)
	}
	return c.client.Set(ctx, createKey(c.namespace, key), payload, c.ttl).Err()
}

func (c *RedisResultCache) Retrieve(ctx context.Context, key string) (document.ValidationResult, bool, error) {
	payload, err := c.client.Get(ctx, createKey(c.namespace, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return document.ValidationResult{}, false, nil
	}
	if err != nil {
		return document.ValidationResult{}, false, err
	}

	var cached cachedResult
	if err := json.Unmarshal(payload, &cached); err != nil {
		return document.ValidationResult{}, false, fmt.Errorf("decode cached result: %w", err)
	}
	return document.ValidationResult{
		Valid:        cached.Valid,
		DocumentType: document.DocumentType(cached.DocumentType),
	}, true, nil
}
