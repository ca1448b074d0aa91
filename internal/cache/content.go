// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// content.go provides a Valkey-backed cache for JSON documents derived from
// the CMS (merged bilingual categories, published article lists). Entries
// expire after a short TTL; the CMS stays the source of truth. Every error
// is logged and treated as a miss.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// keyPrefix is the Valkey key prefix for cached content.
	keyPrefix = "content:"

	// DefaultTTL is how long a cached document stays valid.
	DefaultTTL = 5 * time.Minute
)

// ContentCache stores JSON-encoded values in Valkey.
type ContentCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewContentCache creates a cache backed by the given Valkey client.
// A zero ttl means DefaultTTL.
func NewContentCache(client *redis.Client, ttl time.Duration) *ContentCache {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &ContentCache{client: client, ttl: ttl}
}

// Get decodes the cached value for key into dst. It reports false on a
// miss, a Valkey error or a value that no longer decodes.
func (c *ContentCache) Get(ctx context.Context, key string, dst any) bool {
	val, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		slog.Warn("content cache get error", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal(val, dst); err != nil {
		slog.Warn("content cache decode error", "key", key, "error", err)
		return false
	}
	slog.Debug("content cache hit", "key", key)
	return true
}

// Set stores v under key with the configured TTL.
func (c *ContentCache) Set(ctx context.Context, key string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		slog.Warn("content cache encode error", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, keyPrefix+key, payload, c.ttl).Err(); err != nil {
		slog.Warn("content cache set error", "key", key, "error", err)
	}
}

// InvalidateAll removes every cached document by scanning for the prefix.
// Run after bulk edits so the site picks up changes before the TTL expires.
func (c *ContentCache) InvalidateAll(ctx context.Context) int {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, keyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("content cache scan error", "error", err)
			return deleted
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("content cache bulk delete error", "error", err)
			} else {
				deleted += len(keys)
			}
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("content cache cleared", "deleted", deleted)
	}
	return deleted
}

// CategoriesKey returns the cache key for the merged categories of a locale.
func CategoriesKey(locale string) string {
	return "categories:" + locale
}

// ArticlesKey returns the cache key for published articles of a locale,
// optionally narrowed to one category slug.
func ArticlesKey(locale, categorySlug string) string {
	if categorySlug == "" {
		return "articles:" + locale
	}
	return "articles:" + locale + ":" + categorySlug
}

// ArticleKey returns the cache key for one rendered article.
func ArticleKey(locale, id string) string {
	return "article:" + locale + ":" + id
}
