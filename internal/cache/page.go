// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// page.go provides a Valkey-backed full-page HTML cache for the public
// site. Rendered pages are keyed by request path and query so repeated
// visits skip the content API round-trips and template execution.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"

	"mlomp/internal/metrics"
)

const (
	// pageKeyPrefix is the Valkey key prefix for cached pages.
	pageKeyPrefix = "page:"

	// DefaultPageTTL is how long a rendered page stays cached.
	DefaultPageTTL = 5 * time.Minute
)

// PageCache manages full-page HTML caching in Valkey.
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPageCache creates a new page cache backed by the given Valkey client.
func NewPageCache(client *redis.Client, ttl time.Duration) *PageCache {
	if ttl == 0 {
		ttl = DefaultPageTTL
	}
	return &PageCache{client: client, ttl: ttl}
}

// Get retrieves cached HTML for a page key. Errors count as misses.
func (pc *PageCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := pc.client.Get(ctx, pageKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.PageCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}
	if err != nil {
		metrics.PageCacheTotal.WithLabelValues("error").Inc()
		slog.Warn("page cache get error", "key", key, "error", err)
		return nil, false
	}
	metrics.PageCacheTotal.WithLabelValues("hit").Inc()
	slog.Debug("page cache hit", "key", key)
	return val, true
}

// Set stores rendered HTML for a page key with the configured TTL.
func (pc *PageCache) Set(ctx context.Context, key string, html []byte) {
	if err := pc.client.Set(ctx, pageKeyPrefix+key, html, pc.ttl).Err(); err != nil {
		slog.Warn("page cache set error", "key", key, "error", err)
	}
}

// InvalidatePage removes a single page from the cache.
func (pc *PageCache) InvalidatePage(ctx context.Context, key string) {
	if err := pc.client.Del(ctx, pageKeyPrefix+key).Err(); err != nil {
		slog.Warn("page cache invalidate error", "key", key, "error", err)
		return
	}
	slog.Debug("page cache invalidated", "key", key)
}

// InvalidatePrefix removes every page whose key starts with prefix, e.g.
// "/actualites" drops the news list, its query variants and all details.
func (pc *PageCache) InvalidatePrefix(ctx context.Context, prefix string) {
	deleted := pc.scanDelete(ctx, pageKeyPrefix+prefix+"*")
	slog.Debug("page cache prefix invalidated", "prefix", prefix, "deleted", deleted)
}

// InvalidateAll removes all cached pages.
func (pc *PageCache) InvalidateAll(ctx context.Context) {
	if deleted := pc.scanDelete(ctx, pageKeyPrefix+"*"); deleted > 0 {
		slog.Info("page cache fully cleared", "deleted", deleted)
	}
}

func (pc *PageCache) scanDelete(ctx context.Context, pattern string) int {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := pc.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			slog.Warn("page cache scan error", "pattern", pattern, "error", err)
			return deleted
		}
		if len(keys) > 0 {
			if err := pc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("page cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			return deleted
		}
	}
}

// Key returns the cache key for a request URL: its path plus the listed
// query parameters, sorted. Other parameters are ignored so arbitrary
// query strings map onto the same entry.
func Key(u *url.URL, params ...string) string {
	q := u.Query()
	kept := url.Values{}
	for _, name := range params {
		if v := q.Get(name); v != "" {
			kept.Set(name, v)
		}
	}
	if len(kept) > 0 {
		return u.Path + "?" + kept.Encode()
	}
	return u.Path
}
