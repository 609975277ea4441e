package webtitle

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// TitleCache stores resolved page titles keyed by URL.
type TitleCache interface {
	Get(ctx context.Context, url string) (string, bool)
	Set(ctx context.Context, url, title string)
}

// CachedFetcher memoizes successful lookups of the wrapped Fetcher.
// Fallback results (title == url) are not cached so a later attempt can
// still succeed.
type CachedFetcher struct {
	next  Fetcher
	cache TitleCache
}

func NewCachedFetcher(next Fetcher, cache TitleCache) *CachedFetcher {
	return &CachedFetcher{next: next, cache: cache}
}

func (f *CachedFetcher) FetchTitle(ctx context.Context, url string) string {
	if title, ok := f.cache.Get(ctx, url); ok {
		return title
	}

	title := f.next.FetchTitle(ctx, url)
	if title != url {
		f.cache.Set(ctx, url, title)
	}
	return title
}

type MemoryCache struct {
	cache *cache.Cache
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{cache: cache.New(ttl, ttl/2)}
}

func (c *MemoryCache) Get(_ context.Context, url string) (string, bool) {
	if x, found := c.cache.Get(url); found {
		return x.(string), true
	}
	return "", false
}

func (c *MemoryCache) Set(_ context.Context, url, title string) {
	c.cache.Set(url, title, cache.DefaultExpiration)
}

const redisKeyPrefix = "webtitle:"

// RedisCache shares titles between instances. Redis errors degrade to a
// cache miss.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, url string) (string, bool) {
	title, err := c.rdb.Get(ctx, redisKeyPrefix+url).Result()
	if err != nil {
		// redis.Nil is a plain miss.
		return "", false
	}
	return title, true
}

func (c *RedisCache) Set(ctx context.Context, url, title string) {
	// A failed write is only a lost cache entry; the next lookup refetches.
	_ = c.rdb.Set(ctx, redisKeyPrefix+url, title, c.ttl).Err()
}
