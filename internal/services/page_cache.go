package services

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// Revalidator marks a cached route stale. It is best effort: failures are
// logged and never reach the caller.
type Revalidator interface {
	Revalidate(ctx context.Context, path string)
}

// PageCache keeps rendered route responses in Redis, one hash per route
// keyed by the raw query string. Revalidating a route drops every variant
// and bumps the route's generation so renders started earlier are not stored.
type PageCache struct {
	redis *redis.Client
	ttl   time.Duration
}

// KEYS[1] page hash, KEYS[2] generation counter
// ARGV[1] generation seen before rendering, ARGV[2] field, ARGV[3] body, ARGV[4] ttl in ms
const putIfCurrentScript = `
if (redis.call('GET', KEYS[2]) or '0') ~= ARGV[1] then
	return 0
end
redis.call('HSET', KEYS[1], ARGV[2], ARGV[3])
redis.call('PEXPIRE', KEYS[1], ARGV[4])
return 1
`

func NewPageCache(redis *redis.Client, ttl time.Duration) *PageCache {
	return &PageCache{
		redis: redis,
		ttl:   ttl,
	}
}

func pageKey(path string) string {
	return "page:" + path
}

func generationKey(path string) string {
	return "pagegen:" + path
}

// Get returns the cached body for path?rawQuery, or false on a miss
func (c *PageCache) Get(ctx context.Context, path, rawQuery string) ([]byte, bool) {
	if c == nil || c.redis == nil {
		return nil, false
	}

	data, err := c.redis.HGet(ctx, pageKey(path), rawQuery).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("[CACHE] Failed to read %s?%s: %v", path, rawQuery, err)
		return nil, false
	}
	return data, true
}

// Generation returns the current generation of path. Read it before
// rendering and hand it to Put. false means the result must not be cached.
func (c *PageCache) Generation(ctx context.Context, path string) (int64, bool) {
	if c == nil || c.redis == nil {
		return 0, false
	}

	gen, err := c.redis.Get(ctx, generationKey(path)).Int64()
	if err == redis.Nil {
		return 0, true
	}
	if err != nil {
		log.Printf("[CACHE] Failed to read generation of %s: %v", path, err)
		return 0, false
	}
	return gen, true
}

// Put stores body unless path was revalidated since generation gen was read
func (c *PageCache) Put(ctx context.Context, path, rawQuery string, gen int64, body []byte) {
	if c == nil || c.redis == nil {
		return
	}

	stored, err := c.redis.Eval(ctx, putIfCurrentScript,
		[]string{pageKey(path), generationKey(path)},
		strconv.FormatInt(gen, 10), rawQuery, body, c.ttl.Milliseconds()).Int64()
	if err != nil {
		log.Printf("[CACHE] Failed to store %s?%s: %v", path, rawQuery, err)
		return
	}
	if stored == 0 {
		log.Printf("[CACHE] Skipped stale render of %s?%s", path, rawQuery)
	}
}

func (c *PageCache) Revalidate(ctx context.Context, path string) {
	if c == nil || c.redis == nil {
		return
	}

	if err := c.redis.Incr(ctx, generationKey(path)).Err(); err != nil {
		log.Printf("[CACHE] Failed to bump generation of %s: %v", path, err)
	}
	if err := c.redis.Del(ctx, pageKey(path)).Err(); err != nil {
		log.Printf("[CACHE] Failed to revalidate %s: %v", path, err)
		return
	}
	log.Printf("[CACHE] Revalidated %s", path)
}
