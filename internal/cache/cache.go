// Package cache is an optional Redis read-through cache for list queries.
//
// Cached entries are namespaced by a per-table generation counter. Every
// write bumps the generation, so entries cached before the write are never
// read again and simply expire. A nil *Cache is valid and caches nothing.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/deppfellow/menu-service/internal/logger"
)

// DefaultPrefix namespaces every key written by the service.
const DefaultPrefix = "menu"

type Cache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	log    *zerolog.Logger
}

// New returns nil when client is nil, which disables caching.
func New(client *redis.Client, ttl time.Duration, log *zerolog.Logger) *Cache {
	if client == nil {
		return nil
	}
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}

	return &Cache{
		client: client,
		prefix: DefaultPrefix,
		ttl:    ttl,
		log:    log,
	}
}

// Enabled reports whether reads go through Redis.
func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

func (c *Cache) generationKey(table string) string {
	return fmt.Sprintf("%s:%s:gen", c.prefix, table)
}

func (c *Cache) entryKey(table string, generation int64, variant string) string {
	return fmt.Sprintf("%s:%s:%d:%s", c.prefix, table, generation, variant)
}

// generation returns the current generation of table. A missing counter is generation 0.
func (c *Cache) generation(ctx context.Context, table string) (int64, error) {
	raw, err := c.client.Get(ctx, c.generationKey(table)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrap(err, "read cache generation")
	}

	gen, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parse cache generation %q", raw)
	}
	return gen, nil
}

// Invalidate moves table to a new generation.
// Failures are logged; stale entries then live until their TTL.
func (c *Cache) Invalidate(ctx context.Context, table string) {
	if !c.Enabled() {
		return
	}

	if err := c.client.Incr(ctx, c.generationKey(table)).Err(); err != nil {
		logger.FromContext(ctx, c.log).Warn().
			Err(err).
			Str("table", table).
			Msg("failed to invalidate cache")
	}
}

// GetOrLoad returns the cached value for (table, variant) or calls load and
// caches its result. Any Redis failure falls back to load.
func GetOrLoad[T any](ctx context.Context, c *Cache, table, variant string, load func(context.Context) (T, error)) (T, error) {
	if !c.Enabled() {
		return load(ctx)
	}

	log := logger.FromContext(ctx, c.log)

	gen, err := c.generation(ctx, table)
	if err != nil {
		log.Warn().Err(err).Str("table", table).Msg("cache unavailable, reading from database")
		return load(ctx)
	}

	key := c.entryKey(table, gen, variant)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var value T
		jerr := json.Unmarshal(raw, &value)
		if jerr == nil {
			log.Debug().Str("key", key).Msg("cache hit")
			return value, nil
		}
		log.Warn().Err(jerr).Str("key", key).Msg("discarding undecodable cache entry")
	case !errors.Is(err, redis.Nil):
		log.Warn().Err(err).Str("key", key).Msg("cache read failed, reading from database")
		return load(ctx)
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to encode cache entry")
		return value, nil
	}

	if err := c.client.Set(ctx, key, encoded, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to write cache entry")
	}

	return value, nil
}
