package forecast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/marqueehq/marquee/pkg/log"
	"github.com/marqueehq/marquee/pkg/types"
)

// DefaultCacheTTL bounds how stale a cached series may get. Forecast
// inputs only change on reconcile or lifecycle ticks, so a short TTL
// is enough.
const DefaultCacheTTL = 5 * time.Minute

// Cache stores computed forecast series in Redis so repeated reads of
// the same period do not recompute the grouping. A nil *Cache is a
// valid no-op cache, which keeps call sites free of nil checks when
// Redis is not configured.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewCache wraps an existing Redis client. ttl <= 0 falls back to
// DefaultCacheTTL.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		client: client,
		ttl:    ttl,
		logger: log.WithComponent("forecast-cache"),
	}
}

// Key builds the cache key for a period and smoothing configuration.
// Every parameter that changes the output is part of the key.
func Key(period Period, opts Options) string {
	return fmt.Sprintf("forecast:%s:%s:w%d:a%.3f:g%.3f",
		period, opts.Method, opts.Window, opts.Alpha, opts.GrowthFactor)
}

// Get returns the cached series for key, or ok=false on a miss. Cache
// errors are logged and reported as misses so a Redis outage degrades
// to recomputation instead of failing reads.
func (c *Cache) Get(ctx context.Context, key string) ([]types.ForecastPoint, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("Forecast cache read failed")
		return nil, false
	}
	var points []types.ForecastPoint
	if err := json.Unmarshal(raw, &points); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("Discarding undecodable forecast cache entry")
		return nil, false
	}
	return points, true
}

// Set stores a computed series under key. Failures are logged and
// swallowed; the caller already has the result.
func (c *Cache) Set(ctx context.Context, key string, points []types.ForecastPoint) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(points)
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("Failed to encode forecast series for cache")
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("Forecast cache write failed")
	}
}

// Invalidate removes every cached forecast entry. Called after
// reconcile cycles and lifecycle transitions change the booking set.
func (c *Cache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	iter := c.client.Scan(ctx, 0, "forecast:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.logger.Warn().Err(err).Str("key", iter.Val()).Msg("Forecast cache invalidation failed")
		}
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn().Err(err).Msg("Forecast cache scan failed")
	}
}
