// Package respcache is the cache-aside layer in front of the catalog
// provider: fresh entries are served without a network call, misses fall
// through to the inner source and repopulate the cache under the same
// fingerprint.
package respcache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/scentify/scentcore/internal/domain/catalog"
	"github.com/scentify/scentcore/internal/kv"
)

// Cache key endpoint components. Kept aligned with the provider's paths so
// operators can correlate cache keys with outbound traffic.
const (
	opSearch  = "/fragrances"
	opMatch   = "/fragrances/match"
	opSimilar = "/fragrances/similar"
	opBrands  = "/brands"
)

// store is the consumer interface for the response cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedSource decorates a catalog source with a TTL response cache.
// Cache failures never fail the request; they degrade to a miss.
type CachedSource struct {
	inner      catalog.Source
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

var _ catalog.Source = (*CachedSource)(nil)

// New creates the caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner catalog.Source,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedSource {
	return &CachedSource{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Search implements catalog.Source with cache-aside reads.
func (c *CachedSource) Search(ctx context.Context, query string, limit int) ([]catalog.Record, error) {
	key := Fingerprint(opSearch, map[string]string{
		"search": query,
		"limit":  strconv.Itoa(limit),
	})
	return c.through(ctx, key, func() ([]catalog.Record, error) {
		return c.inner.Search(ctx, query, limit)
	})
}

// MatchAccords implements catalog.Source with cache-aside reads.
func (c *CachedSource) MatchAccords(ctx context.Context, weights map[string]int, limit int) ([]catalog.Record, error) {
	params := make(map[string]string, len(weights)+1)
	for name, pct := range weights {
		params["a:"+name] = strconv.Itoa(pct)
	}
	params["limit"] = strconv.Itoa(limit)

	key := Fingerprint(opMatch, params)
	return c.through(ctx, key, func() ([]catalog.Record, error) {
		return c.inner.MatchAccords(ctx, weights, limit)
	})
}

// Similar implements catalog.Source with cache-aside reads.
func (c *CachedSource) Similar(ctx context.Context, name string, limit int) ([]catalog.Record, error) {
	key := Fingerprint(opSimilar, map[string]string{
		"name":  name,
		"limit": strconv.Itoa(limit),
	})
	return c.through(ctx, key, func() ([]catalog.Record, error) {
		return c.inner.Similar(ctx, name, limit)
	})
}

// ByBrand implements catalog.Source with cache-aside reads.
func (c *CachedSource) ByBrand(ctx context.Context, brand string, limit int) ([]catalog.Record, error) {
	key := Fingerprint(opBrands, map[string]string{
		"brand": brand,
		"limit": strconv.Itoa(limit),
	})
	return c.through(ctx, key, func() ([]catalog.Record, error) {
		return c.inner.ByBrand(ctx, brand, limit)
	})
}

// through serves a fresh cached payload or calls fetch and stores the result.
func (c *CachedSource) through(
	ctx context.Context, key string, fetch func() ([]catalog.Record, error),
) ([]catalog.Record, error) {
	if records, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return records, nil
	}

	c.incCache("miss")

	records, err := fetch()
	if err != nil {
		return nil, err
	}

	c.putToCache(ctx, key, records)
	return records, nil
}

func (c *CachedSource) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedSource) getFromCache(ctx context.Context, key string) ([]catalog.Record, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, kv.ErrKeyNotFound) {
			c.logger.Warn("Failed to read response cache", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	records, err := bytesToRecords(data)
	if err != nil {
		c.logger.Warn("Failed to parse cached response", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return records, true
}

func (c *CachedSource) putToCache(ctx context.Context, key string, records []catalog.Record) {
	data, err := recordsToBytes(records)
	if err != nil {
		c.logger.Warn("Failed to encode response for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache response", zap.String("key", key), zap.Error(err))
	}
}
