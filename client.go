package scentcore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/scentify/scentcore/internal/dataset"
	"github.com/scentify/scentcore/internal/domain/catalog"
	"github.com/scentify/scentcore/internal/domain/usage"
	"github.com/scentify/scentcore/internal/kv"
	kvMemory "github.com/scentify/scentcore/internal/kv/memory"
	kvRedis "github.com/scentify/scentcore/internal/kv/redis"
	clicksrepo "github.com/scentify/scentcore/internal/repository/clicks"
	"github.com/scentify/scentcore/internal/repository/respcache"
	"github.com/scentify/scentcore/internal/transport/fragella"
	cataloguc "github.com/scentify/scentcore/internal/usecase/catalog"
	recommenduc "github.com/scentify/scentcore/internal/usecase/recommend"
	usageuc "github.com/scentify/scentcore/internal/usecase/usage"
)

const (
	defaultCacheTTL         = time.Hour
	defaultSessionTTL       = 24 * time.Hour
	defaultReadinessTimeout = 10 * time.Second
)

// Client is the scentcore SDK entry point.
type Client struct {
	store      kv.Store
	catalogSvc *cataloguc.Service
	recSvc     *recommenduc.Service
	usageSvc   *usageuc.Service
	clicks     *clicksrepo.Store
	provider   *fragella.Client
}

// New creates a scentcore Client.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		cacheDriver: "memory",
		cacheTTL:    defaultCacheTTL,
		sessionTTL:  defaultSessionTTL,
	}
	for _, o := range opts {
		o(cfg)
	}

	if cfg.apiKey == "" {
		return nil, errors.New("scentcore: provider API key required (use WithAPIKey)")
	}

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}
	if err := store.WaitForReady(context.Background(), defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("scentcore: cache store not ready: %w", err)
	}

	return wireClient(store, cfg, logger)
}

func createStore(cfg *clientConfig) (kv.Store, error) {
	switch cfg.cacheDriver {
	case "memory":
		return kvMemory.NewStore(), nil
	case "redis":
		s, err := kvRedis.NewStore(kvRedis.Config{
			Addrs:    cfg.cacheAddrs,
			Password: cfg.cachePass,
		})
		if err != nil {
			return nil, fmt.Errorf("scentcore: create redis store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("scentcore: unknown cache driver %q", cfg.cacheDriver)
	}
}

func wireClient(store kv.Store, cfg *clientConfig, logger *zap.Logger) (*Client, error) {
	provider := fragella.NewClient(&fragella.Config{
		BaseURL:     cfg.baseURL,
		APIKey:      cfg.apiKey,
		Timeout:     cfg.timeout,
		MaxAttempts: cfg.maxAttempts,
		Logger:      logger,
	})

	var source catalog.Source = provider
	if cfg.breaker {
		source = fragella.NewBreakerSource(source, logger)
	}
	source = respcache.New(source, store, cfg.cacheTTL, nil, logger)

	catalogSvc := cataloguc.New(source, provider, logger)
	if cfg.defaultLimit > 0 || cfg.maxLimit > 0 {
		catalogSvc = catalogSvc.WithLimits(cfg.defaultLimit, cfg.maxLimit)
	}
	if cfg.datasetPath != "" {
		ds, err := dataset.Load(cfg.datasetPath)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("scentcore: load fallback dataset: %w", err)
		}
		catalogSvc = catalogSvc.WithFallback(ds)
	}

	clicks := clicksrepo.New(store, cfg.sessionTTL)

	return &Client{
		store:      store,
		catalogSvc: catalogSvc,
		recSvc:     recommenduc.New(clicks, logger),
		usageSvc:   usageuc.New(provider),
		clicks:     clicks,
		provider:   provider,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks cache store connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search looks up fragrances by name or note. Queries shorter than three
// characters return an empty list.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]catalog.Record, error) {
	return c.catalogSvc.Search(ctx, query, limit)
}

// Match finds fragrances whose accord composition matches the given
// accord name to minimum-percentage weights.
func (c *Client) Match(ctx context.Context, weights map[string]int, limit int) ([]catalog.Record, error) {
	return c.catalogSvc.MatchAccords(ctx, weights, limit)
}

// Similar finds fragrances close to the named one.
func (c *Client) Similar(ctx context.Context, name string, limit int) ([]catalog.Record, error) {
	return c.catalogSvc.Similar(ctx, name, limit)
}

// ByBrand lists a brand's fragrances.
func (c *Client) ByBrand(ctx context.Context, brand string, limit int) ([]catalog.Record, error) {
	return c.catalogSvc.ByBrand(ctx, brand, limit)
}

// Notes searches the provider's note vocabulary.
func (c *Client) Notes(ctx context.Context, query string) ([]catalog.Term, error) {
	return c.catalogSvc.Notes(ctx, query)
}

// Accords searches the provider's accord vocabulary.
func (c *Client) Accords(ctx context.Context, query string) ([]catalog.Term, error) {
	return c.catalogSvc.Accords(ctx, query)
}

// RecordClick registers a click on a fragrance for the session and
// returns the updated click count.
func (c *Client) RecordClick(ctx context.Context, sessionID string, record catalog.Record) (int64, error) {
	return c.clicks.Record(ctx, sessionID, record.Identity())
}

// Personalize reorders candidates by the session's click-derived taste
// profile. Sessions without history get candidates back unscored in the
// original order.
func (c *Client) Personalize(ctx context.Context, sessionID string, candidates []catalog.Record) []recommenduc.Ranked {
	return c.recSvc.Personalize(ctx, sessionID, candidates)
}

// Usage reports the provider's remaining request budget.
func (c *Client) Usage(ctx context.Context) (usage.Report, error) {
	return c.usageSvc.GetReport(ctx)
}
