package scentcore

import (
	"time"

	"go.uber.org/zap"
)

// Option configures the Client.
type Option func(*clientConfig)

type clientConfig struct {
	baseURL     string
	apiKey      string
	timeout     time.Duration
	maxAttempts int

	cacheDriver string // "memory" or "redis"
	cacheAddrs  []string
	cachePass   string
	cacheTTL    time.Duration

	sessionTTL  time.Duration
	datasetPath string
	breaker     bool

	defaultLimit int
	maxLimit     int

	logger *zap.Logger
}

// WithAPIKey sets the provider API key sent with every request.
func WithAPIKey(key string) Option {
	return func(c *clientConfig) {
		c.apiKey = key
	}
}

// WithBaseURL overrides the provider base URL.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithTimeout bounds a single provider attempt. Default: 10s.
func WithTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = d
	}
}

// WithMaxAttempts sets the retry budget per provider call. Default: 3.
func WithMaxAttempts(n int) Option {
	return func(c *clientConfig) {
		c.maxAttempts = n
	}
}

// WithRedis stores response cache entries and click history in Redis.
func WithRedis(addr, password string) Option {
	return func(c *clientConfig) {
		c.cacheDriver = "redis"
		c.cacheAddrs = []string{addr}
		c.cachePass = password
	}
}

// WithMemoryCache keeps cache entries and click history in process memory.
// This is the default.
func WithMemoryCache() Option {
	return func(c *clientConfig) {
		c.cacheDriver = "memory"
	}
}

// WithCacheTTL sets how long cached provider responses stay fresh.
// Default: 1h.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *clientConfig) {
		c.cacheTTL = ttl
	}
}

// WithSessionTTL sets the idle expiry for click sessions. Default: 24h.
func WithSessionTTL(ttl time.Duration) Option {
	return func(c *clientConfig) {
		c.sessionTTL = ttl
	}
}

// WithFallbackDataset serves results from a local JSON dataset when the
// provider is unreachable.
func WithFallbackDataset(path string) Option {
	return func(c *clientConfig) {
		c.datasetPath = path
	}
}

// WithCircuitBreaker wraps the provider client in a circuit breaker.
func WithCircuitBreaker() Option {
	return func(c *clientConfig) {
		c.breaker = true
	}
}

// WithLimits sets the default and maximum result list sizes.
// Defaults: 50 and 100.
func WithLimits(defaultLimit, maxLimit int) Option {
	return func(c *clientConfig) {
		c.defaultLimit = defaultLimit
		c.maxLimit = maxLimit
	}
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}
