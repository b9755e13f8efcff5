// Package fragella is the outbound client for the Fragella catalog API.
// It owns the retry policy and normalizes the provider's loosely shaped
// payloads into domain records at this boundary; nothing untyped leaks past it.
package fragella

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/scentify/scentcore/internal/domain"
	"github.com/scentify/scentcore/internal/domain/catalog"
	"github.com/scentify/scentcore/internal/domain/usage"
	"github.com/scentify/scentcore/internal/metrics"
)

// API endpoints. Also used as cache fingerprint components.
const (
	EndpointSearch  = "/fragrances"
	EndpointMatch   = "/fragrances/match"
	EndpointSimilar = "/fragrances/similar"
	EndpointBrands  = "/brands"
	EndpointNotes   = "/notes"
	EndpointAccords = "/accords"
	EndpointUsage   = "/usage"
)

const (
	defaultTimeout     = 10 * time.Second
	defaultMaxAttempts = 3
	defaultRetryBase   = time.Second
	defaultRetryMax    = 30 * time.Second
)

// Config holds the provider connection settings.
type Config struct {
	BaseURL string
	APIKey  string
	// Timeout bounds a single attempt, not the whole call.
	Timeout     time.Duration
	MaxAttempts int
	// RetryBase is the first backoff interval after a rate-limited response;
	// subsequent ones double, capped at RetryMax.
	RetryBase time.Duration
	RetryMax  time.Duration
	Logger    *zap.Logger
	// HTTPClient overrides the transport. Tests inject httptest clients here.
	HTTPClient *http.Client
}

// Client issues requests against the catalog provider.
type Client struct {
	http        *http.Client
	baseURL     string
	apiKey      string
	timeout     time.Duration
	maxAttempts int
	retryBase   time.Duration
	retryMax    time.Duration
	logger      *zap.Logger
}

// NewClient creates a provider client.
func NewClient(cfg *Config) *Client {
	c := &Client{
		http:        cfg.HTTPClient,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		timeout:     cfg.Timeout,
		maxAttempts: cfg.MaxAttempts,
		retryBase:   cfg.RetryBase,
		retryMax:    cfg.RetryMax,
		logger:      cfg.Logger,
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	if c.maxAttempts <= 0 {
		c.maxAttempts = defaultMaxAttempts
	}
	if c.retryBase <= 0 {
		c.retryBase = defaultRetryBase
	}
	if c.retryMax <= 0 {
		c.retryMax = defaultRetryMax
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

// Search runs a free-text catalog search.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]catalog.Record, error) {
	params := url.Values{}
	params.Set("search", query)
	params.Set("limit", strconv.Itoa(limit))
	return c.fetchRecords(ctx, EndpointSearch, params)
}

// MatchAccords finds records matching accord weights ("name:percent" pairs).
// Pairs are sorted by name so identical filters produce identical requests.
func (c *Client) MatchAccords(ctx context.Context, weights map[string]int, limit int) ([]catalog.Record, error) {
	params := url.Values{}
	params.Set("accords", FormatAccordFilter(weights))
	params.Set("limit", strconv.Itoa(limit))
	return c.fetchRecords(ctx, EndpointMatch, params)
}

// Similar finds records similar to the named fragrance.
func (c *Client) Similar(ctx context.Context, name string, limit int) ([]catalog.Record, error) {
	params := url.Values{}
	params.Set("name", name)
	params.Set("limit", strconv.Itoa(limit))
	return c.fetchRecords(ctx, EndpointSimilar, params)
}

// ByBrand lists a brand's records. The provider ignores limits on this
// endpoint, so the list is truncated client-side.
func (c *Client) ByBrand(ctx context.Context, brand string, limit int) ([]catalog.Record, error) {
	endpoint := EndpointBrands + "/" + url.PathEscape(brand)
	records, err := c.fetchRecords(ctx, endpoint, url.Values{})
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// Notes searches the note vocabulary.
func (c *Client) Notes(ctx context.Context, query string) ([]catalog.Term, error) {
	params := url.Values{}
	params.Set("search", query)
	return c.fetchTerms(ctx, EndpointNotes, params, "notes")
}

// Accords searches the accord vocabulary.
func (c *Client) Accords(ctx context.Context, query string) ([]catalog.Term, error) {
	params := url.Values{}
	params.Set("search", query)
	return c.fetchTerms(ctx, EndpointAccords, params, "accords")
}

// Usage fetches the provider's remaining request budget.
func (c *Client) Usage(ctx context.Context) (usage.Report, error) {
	body, err := c.do(ctx, EndpointUsage, url.Values{})
	if err != nil {
		return usage.Report{}, err
	}
	return decodeUsage(body)
}

// HealthCheck probes the provider via the usage endpoint.
func (c *Client) HealthCheck(ctx context.Context) error {
	if _, err := c.Usage(ctx); err != nil {
		return fmt.Errorf("provider health check: %w", err)
	}
	return nil
}

func (c *Client) fetchRecords(ctx context.Context, endpoint string, params url.Values) ([]catalog.Record, error) {
	body, err := c.do(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}
	records, err := DecodeRecords(body)
	if err != nil {
		// Malformed success payload degrades to an empty result; downstream
		// ranking prefers an empty list over a crash.
		c.logger.Warn("Unrecognized provider payload",
			zap.String("endpoint", endpoint), zap.Error(err))
		return []catalog.Record{}, nil
	}
	return records, nil
}

func (c *Client) fetchTerms(ctx context.Context, endpoint string, params url.Values, wrapKey string) ([]catalog.Term, error) {
	body, err := c.do(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}
	terms, err := decodeTerms(body, wrapKey)
	if err != nil {
		c.logger.Warn("Unrecognized provider payload",
			zap.String("endpoint", endpoint), zap.Error(err))
		return []catalog.Term{}, nil
	}
	return terms, nil
}

// do issues the request with bounded retries. Rate-limited responses back
// off exponentially; timeouts retry immediately; anything else is terminal.
// A 404 yields an empty body so callers surface an empty result.
func (c *Client) do(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	var lastTransient error

	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		body, err := c.attempt(ctx, endpoint, params)
		switch {
		case err == nil:
			return body, nil
		case errors.Is(err, domain.ErrRateLimited):
			lastTransient = err
			metrics.ProviderRetriesTotal.WithLabelValues("rate_limited").Inc()
			c.logger.Warn("Provider rate limited, backing off",
				zap.String("endpoint", endpoint), zap.Int("attempt", attempt+1))
			if werr := c.backoff(ctx, attempt); werr != nil {
				return nil, werr
			}
		case errors.Is(err, domain.ErrTimeout):
			lastTransient = err
			metrics.ProviderRetriesTotal.WithLabelValues("timeout").Inc()
			c.logger.Warn("Provider attempt timed out",
				zap.String("endpoint", endpoint), zap.Int("attempt", attempt+1))
			// No backoff multiplier for timeouts; retry right away.
		default:
			return nil, err
		}
	}

	return nil, domain.NewRetriesExhausted(c.maxAttempts, lastTransient)
}

func (c *Client) attempt(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reqURL := c.baseURL + endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)

	if err != nil {
		if ctx.Err() != nil {
			// Caller gave up; not the provider's fault.
			return nil, ctx.Err()
		}
		metrics.ProviderRequestsTotal.WithLabelValues(endpoint, "timeout").Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		metrics.ProviderRequestsTotal.WithLabelValues(endpoint, "rate_limited").Inc()
		return nil, domain.ErrRateLimited
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		metrics.ProviderRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("%w: status %d", domain.ErrUnauthorized, resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		metrics.ProviderRequestsTotal.WithLabelValues(endpoint, "success").Inc()
		return nil, nil
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			metrics.ProviderRequestsTotal.WithLabelValues(endpoint, "timeout").Inc()
			return nil, fmt.Errorf("%w: read body: %v", domain.ErrTimeout, readErr)
		}
		metrics.ProviderRequestsTotal.WithLabelValues(endpoint, "success").Inc()
		metrics.ProviderRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
		return body, nil
	default:
		metrics.ProviderRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return nil, domain.NewRemoteStatus(resp.StatusCode)
	}
}

// backoff waits retryBase << attempt (capped at retryMax), honoring ctx.
func (c *Client) backoff(ctx context.Context, attempt int) error {
	delay := c.retryBase << uint(attempt)
	if delay > c.retryMax || delay <= 0 {
		delay = c.retryMax
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// FormatAccordFilter renders accord weights as the provider's
// "name:percent" comma list, sorted by name for determinism.
func FormatAccordFilter(weights map[string]int) string {
	names := make([]string, 0, len(weights))
	for name := range weights {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, fmt.Sprintf("%s:%d", name, weights[name]))
	}
	return strings.Join(pairs, ",")
}
