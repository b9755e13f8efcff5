// Package catalog is the caller-facing fetch surface: it validates queries,
// delegates to the resilient source chain, and decides when a failed fetch
// may be served from the local fallback dataset instead.
package catalog

import (
	"context"
	"strings"

	"go.uber.org/zap"

	domcat "github.com/scentify/scentcore/internal/domain/catalog"
	"github.com/scentify/scentcore/internal/metrics"
)

const (
	defaultLimit   = 50
	maxLimit       = 100
	minQueryLength = 3
)

// Service coordinates catalog fetches.
type Service struct {
	primary  Source
	terms    TermSource
	fallback Source
	logger   *zap.Logger

	defaultLimit int
	maxLimit     int
	minQueryLen  int
}

// New creates a catalog service. terms may be nil when the provider lacks
// vocabulary endpoints.
func New(primary Source, terms TermSource, logger *zap.Logger) *Service {
	return &Service{
		primary:      primary,
		terms:        terms,
		logger:       logger,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
		minQueryLen:  minQueryLength,
	}
}

// WithFallback attaches a degraded-mode source consulted only after the
// primary returns a terminal error.
func (s *Service) WithFallback(fallback Source) *Service {
	s.fallback = fallback
	return s
}

// WithLimits overrides the result limit clamps.
func (s *Service) WithLimits(defaultLimit, maxLimit int) *Service {
	if defaultLimit > 0 {
		s.defaultLimit = defaultLimit
	}
	if maxLimit > 0 {
		s.maxLimit = maxLimit
	}
	return s
}

// Search runs a free-text search. Queries shorter than the minimum length
// return an empty list without touching the provider.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]domcat.Record, error) {
	query = strings.TrimSpace(query)
	if len(query) < s.minQueryLen {
		return []domcat.Record{}, nil
	}
	limit = s.clampLimit(limit)

	return s.fetch(ctx, "search", func(src Source) ([]domcat.Record, error) {
		return src.Search(ctx, query, limit)
	})
}

// MatchAccords finds records matching the accord weight filter.
func (s *Service) MatchAccords(ctx context.Context, weights map[string]int, limit int) ([]domcat.Record, error) {
	if len(weights) == 0 {
		return []domcat.Record{}, nil
	}
	limit = s.clampLimit(limit)

	return s.fetch(ctx, "match", func(src Source) ([]domcat.Record, error) {
		return src.MatchAccords(ctx, weights, limit)
	})
}

// Similar finds records similar to the named fragrance.
func (s *Service) Similar(ctx context.Context, name string, limit int) ([]domcat.Record, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return []domcat.Record{}, nil
	}
	limit = s.clampLimit(limit)

	return s.fetch(ctx, "similar", func(src Source) ([]domcat.Record, error) {
		return src.Similar(ctx, name, limit)
	})
}

// ByBrand lists a brand's records.
func (s *Service) ByBrand(ctx context.Context, brand string, limit int) ([]domcat.Record, error) {
	brand = strings.TrimSpace(brand)
	if brand == "" {
		return []domcat.Record{}, nil
	}
	limit = s.clampLimit(limit)

	return s.fetch(ctx, "brand", func(src Source) ([]domcat.Record, error) {
		return src.ByBrand(ctx, brand, limit)
	})
}

// Notes searches the note vocabulary.
func (s *Service) Notes(ctx context.Context, query string) ([]domcat.Term, error) {
	query = strings.TrimSpace(query)
	if query == "" || s.terms == nil {
		return []domcat.Term{}, nil
	}
	return s.terms.Notes(ctx, query)
}

// Accords searches the accord vocabulary.
func (s *Service) Accords(ctx context.Context, query string) ([]domcat.Term, error) {
	query = strings.TrimSpace(query)
	if query == "" || s.terms == nil {
		return []domcat.Term{}, nil
	}
	return s.terms.Accords(ctx, query)
}

// fetch tries the primary source and, on a terminal error, the fallback
// dataset. The primary never substitutes data itself; the degraded-mode
// decision lives here, with the caller.
func (s *Service) fetch(
	ctx context.Context, op string, call func(Source) ([]domcat.Record, error),
) ([]domcat.Record, error) {
	records, err := call(s.primary)
	if err == nil {
		return records, nil
	}
	if s.fallback == nil {
		return nil, err
	}

	s.logger.Warn("Provider fetch failed, serving fallback dataset",
		zap.String("op", op), zap.Error(err))
	metrics.FallbackTotal.WithLabelValues(op).Inc()

	return call(s.fallback)
}

func (s *Service) clampLimit(limit int) int {
	if limit <= 0 {
		return s.defaultLimit
	}
	if limit > s.maxLimit {
		return s.maxLimit
	}
	return limit
}
