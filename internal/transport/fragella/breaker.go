package fragella

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/scentify/scentcore/internal/domain"
	"github.com/scentify/scentcore/internal/domain/catalog"
	"github.com/scentify/scentcore/internal/metrics"
)

const breakerName = "fragella-api"

// BreakerSource wraps a catalog source with a circuit breaker so a dead
// provider fails fast instead of burning the retry budget on every call.
type BreakerSource struct {
	inner catalog.Source
	cb    *gobreaker.CircuitBreaker[[]catalog.Record]
}

var _ catalog.Source = (*BreakerSource)(nil)

// NewBreakerSource creates the breaker decorator. The circuit opens after a
// 60% failure rate over at least 10 requests in a one-minute window, and
// probes recovery after 30 seconds.
func NewBreakerSource(inner catalog.Source, logger *zap.Logger) *BreakerSource {
	metrics.BreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]catalog.Record](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("Provider circuit state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			metrics.BreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})

	return &BreakerSource{inner: inner, cb: cb}
}

// Search implements catalog.Source.
func (b *BreakerSource) Search(ctx context.Context, query string, limit int) ([]catalog.Record, error) {
	return b.execute(func() ([]catalog.Record, error) {
		return b.inner.Search(ctx, query, limit)
	})
}

// MatchAccords implements catalog.Source.
func (b *BreakerSource) MatchAccords(ctx context.Context, weights map[string]int, limit int) ([]catalog.Record, error) {
	return b.execute(func() ([]catalog.Record, error) {
		return b.inner.MatchAccords(ctx, weights, limit)
	})
}

// Similar implements catalog.Source.
func (b *BreakerSource) Similar(ctx context.Context, name string, limit int) ([]catalog.Record, error) {
	return b.execute(func() ([]catalog.Record, error) {
		return b.inner.Similar(ctx, name, limit)
	})
}

// ByBrand implements catalog.Source.
func (b *BreakerSource) ByBrand(ctx context.Context, brand string, limit int) ([]catalog.Record, error) {
	return b.execute(func() ([]catalog.Record, error) {
		return b.inner.ByBrand(ctx, brand, limit)
	})
}

func (b *BreakerSource) execute(fn func() ([]catalog.Record, error)) ([]catalog.Record, error) {
	records, err := b.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: circuit open", domain.ErrUnavailable)
		}
		return nil, err
	}
	return records, nil
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	default:
		return 2
	}
}
