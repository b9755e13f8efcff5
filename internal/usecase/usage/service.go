// Package usage reports the provider's remaining request quota. The quota
// endpoint is polled opportunistically: reports are cached in-process and
// refreshed only when stale, so quota checks never sit on the fetch path.
package usage

import (
	"context"
	"fmt"
	"sync"
	"time"

	domusage "github.com/scentify/scentcore/internal/domain/usage"
)

const defaultRefreshInterval = time.Hour

// Service caches quota reports from the provider.
type Service struct {
	src      QuotaSource
	interval time.Duration

	mu        sync.Mutex
	report    domusage.Report
	fetchedAt time.Time

	// now is swappable in tests.
	now func() time.Time
}

// New creates a usage service.
func New(src QuotaSource) *Service {
	return &Service{
		src:      src,
		interval: defaultRefreshInterval,
		now:      time.Now,
	}
}

// WithRefreshInterval overrides how long a cached report stays fresh.
func (s *Service) WithRefreshInterval(interval time.Duration) *Service {
	if interval > 0 {
		s.interval = interval
	}
	return s
}

// GetReport returns the cached quota report, refreshing it when stale.
// A refresh failure with a previously cached report falls back to the stale
// one; quota visibility is best-effort.
func (s *Service) GetReport(ctx context.Context) (domusage.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fresh := !s.fetchedAt.IsZero() && s.now().Sub(s.fetchedAt) < s.interval
	if fresh {
		return s.report, nil
	}

	report, err := s.src.Usage(ctx)
	if err != nil {
		if !s.fetchedAt.IsZero() {
			return s.report, nil
		}
		return domusage.Report{}, fmt.Errorf("fetch usage: %w", err)
	}

	s.report = report
	s.fetchedAt = s.now()
	return report, nil
}
