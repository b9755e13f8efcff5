package respcache

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/scentify/scentcore/internal/domain/catalog"
	"github.com/scentify/scentcore/internal/kv"
)

// mockSource implements catalog.Source for tests, counting calls.
type mockSource struct {
	records     []catalog.Record
	err         error
	searchCalls int
}

func (m *mockSource) Search(_ context.Context, _ string, _ int) ([]catalog.Record, error) {
	m.searchCalls++
	return m.records, m.err
}

func (m *mockSource) MatchAccords(_ context.Context, _ map[string]int, _ int) ([]catalog.Record, error) {
	return m.records, m.err
}

func (m *mockSource) Similar(_ context.Context, _ string, _ int) ([]catalog.Record, error) {
	return m.records, m.err
}

func (m *mockSource) ByBrand(_ context.Context, _ string, _ int) ([]catalog.Record, error) {
	return m.records, m.err
}

// mockStore implements the consumer interface for tests.
type mockStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, kv.ErrKeyNotFound
}

func (m *mockStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

func testRecord(name, brand string, accords ...catalog.Accord) catalog.Record {
	return catalog.Reconstruct(name, brand, "", "", nil, 0, "", "", nil, nil, accords)
}

func newTestCache(inner *mockSource, ms *mockStore) *CachedSource {
	return New(inner, ms, time.Minute, nil, zap.NewNop())
}
