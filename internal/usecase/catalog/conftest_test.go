package catalog

import (
	"context"

	domcat "github.com/scentify/scentcore/internal/domain/catalog"
)

// mockSource implements Source for tests, recording the limits it receives.
type mockSource struct {
	records []domcat.Record
	err     error

	calls     int
	lastQuery string
	lastLimit int
}

func (m *mockSource) Search(_ context.Context, query string, limit int) ([]domcat.Record, error) {
	m.calls++
	m.lastQuery = query
	m.lastLimit = limit
	return m.records, m.err
}

func (m *mockSource) MatchAccords(_ context.Context, _ map[string]int, limit int) ([]domcat.Record, error) {
	m.calls++
	m.lastLimit = limit
	return m.records, m.err
}

func (m *mockSource) Similar(_ context.Context, name string, limit int) ([]domcat.Record, error) {
	m.calls++
	m.lastQuery = name
	m.lastLimit = limit
	return m.records, m.err
}

func (m *mockSource) ByBrand(_ context.Context, brand string, limit int) ([]domcat.Record, error) {
	m.calls++
	m.lastQuery = brand
	m.lastLimit = limit
	return m.records, m.err
}

// mockTermSource implements TermSource for tests.
type mockTermSource struct {
	terms []domcat.Term
	err   error
}

func (m *mockTermSource) Notes(_ context.Context, _ string) ([]domcat.Term, error) {
	return m.terms, m.err
}

func (m *mockTermSource) Accords(_ context.Context, _ string) ([]domcat.Term, error) {
	return m.terms, m.err
}

func testRecord(name, brand string) domcat.Record {
	return domcat.Reconstruct(name, brand, "", "", nil, 0, "", "", nil, nil, nil)
}
