package chi

import (
	"context"
	"net/http/httptest"
	"time"

	chirouter "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	domcat "github.com/scentify/scentcore/internal/domain/catalog"
	"github.com/scentify/scentcore/internal/domain/profile"
	domusage "github.com/scentify/scentcore/internal/domain/usage"
	cataloguc "github.com/scentify/scentcore/internal/usecase/catalog"
	healthuc "github.com/scentify/scentcore/internal/usecase/health"
	recommenduc "github.com/scentify/scentcore/internal/usecase/recommend"
	usageuc "github.com/scentify/scentcore/internal/usecase/usage"
)

// mockSource implements the catalog source for handler tests.
type mockSource struct {
	records []domcat.Record
	err     error
}

func (m *mockSource) Search(_ context.Context, _ string, _ int) ([]domcat.Record, error) {
	return m.records, m.err
}

func (m *mockSource) MatchAccords(_ context.Context, _ map[string]int, _ int) ([]domcat.Record, error) {
	return m.records, m.err
}

func (m *mockSource) Similar(_ context.Context, _ string, _ int) ([]domcat.Record, error) {
	return m.records, m.err
}

func (m *mockSource) ByBrand(_ context.Context, _ string, _ int) ([]domcat.Record, error) {
	return m.records, m.err
}

// mockClicks implements the Clicks interface.
type mockClicks struct {
	count   int64
	err     error
	history profile.ClickHistory

	lastSession  string
	lastIdentity string
}

func (m *mockClicks) Record(_ context.Context, sessionID, identity string) (int64, error) {
	m.lastSession = sessionID
	m.lastIdentity = identity
	return m.count, m.err
}

func (m *mockClicks) History(_ context.Context, _ string) (profile.ClickHistory, error) {
	return m.history, nil
}

type mockQuotaSource struct {
	report domusage.Report
	err    error
}

func (m *mockQuotaSource) Usage(_ context.Context) (domusage.Report, error) {
	return m.report, m.err
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

func testRecord(name, brand string, accords ...domcat.Accord) domcat.Record {
	return domcat.Reconstruct(name, brand, "", "", nil, 0, "", "", nil, nil, accords)
}

// newTestServer wires a Server from mocks and mounts it on a router.
func newTestServer(source *mockSource, clicks *mockClicks, quota *mockQuotaSource) *httptest.Server {
	logger := zap.NewNop()
	if clicks == nil {
		clicks = &mockClicks{}
	}
	if quota == nil {
		quota = &mockQuotaSource{report: domusage.New(100, 1000, "")}
	}

	catalogSvc := cataloguc.New(source, nil, logger)
	recSvc := recommenduc.New(clicks, logger)
	usageSvc := usageuc.New(quota).WithRefreshInterval(time.Nanosecond)
	healthSvc := healthuc.New(&mockPinger{}, nil)

	server := NewServer(catalogSvc, recSvc, clicks, usageSvc, healthSvc, logger)
	r := chirouter.NewRouter()
	server.Routes(r)
	return httptest.NewServer(r)
}
