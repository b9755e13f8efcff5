package recommend

import (
	"context"

	"github.com/scentify/scentcore/internal/domain/catalog"
	"github.com/scentify/scentcore/internal/domain/profile"
)

// mockClickReader implements ClickReader for tests.
type mockClickReader struct {
	historyFn func(ctx context.Context, sessionID string) (profile.ClickHistory, error)
}

func (m *mockClickReader) History(ctx context.Context, sessionID string) (profile.ClickHistory, error) {
	if m.historyFn != nil {
		return m.historyFn(ctx, sessionID)
	}
	return profile.ClickHistory{}, nil
}

func record(name, brand string, accords ...catalog.Accord) catalog.Record {
	return catalog.Reconstruct(name, brand, "", "", nil, 0, "", "", nil, nil, accords)
}

func accord(name string, strength catalog.Strength) catalog.Accord {
	return catalog.NewAccord(name, strength)
}
