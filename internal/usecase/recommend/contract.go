package recommend

import (
	"context"

	"github.com/scentify/scentcore/internal/domain/profile"
)

// ClickReader reads a session's click history.
type ClickReader interface {
	History(ctx context.Context, sessionID string) (profile.ClickHistory, error)
}
