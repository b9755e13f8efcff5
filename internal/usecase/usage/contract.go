package usage

import (
	"context"

	domusage "github.com/scentify/scentcore/internal/domain/usage"
)

// QuotaSource fetches the provider's request budget.
type QuotaSource interface {
	Usage(ctx context.Context) (domusage.Report, error)
}
