package catalog

import "context"

// Source fetches catalog records from a provider. Implementations return a
// possibly empty list; a terminal error means the provider could not serve
// the request at all. Sources never substitute fallback data; that decision
// belongs to the caller.
type Source interface {
	Search(ctx context.Context, query string, limit int) ([]Record, error)
	MatchAccords(ctx context.Context, weights map[string]int, limit int) ([]Record, error)
	Similar(ctx context.Context, name string, limit int) ([]Record, error)
	ByBrand(ctx context.Context, brand string, limit int) ([]Record, error)
}
