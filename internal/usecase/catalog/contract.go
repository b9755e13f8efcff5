package catalog

import (
	"context"

	domcat "github.com/scentify/scentcore/internal/domain/catalog"
)

// Source fetches records from a provider (primary or fallback).
type Source = domcat.Source

// TermSource searches the provider's note and accord vocabularies.
type TermSource interface {
	Notes(ctx context.Context, query string) ([]domcat.Term, error)
	Accords(ctx context.Context, query string) ([]domcat.Term, error)
}
