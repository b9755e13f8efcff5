package scentcore

import (
	"github.com/scentify/scentcore/internal/domain/catalog"
	"github.com/scentify/scentcore/internal/domain/profile"
	recommenduc "github.com/scentify/scentcore/internal/usecase/recommend"
)

// Re-exported domain types so SDK callers can run the ranking pipeline
// on their own data without the Client.

// Record is a catalog fragrance record.
type Record = catalog.Record

// Accord is a named scent accord with a strength descriptor.
type Accord = catalog.Accord

// Vector is a normalized accord-weight vector.
type Vector = profile.Vector

// ClickHistory maps record identities to click counts.
type ClickHistory = profile.ClickHistory

// Ranked is a record with its personalization score.
type Ranked = recommenduc.Ranked

// Encode converts a record's accords into a normalized weight vector.
func Encode(record Record) Vector {
	return recommenduc.Encode(record)
}

// BuildProfile folds a click history into a taste profile over the given
// records. The second return is false when the history is empty.
func BuildProfile(history ClickHistory, records []Record) (Vector, bool) {
	return recommenduc.BuildProfile(history, recommenduc.VectorIndex(records))
}

// Rank orders candidates by cosine similarity against the profile,
// highest first. A nil profile returns candidates unscored in their
// original order.
func Rank(candidates []Record, prof Vector) []Ranked {
	return recommenduc.Rank(candidates, prof)
}

// Cosine computes the similarity of two vectors in [0, 1].
func Cosine(a, b Vector) float64 {
	return profile.Cosine(a, b)
}
