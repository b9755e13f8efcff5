package recommend

import (
	"github.com/scentify/scentcore/internal/domain/catalog"
	"github.com/scentify/scentcore/internal/domain/profile"
)

// BuildProfile folds a click history into a preference vector: the centroid
// of the clicked records' vectors weighted by click count, normalized by the
// total number of clicks. Returns (nil, false) when the history is empty,
// no personalization yet. Identities the vector source does not know
// contribute nothing. The function builds a fresh profile on every call, so
// identical inputs always produce identical profiles.
func BuildProfile(
	history profile.ClickHistory,
	vectorOf func(identity string) (profile.Vector, bool),
) (profile.Vector, bool) {
	total := history.Total()
	if total <= 0 {
		return nil, false
	}

	acc := make(profile.Vector)
	for identity, count := range history {
		if count <= 0 {
			continue
		}
		vec, ok := vectorOf(identity)
		if !ok {
			continue
		}
		for accord, weight := range vec {
			acc[accord] += weight * float64(count)
		}
	}

	for accord := range acc {
		acc[accord] /= float64(total)
	}
	return acc, true
}

// VectorIndex builds a vectorOf lookup from the given records, encoding each
// once. Later records win on identity collision.
func VectorIndex(records []catalog.Record) func(string) (profile.Vector, bool) {
	index := make(map[string]profile.Vector, len(records))
	for _, r := range records {
		index[r.Identity()] = Encode(r)
	}
	return func(identity string) (profile.Vector, bool) {
		vec, ok := index[identity]
		return vec, ok
	}
}
