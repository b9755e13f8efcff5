package recommend

import (
	"sort"

	"github.com/scentify/scentcore/internal/domain/catalog"
	"github.com/scentify/scentcore/internal/domain/profile"
)

// Ranked is a catalog record with its similarity score against a profile.
type Ranked struct {
	record catalog.Record
	score  float64
	scored bool
}

// NewRanked creates a ranked result.
func NewRanked(record catalog.Record, score float64, scored bool) Ranked {
	return Ranked{record: record, score: score, scored: scored}
}

// Record returns the catalog record.
func (r Ranked) Record() catalog.Record { return r.record }

// Score returns the similarity score in [0,1]. Meaningful only when Scored.
func (r Ranked) Score() float64 { return r.score }

// Scored reports whether a profile existed to score against.
func (r Ranked) Scored() bool { return r.scored }

// Rank orders candidates by similarity to the profile, highest first. Equal
// scores keep the candidates' original relative order, so repeated calls
// with identical inputs are deterministic. A nil or zero profile returns the
// candidates unscored in their original order; personalization is strictly
// additive.
func Rank(candidates []catalog.Record, prof profile.Vector) []Ranked {
	out := make([]Ranked, len(candidates))

	if prof == nil || prof.IsZero() {
		for i, r := range candidates {
			out[i] = NewRanked(r, 0, false)
		}
		return out
	}

	for i, r := range candidates {
		out[i] = NewRanked(r, profile.Cosine(prof, Encode(r)), true)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].score > out[j].score })
	return out
}
