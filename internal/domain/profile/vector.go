// Package profile holds the feature-vector model used for personalization:
// sparse accord vectors, click histories, and the similarity measure that
// compares them.
package profile

import "math"

// Vector is a sparse feature vector over accord names. An absent key means
// weight zero; present weights stay within [0,1].
type Vector map[string]float64

// IsZero reports whether the vector carries no weight at all.
func (v Vector) IsZero() bool {
	for _, w := range v {
		if w != 0 {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	for k, w := range v {
		out[k] = w
	}
	return out
}

// Cosine returns the cosine similarity between a and b over the union of
// their keys. A zero-norm side yields 0 rather than NaN, and the result is
// clamped into [0,1] to absorb floating-point overshoot.
func Cosine(a, b Vector) float64 {
	var dot, normA, normB float64
	for k, wa := range a {
		dot += wa * b[k]
		normA += wa * wa
	}
	for _, wb := range b {
		normB += wb * wb
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if sim < 0 {
		return 0
	}
	if sim > 1 {
		return 1
	}
	return sim
}
