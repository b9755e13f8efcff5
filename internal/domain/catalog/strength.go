package catalog

// Strength is the qualitative prominence of an accord within a fragrance.
type Strength string

// The five strength descriptors the provider emits, strongest first.
const (
	StrengthDominant  Strength = "Dominant"
	StrengthProminent Strength = "Prominent"
	StrengthModerate  Strength = "Moderate"
	StrengthSubtle    Strength = "Subtle"
	StrengthTrace     Strength = "Trace"
)

// unknownStrengthWeight is used when the provider sends a descriptor outside
// the known vocabulary.
const unknownStrengthWeight = 0.5

var strengthWeights = map[Strength]float64{
	StrengthDominant:  1.0,
	StrengthProminent: 0.8,
	StrengthModerate:  0.6,
	StrengthSubtle:    0.3,
	StrengthTrace:     0.1,
}

// Weight maps the descriptor to its numeric weight in (0,1].
func (s Strength) Weight() float64 {
	if w, ok := strengthWeights[s]; ok {
		return w
	}
	return unknownStrengthWeight
}

// Known reports whether the descriptor belongs to the fixed vocabulary.
func (s Strength) Known() bool {
	_, ok := strengthWeights[s]
	return ok
}
