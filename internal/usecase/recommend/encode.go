// Package recommend implements content-based personalization: records are
// encoded as weighted accord vectors, click histories fold into a preference
// profile, and candidate lists are reordered by cosine similarity to it.
// Every function here is pure and total; malformed input degrades to an
// empty or neutral value, never an error.
package recommend

import (
	"strings"

	"github.com/scentify/scentcore/internal/domain/catalog"
	"github.com/scentify/scentcore/internal/domain/profile"
)

// Encode converts a record into its weighted accord vector. Accord names are
// trimmed and lowercased; when a name repeats within one record, the later
// occurrence wins. Records without accord data encode to an empty vector.
func Encode(r catalog.Record) profile.Vector {
	vec := make(profile.Vector, len(r.Accords()))
	for _, a := range r.Accords() {
		name := strings.ToLower(strings.TrimSpace(a.Name()))
		if name == "" {
			continue
		}
		vec[name] = a.Strength().Weight()
	}
	return vec
}
