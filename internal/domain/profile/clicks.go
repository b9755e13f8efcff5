package profile

// ClickHistory maps a record identity to its non-negative click count.
// Owned by the caller; the profile builder only reads it.
type ClickHistory map[string]int64

// Total returns the sum of all click counts.
func (h ClickHistory) Total() int64 {
	var total int64
	for _, n := range h {
		total += n
	}
	return total
}
