// Package usage models the provider's request-quota report.
package usage

// Report describes the remaining request budget against the provider.
type Report struct {
	remaining int64
	limit     int64
	resetAt   string
}

// New creates a usage report.
func New(remaining, limit int64, resetAt string) Report {
	return Report{remaining: remaining, limit: limit, resetAt: resetAt}
}

// Remaining returns the number of requests left in the current window.
func (r Report) Remaining() int64 { return r.remaining }

// Limit returns the total request budget. Zero means the provider did not
// report one.
func (r Report) Limit() int64 { return r.limit }

// ResetAt returns the provider's reset timestamp as an opaque string.
func (r Report) ResetAt() string { return r.resetAt }

// Exhausted reports whether the budget is known to be spent.
func (r Report) Exhausted() bool { return r.limit > 0 && r.remaining <= 0 }
