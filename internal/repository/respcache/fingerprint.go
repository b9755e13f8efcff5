package respcache

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/scentify/scentcore/internal/domain"
)

var cacheKeyPrefix = domain.KeyPrefix + "respcache:"

// Fingerprint derives the deterministic cache key for a request: the
// endpoint plus its parameters in sorted order, hashed. Two requests with
// the same parameters in any order share a fingerprint.
func Fingerprint(endpoint string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(endpoint)
	for _, k := range keys {
		b.WriteByte('?')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(params[k])
	}

	h := sha256.Sum256([]byte(b.String()))
	return cacheKeyPrefix + hex.EncodeToString(h[:])
}
