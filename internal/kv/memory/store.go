// Package memory implements kv.Store as a process-local map for single
// instance deployments and tests. Expiry is lazy: an expired entry is treated
// as absent on read and dropped then.
package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/scentify/scentcore/internal/kv"
)

// Compile-time check: Store implements kv.Store.
var _ kv.Store = (*Store)(nil)

type entry struct {
	value     []byte
	expiresAt time.Time // zero means no expiry
}

type hashEntry struct {
	fields    map[string]string
	expiresAt time.Time
}

// Store is an in-process kv.Store safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	values map[string]entry
	hashes map[string]hashEntry

	// now is swappable in tests.
	now func() time.Time
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		values: make(map[string]entry),
		hashes: make(map[string]hashEntry),
		now:    time.Now,
	}
}

// Get retrieves a value. Expired entries behave as absent.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.values[key]
	if !ok {
		return nil, kv.ErrKeyNotFound
	}
	if s.expired(e.expiresAt) {
		delete(s.values, key)
		return nil, kv.ErrKeyNotFound
	}

	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, nil
}

// SetWithTTL stores a value, replacing any prior entry under the key.
func (s *Store) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	s.values[key] = entry{value: stored, expiresAt: expiresAt}
	s.mu.Unlock()
	return nil
}

// HIncrBy atomically increments a hash field and returns the new value.
func (s *Store) HIncrBy(_ context.Context, key, field string, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.hashes[key]
	if !ok || s.expired(h.expiresAt) {
		h = hashEntry{fields: make(map[string]string)}
	}

	cur, _ := strconv.ParseInt(h.fields[field], 10, 64)
	cur += delta
	h.fields[field] = strconv.FormatInt(cur, 10)
	s.hashes[key] = h
	return cur, nil
}

// HGetAll returns a copy of all fields of a hash.
func (s *Store) HGetAll(_ context.Context, key string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.hashes[key]
	if !ok {
		return map[string]string{}, nil
	}
	if s.expired(h.expiresAt) {
		delete(s.hashes, key)
		return map[string]string{}, nil
	}

	out := make(map[string]string, len(h.fields))
	for k, v := range h.fields {
		out[k] = v
	}
	return out, nil
}

// Expire sets a TTL on a key (value or hash). With nx, keys that already
// carry an expiry are left untouched.
func (s *Store) Expire(_ context.Context, key string, ttl time.Duration, nx bool) error {
	expiresAt := s.now().Add(ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.values[key]; ok {
		if !nx || e.expiresAt.IsZero() {
			e.expiresAt = expiresAt
			s.values[key] = e
		}
	}
	if h, ok := s.hashes[key]; ok {
		if !nx || h.expiresAt.IsZero() {
			h.expiresAt = expiresAt
			s.hashes[key] = h
		}
	}
	return nil
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// WaitForReady returns immediately.
func (s *Store) WaitForReady(context.Context, time.Duration) error { return nil }

// Close is a no-op.
func (s *Store) Close() {}

// SetNow replaces the clock. Test helper.
func (s *Store) SetNow(now func() time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}

func (s *Store) expired(expiresAt time.Time) bool {
	return !expiresAt.IsZero() && !s.now().Before(expiresAt)
}
