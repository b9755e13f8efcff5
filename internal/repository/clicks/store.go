// Package clicks persists per-session click histories as store hashes:
// one hash per session, one field per record identity.
package clicks

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/scentify/scentcore/internal/domain"
	"github.com/scentify/scentcore/internal/domain/profile"
)

var clickKeyPrefix = domain.KeyPrefix + "clicks:"

// store is the consumer interface for click operations (ISP).
type store interface {
	HIncrBy(ctx context.Context, key, field string, delta int64) (int64, error)
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
}

// Store tracks click counts per session.
type Store struct {
	store      store
	sessionTTL time.Duration
}

// New creates a click store. sessionTTL bounds how long an idle session's
// history survives.
func New(s store, sessionTTL time.Duration) *Store {
	return &Store{store: s, sessionTTL: sessionTTL}
}

// Record increments the click count for a record identity within a session
// and returns the new count. The session TTL is set only on first write so
// repeated clicks do not extend it.
func (s *Store) Record(ctx context.Context, sessionID, identity string) (int64, error) {
	key := s.key(sessionID)

	count, err := s.store.HIncrBy(ctx, key, identity, 1)
	if err != nil {
		return 0, fmt.Errorf("clicks HINCRBY %s: %w", key, err)
	}

	if err := s.store.Expire(ctx, key, s.sessionTTL, true); err != nil {
		return 0, fmt.Errorf("clicks EXPIRE %s: %w", key, err)
	}

	return count, nil
}

// History returns the session's click history. Unknown sessions yield an
// empty history. Fields that fail to parse or carry negative counts are
// dropped rather than corrupting the profile.
func (s *Store) History(ctx context.Context, sessionID string) (profile.ClickHistory, error) {
	key := s.key(sessionID)

	fields, err := s.store.HGetAll(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("clicks HGETALL %s: %w", key, err)
	}

	history := make(profile.ClickHistory, len(fields))
	for identity, raw := range fields {
		count, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || count <= 0 {
			continue
		}
		history[identity] = count
	}
	return history, nil
}

func (s *Store) key(sessionID string) string {
	return clickKeyPrefix + sessionID
}
