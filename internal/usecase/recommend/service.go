package recommend

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/scentify/scentcore/internal/domain/catalog"
	"github.com/scentify/scentcore/internal/domain/profile"
)

// Service ties the pure ranking functions to a session's stored clicks.
type Service struct {
	clicks ClickReader
	logger *zap.Logger
}

// New creates a recommendation service.
func New(clicks ClickReader, logger *zap.Logger) *Service {
	return &Service{clicks: clicks, logger: logger}
}

// Personalize reorders candidates by the session's inferred preference.
// Sessions without history, and click store failures, fall back to the
// original order unscored; personalization must never break a result list.
func (s *Service) Personalize(ctx context.Context, sessionID string, candidates []catalog.Record) []Ranked {
	prof := s.profileFor(ctx, sessionID, candidates)
	return Rank(candidates, prof)
}

// AccordPreference is one accord of a session profile, strongest first.
type AccordPreference struct {
	Accord string
	Weight float64
}

// Preferences returns the session's profile accords sorted by weight
// descending, ties broken by name for stable output.
func (s *Service) Preferences(ctx context.Context, sessionID string, known []catalog.Record) []AccordPreference {
	prof := s.profileFor(ctx, sessionID, known)
	if prof == nil {
		return nil
	}

	prefs := make([]AccordPreference, 0, len(prof))
	for accord, weight := range prof {
		prefs = append(prefs, AccordPreference{Accord: accord, Weight: weight})
	}
	sort.Slice(prefs, func(i, j int) bool {
		if prefs[i].Weight != prefs[j].Weight {
			return prefs[i].Weight > prefs[j].Weight
		}
		return prefs[i].Accord < prefs[j].Accord
	})
	return prefs
}

func (s *Service) profileFor(ctx context.Context, sessionID string, known []catalog.Record) profile.Vector {
	if sessionID == "" || s.clicks == nil {
		return nil
	}

	history, err := s.clicks.History(ctx, sessionID)
	if err != nil {
		s.logger.Warn("Failed to load click history, skipping personalization",
			zap.String("session_id", sessionID), zap.Error(err))
		return nil
	}

	prof, ok := BuildProfile(history, VectorIndex(known))
	if !ok {
		return nil
	}
	return prof
}
