package recommend

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/scentify/scentcore/internal/domain/catalog"
	"github.com/scentify/scentcore/internal/domain/profile"
)

func TestPersonalize_UsesClickHistory(t *testing.T) {
	woody := record("Woody One", "B", accord("woody", catalog.StrengthDominant))
	citrus := record("Citrus One", "B", accord("citrus", catalog.StrengthDominant))

	clicks := &mockClickReader{
		historyFn: func(_ context.Context, sessionID string) (profile.ClickHistory, error) {
			if sessionID != "s1" {
				t.Fatalf("unexpected session id %q", sessionID)
			}
			return profile.ClickHistory{woody.Identity(): 3}, nil
		},
	}
	svc := New(clicks, zap.NewNop())

	ranked := svc.Personalize(context.Background(), "s1", []catalog.Record{citrus, woody})

	if ranked[0].Record().Name() != "Woody One" {
		t.Fatalf("expected clicked accord to rank first, got %q", ranked[0].Record().Name())
	}
	if !ranked[0].Scored() {
		t.Fatal("expected scored results")
	}
}

func TestPersonalize_EmptySessionSkips(t *testing.T) {
	x := record("X", "B", accord("woody", catalog.StrengthDominant))
	clicks := &mockClickReader{
		historyFn: func(_ context.Context, _ string) (profile.ClickHistory, error) {
			t.Fatal("click store must not be read without a session")
			return nil, nil
		},
	}
	svc := New(clicks, zap.NewNop())

	ranked := svc.Personalize(context.Background(), "", []catalog.Record{x})
	if ranked[0].Scored() {
		t.Fatal("expected unscored pass-through")
	}
}

func TestPersonalize_StoreErrorDegradesToPassThrough(t *testing.T) {
	x := record("X", "B", accord("woody", catalog.StrengthDominant))
	y := record("Y", "B", accord("citrus", catalog.StrengthDominant))
	clicks := &mockClickReader{
		historyFn: func(_ context.Context, _ string) (profile.ClickHistory, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := New(clicks, zap.NewNop())

	ranked := svc.Personalize(context.Background(), "s1", []catalog.Record{x, y})

	got := rankedNames(ranked)
	if got[0] != "X" || got[1] != "Y" {
		t.Fatalf("expected original order, got %v", got)
	}
	if ranked[0].Scored() {
		t.Fatal("expected unscored results after store failure")
	}
}

func TestPreferences_SortedByWeight(t *testing.T) {
	rec := record("A", "B",
		accord("woody", catalog.StrengthDominant),
		accord("citrus", catalog.StrengthSubtle),
	)
	clicks := &mockClickReader{
		historyFn: func(_ context.Context, _ string) (profile.ClickHistory, error) {
			return profile.ClickHistory{rec.Identity(): 1}, nil
		},
	}
	svc := New(clicks, zap.NewNop())

	prefs := svc.Preferences(context.Background(), "s1", []catalog.Record{rec})
	if len(prefs) != 2 {
		t.Fatalf("expected 2 preferences, got %d", len(prefs))
	}
	if prefs[0].Accord != "woody" || prefs[1].Accord != "citrus" {
		t.Fatalf("expected weight-descending order, got %v", prefs)
	}
}

func TestPreferences_NoHistory(t *testing.T) {
	svc := New(&mockClickReader{}, zap.NewNop())
	if prefs := svc.Preferences(context.Background(), "s1", nil); prefs != nil {
		t.Fatalf("expected nil, got %v", prefs)
	}
}
