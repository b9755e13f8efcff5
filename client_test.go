package scentcore

import (
	"context"
	"math"
	"testing"

	"github.com/scentify/scentcore/internal/domain/catalog"
)

func sdkRecord(name, brand string, accords ...Accord) Record {
	return catalog.Reconstruct(name, brand, "", "", nil, 0, "", "", nil, nil, accords)
}

func TestNew_RequiresAPIKey(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatal("expected an error without an API key")
	}
}

func TestNew_MemoryCacheDefault(t *testing.T) {
	client, err := New(WithAPIKey("k"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Close()

	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestClickThenPersonalize(t *testing.T) {
	client, err := New(WithAPIKey("k"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Close()

	ctx := context.Background()
	woody := sdkRecord("Woody One", "B", catalog.NewAccord("woody", catalog.StrengthDominant))
	citrus := sdkRecord("Citrus One", "B", catalog.NewAccord("citrus", catalog.StrengthDominant))

	for i := 0; i < 3; i++ {
		if _, err := client.RecordClick(ctx, "s1", woody); err != nil {
			t.Fatalf("record click: %v", err)
		}
	}

	ranked := client.Personalize(ctx, "s1", []Record{citrus, woody})
	if ranked[0].Record().Name() != "Woody One" {
		t.Fatalf("expected clicked record first, got %q", ranked[0].Record().Name())
	}
	if !ranked[0].Scored() {
		t.Fatal("expected scored results")
	}

	// An unknown session keeps the original order.
	plain := client.Personalize(ctx, "nobody", []Record{citrus, woody})
	if plain[0].Record().Name() != "Citrus One" || plain[0].Scored() {
		t.Fatal("unknown sessions must pass candidates through unscored")
	}
}

func TestRankingPrimitives(t *testing.T) {
	woody := sdkRecord("W", "B", catalog.NewAccord("woody", catalog.StrengthDominant))
	citrus := sdkRecord("C", "B", catalog.NewAccord("citrus", catalog.StrengthDominant))

	vec := Encode(woody)
	if vec["woody"] != 1.0 {
		t.Fatalf("Encode weight = %v, want 1.0", vec["woody"])
	}

	prof, ok := BuildProfile(ClickHistory{woody.Identity(): 2}, []Record{woody, citrus})
	if !ok {
		t.Fatal("expected a profile")
	}

	ranked := Rank([]Record{citrus, woody}, prof)
	if ranked[0].Record().Name() != "W" {
		t.Fatalf("expected the woody record first, got %q", ranked[0].Record().Name())
	}

	if got := Cosine(vec, vec); math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("self cosine = %v, want 1", got)
	}
}
