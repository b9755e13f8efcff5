package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const fixture = `[
	{
		"Name": "Aventus",
		"Brand": "Creed",
		"Description": "Fruity chypre with a smoky dry-down",
		"Image URL": "https://cdn.example.com/aventus.jpg",
		"Main Accords": ["fruity", "smoky", "woody"],
		"Main Accords Percentage": {"fruity": "Dominant", "smoky": "Prominent"}
	},
	{
		"Name": "Green Irish Tweed",
		"Brand": "Creed",
		"Main Accords": ["green", "woody"]
	},
	{
		"Name": "Herod",
		"Brand": "Parfums de Marly",
		"Main Accords": ["vanilla", "tobacco"]
	},
	{
		"Name": "",
		"Brand": ""
	}
]`

func loadFixture(t *testing.T) *Dataset {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte(fixture), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	ds, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return ds
}

func TestLoad_SkipsEmptyRecords(t *testing.T) {
	ds := loadFixture(t)
	if ds.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", ds.Len())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected an error")
	}
}

func TestLoad_StrengthDefaultsToModerate(t *testing.T) {
	ds := loadFixture(t)
	records, _ := ds.Search(context.Background(), "aventus", 1)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	for _, a := range records[0].Accords() {
		if a.Name() == "woody" && a.Strength() != "Moderate" {
			t.Fatalf("woody strength = %q, want the Moderate default", a.Strength())
		}
	}
}

func TestSearch_MatchesNameBrandDescription(t *testing.T) {
	ds := loadFixture(t)
	ctx := context.Background()

	tests := []struct {
		query string
		want  int
	}{
		{"aventus", 1},
		{"CREED", 2},
		{"chypre", 1},
		{"nonexistent", 0},
	}
	for _, tt := range tests {
		records, err := ds.Search(ctx, tt.query, 0)
		if err != nil {
			t.Fatalf("query %q: %v", tt.query, err)
		}
		if len(records) != tt.want {
			t.Errorf("query %q: got %d records, want %d", tt.query, len(records), tt.want)
		}
	}
}

func TestSearch_HonorsLimit(t *testing.T) {
	ds := loadFixture(t)
	records, _ := ds.Search(context.Background(), "creed", 1)
	if len(records) != 1 {
		t.Fatalf("expected limit of 1, got %d", len(records))
	}
}

func TestMatchAccords_OrdersByOverlap(t *testing.T) {
	ds := loadFixture(t)
	records, err := ds.MatchAccords(context.Background(), map[string]int{
		"fruity": 50, "smoky": 50, "green": 50,
	}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(records))
	}
	// Aventus overlaps on two accords, Green Irish Tweed on one.
	if records[0].Name() != "Aventus" {
		t.Fatalf("expected highest overlap first, got %q", records[0].Name())
	}
}

func TestSimilar_ExcludesTarget(t *testing.T) {
	ds := loadFixture(t)
	records, err := ds.Similar(context.Background(), "Aventus", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, r := range records {
		if r.Name() == "Aventus" {
			t.Fatal("similar results must exclude the target itself")
		}
	}
	// Green Irish Tweed shares "woody".
	if len(records) != 1 || records[0].Name() != "Green Irish Tweed" {
		t.Fatalf("unexpected similar set: %v", records)
	}
}

func TestSimilar_UnknownName(t *testing.T) {
	ds := loadFixture(t)
	records, err := ds.Similar(context.Background(), "Ghost", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty result, got %d", len(records))
	}
}

func TestByBrand_CaseInsensitive(t *testing.T) {
	ds := loadFixture(t)
	records, err := ds.ByBrand(context.Background(), "creed", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
}
