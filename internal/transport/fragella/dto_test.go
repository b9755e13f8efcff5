package fragella

import (
	"testing"

	"github.com/scentify/scentcore/internal/domain/catalog"
)

func TestDecodeRecords_PayloadShapes(t *testing.T) {
	record := `{"Name":"Aventus","Brand":"Creed","Main Accords":["fruity"],"Main Accords Percentage":{"fruity":"Dominant"}}`

	tests := []struct {
		name    string
		payload string
		want    int
	}{
		{"bare list", `[` + record + `]`, 1},
		{"fragrances wrapper", `{"fragrances":[` + record + `]}`, 1},
		{"data wrapper", `{"data":[` + record + `]}`, 1},
		{"single object", record, 1},
		{"empty list", `[]`, 0},
		{"empty payload", ``, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := DecodeRecords([]byte(tt.payload))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(records) != tt.want {
				t.Fatalf("got %d records, want %d", len(records), tt.want)
			}
			if tt.want == 1 && records[0].Name() != "Aventus" {
				t.Fatalf("unexpected record: %v", records[0])
			}
		})
	}
}

func TestDecodeRecords_MalformedPayload(t *testing.T) {
	if _, err := DecodeRecords([]byte(`"just a string"`)); err == nil {
		t.Fatal("expected an error for an unrecognized shape")
	}
	if _, err := DecodeRecords([]byte(`{invalid`)); err == nil {
		t.Fatal("expected an error for broken JSON")
	}
}

func TestDecodeRecords_SkipsNamelessEntries(t *testing.T) {
	records, err := DecodeRecords([]byte(`[{"Name":"","Brand":""},{"Name":"A","Brand":"B"}]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
}

func TestDecodeRecords_MissingPercentageDefaultsModerate(t *testing.T) {
	payload := `[{"Name":"A","Brand":"B","Main Accords":["woody","citrus"],"Main Accords Percentage":{"woody":"Dominant"}}]`
	records, err := DecodeRecords([]byte(payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	accords := records[0].Accords()
	if accords[0].Strength() != catalog.StrengthDominant {
		t.Errorf("woody = %q, want Dominant", accords[0].Strength())
	}
	if accords[1].Strength() != catalog.StrengthModerate {
		t.Errorf("citrus = %q, want the Moderate default", accords[1].Strength())
	}
}

func TestEncodeDecodeRecords_RoundTrip(t *testing.T) {
	original := catalog.Reconstruct(
		"Aventus", "Creed", "desc", "https://cdn.example.com/a.jpg",
		[]string{"https://cdn.example.com/alt.jpg"},
		249.99,
		"Long lasting", "Strong",
		map[string]float64{"summer": 0.8},
		map[string]float64{"office": 0.5},
		[]catalog.Accord{catalog.NewAccord("fruity", catalog.StrengthDominant)},
	)

	data, err := EncodeRecords([]catalog.Record{original})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeRecords(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("got %d records, want 1", len(decoded))
	}
	got := decoded[0]
	if got.Identity() != original.Identity() {
		t.Errorf("identity = %q, want %q", got.Identity(), original.Identity())
	}
	if got.Price() != 249.99 {
		t.Errorf("price = %v, want 249.99", got.Price())
	}
	if len(got.Accords()) != 1 || got.Accords()[0].Strength() != catalog.StrengthDominant {
		t.Errorf("accords did not survive: %v", got.Accords())
	}
}

func TestDecodeTerms_WrappedAndBare(t *testing.T) {
	bare := `[{"Name":"Vanilla","Description":"Sweet"}]`
	wrapped := `{"notes":[{"Name":"Vanilla","Description":"Sweet"}]}`

	for _, payload := range []string{bare, wrapped} {
		terms, err := decodeTerms([]byte(payload), "notes")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(terms) != 1 || terms[0].Name() != "Vanilla" {
			t.Fatalf("unexpected terms: %v", terms)
		}
	}
}
