package fragella

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/scentify/scentcore/internal/domain/catalog"
	"github.com/scentify/scentcore/internal/domain/usage"
)

// recordDTO mirrors the provider's record shape. Field names follow the
// provider's capitalized keys verbatim.
type recordDTO struct {
	Name                  string             `json:"Name"`
	Brand                 string             `json:"Brand"`
	Description           string             `json:"Description"`
	ImageURL              string             `json:"Image URL"`
	FallbackImageURLs     []string           `json:"Fallback Image URLs"`
	Price                 float64            `json:"Price"`
	Longevity             string             `json:"Longevity"`
	Sillage               string             `json:"Sillage"`
	MainAccords           []string           `json:"Main Accords"`
	MainAccordsPercentage map[string]string  `json:"Main Accords Percentage"`
	SeasonScores          map[string]float64 `json:"Season Scores"`
	OccasionScores        map[string]float64 `json:"Occasion Scores"`
}

func (d recordDTO) toDomain() catalog.Record {
	accords := make([]catalog.Accord, 0, len(d.MainAccords))
	for _, name := range d.MainAccords {
		// The percentage map may omit an accord; Moderate is the provider's
		// documented default.
		strength := catalog.StrengthModerate
		if s, ok := d.MainAccordsPercentage[name]; ok {
			strength = catalog.Strength(s)
		}
		accords = append(accords, catalog.NewAccord(name, strength))
	}

	return catalog.Reconstruct(
		d.Name, d.Brand, d.Description, d.ImageURL,
		d.FallbackImageURLs,
		d.Price,
		d.Longevity, d.Sillage,
		d.SeasonScores, d.OccasionScores,
		accords,
	)
}

func recordToDTO(r catalog.Record) recordDTO {
	mainAccords := make([]string, 0, len(r.Accords()))
	percentages := make(map[string]string, len(r.Accords()))
	for _, a := range r.Accords() {
		mainAccords = append(mainAccords, a.Name())
		percentages[a.Name()] = string(a.Strength())
	}

	return recordDTO{
		Name:                  r.Name(),
		Brand:                 r.Brand(),
		Description:           r.Description(),
		ImageURL:              r.ImageURL(),
		FallbackImageURLs:     r.FallbackImageURLs(),
		Price:                 r.Price(),
		Longevity:             r.Longevity(),
		Sillage:               r.Sillage(),
		MainAccords:           mainAccords,
		MainAccordsPercentage: percentages,
		SeasonScores:          r.SeasonScores(),
		OccasionScores:        r.OccasionScores(),
	}
}

type termDTO struct {
	Name        string `json:"Name"`
	Description string `json:"Description"`
}

type usageDTO struct {
	RequestsRemaining int64  `json:"requests_remaining"`
	RequestsLimit     int64  `json:"requests_limit"`
	ResetTime         string `json:"reset_time"`
}

// DecodeRecords normalizes a provider payload into domain records. The
// payload may be a bare list, an object wrapping the list under "fragrances"
// or "data", or a single record object. A nil/empty payload decodes to an
// empty list.
func DecodeRecords(data []byte) ([]catalog.Record, error) {
	dtos, err := normalizeList[recordDTO](data, "fragrances")
	if err != nil {
		return nil, err
	}

	records := make([]catalog.Record, 0, len(dtos))
	for _, d := range dtos {
		if d.Name == "" && d.Brand == "" {
			continue
		}
		records = append(records, d.toDomain())
	}
	return records, nil
}

// EncodeRecords serializes records back into the provider's list shape.
// Used by the response cache to round-trip payloads.
func EncodeRecords(records []catalog.Record) ([]byte, error) {
	dtos := make([]recordDTO, len(records))
	for i, r := range records {
		dtos[i] = recordToDTO(r)
	}
	data, err := json.Marshal(dtos)
	if err != nil {
		return nil, fmt.Errorf("encode records: %w", err)
	}
	return data, nil
}

func decodeTerms(data []byte, wrapKey string) ([]catalog.Term, error) {
	dtos, err := normalizeList[termDTO](data, wrapKey)
	if err != nil {
		return nil, err
	}

	terms := make([]catalog.Term, 0, len(dtos))
	for _, d := range dtos {
		if d.Name == "" {
			continue
		}
		terms = append(terms, catalog.NewTerm(d.Name, d.Description))
	}
	return terms, nil
}

func decodeUsage(data []byte) (usage.Report, error) {
	if len(data) == 0 {
		return usage.Report{}, nil
	}
	var d usageDTO
	if err := json.Unmarshal(data, &d); err != nil {
		return usage.Report{}, fmt.Errorf("decode usage: %w", err)
	}
	return usage.New(d.RequestsRemaining, d.RequestsLimit, d.ResetTime), nil
}

// normalizeList accepts the provider's three list shapes: a bare array, an
// object wrapping the array under wrapKey or "data", or a single item.
func normalizeList[T any](data []byte, wrapKey string) ([]T, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err == nil {
		return items, nil
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("payload is neither list nor object: %w", err)
	}

	for _, key := range []string{wrapKey, "data"} {
		raw, ok := wrapped[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("unwrap %q: %w", key, err)
		}
		return items, nil
	}

	// A single object decodes as a one-item list.
	var single T
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("decode single item: %w", err)
	}
	return []T{single}, nil
}
