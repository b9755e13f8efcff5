package respcache

import (
	json "github.com/goccy/go-json"

	"github.com/scentify/scentcore/internal/domain/catalog"
)

// cacheAccord is the compact accord form stored in cache entries.
type cacheAccord struct {
	Name     string `json:"n"`
	Strength string `json:"s"`
}

// cacheRecord is the compact record form stored in cache entries.
type cacheRecord struct {
	Name         string             `json:"name"`
	Brand        string             `json:"brand"`
	Description  string             `json:"desc,omitempty"`
	ImageURL     string             `json:"img,omitempty"`
	FallbackURLs []string           `json:"img_fallbacks,omitempty"`
	Price        float64            `json:"price,omitempty"`
	Longevity    string             `json:"longevity,omitempty"`
	Sillage      string             `json:"sillage,omitempty"`
	Seasons      map[string]float64 `json:"seasons,omitempty"`
	Occasions    map[string]float64 `json:"occasions,omitempty"`
	Accords      []cacheAccord      `json:"accords"`
}

func recordsToBytes(records []catalog.Record) ([]byte, error) {
	out := make([]cacheRecord, len(records))
	for i, r := range records {
		accords := make([]cacheAccord, len(r.Accords()))
		for j, a := range r.Accords() {
			accords[j] = cacheAccord{Name: a.Name(), Strength: string(a.Strength())}
		}
		out[i] = cacheRecord{
			Name:         r.Name(),
			Brand:        r.Brand(),
			Description:  r.Description(),
			ImageURL:     r.ImageURL(),
			FallbackURLs: r.FallbackImageURLs(),
			Price:        r.Price(),
			Longevity:    r.Longevity(),
			Sillage:      r.Sillage(),
			Seasons:      r.SeasonScores(),
			Occasions:    r.OccasionScores(),
			Accords:      accords,
		}
	}
	return json.Marshal(out)
}

func bytesToRecords(data []byte) ([]catalog.Record, error) {
	var cached []cacheRecord
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, err
	}

	records := make([]catalog.Record, len(cached))
	for i, c := range cached {
		accords := make([]catalog.Accord, len(c.Accords))
		for j, a := range c.Accords {
			accords[j] = catalog.NewAccord(a.Name, catalog.Strength(a.Strength))
		}
		records[i] = catalog.Reconstruct(
			c.Name, c.Brand, c.Description, c.ImageURL,
			c.FallbackURLs,
			c.Price,
			c.Longevity, c.Sillage,
			c.Seasons, c.Occasions,
			accords,
		)
	}
	return records, nil
}
