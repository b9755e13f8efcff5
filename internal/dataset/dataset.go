// Package dataset serves catalog records from a local flat file, in the same
// shape the remote provider uses. It exists purely as a degraded-mode
// substitute when the provider is unreachable; matching here is deliberately
// simple.
package dataset

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/scentify/scentcore/internal/domain/catalog"
)

// recordFile mirrors the provider's record shape for the flat file.
type recordFile struct {
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

// Dataset is an immutable in-memory record collection loaded at startup.
type Dataset struct {
	records []catalog.Record
}

var _ catalog.Source = (*Dataset)(nil)

// Load reads a JSON file containing a list of provider-shaped records.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}

	var files []recordFile
	if err := json.Unmarshal(data, &files); err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}

	records := make([]catalog.Record, 0, len(files))
	for _, f := range files {
		if f.Name == "" && f.Brand == "" {
			continue
		}
		accords := make([]catalog.Accord, 0, len(f.MainAccords))
		for _, name := range f.MainAccords {
			strength := catalog.StrengthModerate
			if s, ok := f.MainAccordsPercentage[name]; ok {
				strength = catalog.Strength(s)
			}
			accords = append(accords, catalog.NewAccord(name, strength))
		}
		records = append(records, catalog.Reconstruct(
			f.Name, f.Brand, f.Description, f.ImageURL,
			f.FallbackImageURLs,
			f.Price,
			f.Longevity, f.Sillage,
			f.SeasonScores, f.OccasionScores,
			accords,
		))
	}

	return &Dataset{records: records}, nil
}

// Len returns the number of loaded records.
func (d *Dataset) Len() int { return len(d.records) }

// Search matches query against name, brand, and description, case-insensitively.
func (d *Dataset) Search(_ context.Context, query string, limit int) ([]catalog.Record, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []catalog.Record
	for _, r := range d.records {
		if strings.Contains(strings.ToLower(r.Name()), q) ||
			strings.Contains(strings.ToLower(r.Brand()), q) ||
			strings.Contains(strings.ToLower(r.Description()), q) {
			out = append(out, r)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

// MatchAccords returns records sharing accords with the filter, ordered by
// overlap count descending (stable).
func (d *Dataset) MatchAccords(_ context.Context, weights map[string]int, limit int) ([]catalog.Record, error) {
	wanted := make(map[string]struct{}, len(weights))
	for name := range weights {
		wanted[strings.ToLower(strings.TrimSpace(name))] = struct{}{}
	}

	type hit struct {
		record  catalog.Record
		overlap int
	}
	var hits []hit
	for _, r := range d.records {
		overlap := 0
		for _, a := range r.Accords() {
			if _, ok := wanted[strings.ToLower(strings.TrimSpace(a.Name()))]; ok {
				overlap++
			}
		}
		if overlap > 0 {
			hits = append(hits, hit{record: r, overlap: overlap})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].overlap > hits[j].overlap })

	out := make([]catalog.Record, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.record)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// Similar finds the named record and returns others sharing its accords,
// ordered by overlap. Unknown names yield an empty list.
func (d *Dataset) Similar(ctx context.Context, name string, limit int) ([]catalog.Record, error) {
	target, ok := d.byName(name)
	if !ok {
		return []catalog.Record{}, nil
	}

	weights := make(map[string]int, len(target.Accords()))
	for _, a := range target.Accords() {
		weights[a.Name()] = 100
	}

	matches, err := d.MatchAccords(ctx, weights, 0)
	if err != nil {
		return nil, err
	}

	out := make([]catalog.Record, 0, len(matches))
	for _, r := range matches {
		if r.Identity() == target.Identity() {
			continue
		}
		out = append(out, r)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// ByBrand lists records of a brand, case-insensitively.
func (d *Dataset) ByBrand(_ context.Context, brand string, limit int) ([]catalog.Record, error) {
	b := strings.ToLower(strings.TrimSpace(brand))
	var out []catalog.Record
	for _, r := range d.records {
		if strings.ToLower(strings.TrimSpace(r.Brand())) == b {
			out = append(out, r)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (d *Dataset) byName(name string) (catalog.Record, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, r := range d.records {
		if strings.ToLower(strings.TrimSpace(r.Name())) == n {
			return r, true
		}
	}
	return catalog.Record{}, false
}
