package catalog

import "strings"

// Accord is a named scent category with its strength descriptor.
type Accord struct {
	name     string
	strength Strength
}

// NewAccord creates an accord entry.
func NewAccord(name string, strength Strength) Accord {
	return Accord{name: name, strength: strength}
}

// Name returns the accord name as the provider sent it.
func (a Accord) Name() string { return a.name }

// Strength returns the strength descriptor.
func (a Accord) Strength() Strength { return a.strength }

// Record is a single catalog entry. Immutable once fetched; the accord list
// keeps the provider's prominence order.
type Record struct {
	name          string
	brand         string
	description   string
	imageURL      string
	fallbackURLs  []string
	price         float64
	longevity     string
	sillage       string
	seasonScores  map[string]float64
	occasionScore map[string]float64
	accords       []Accord
}

// Reconstruct builds a record from provider data. Only the decoding boundary
// (fragella transport, dataset loader, response cache) should call it.
func Reconstruct(
	name, brand, description, imageURL string,
	fallbackURLs []string,
	price float64,
	longevity, sillage string,
	seasonScores, occasionScores map[string]float64,
	accords []Accord,
) Record {
	return Record{
		name:          name,
		brand:         brand,
		description:   description,
		imageURL:      imageURL,
		fallbackURLs:  fallbackURLs,
		price:         price,
		longevity:     longevity,
		sillage:       sillage,
		seasonScores:  seasonScores,
		occasionScore: occasionScores,
		accords:       accords,
	}
}

// Name returns the fragrance name.
func (r Record) Name() string { return r.name }

// Brand returns the brand name.
func (r Record) Brand() string { return r.brand }

// Description returns the free-text description.
func (r Record) Description() string { return r.description }

// ImageURL returns the primary image URL.
func (r Record) ImageURL() string { return r.imageURL }

// FallbackImageURLs returns alternative image URLs for when the primary fails.
func (r Record) FallbackImageURLs() []string { return r.fallbackURLs }

// Price returns the listed price. Zero when the provider omits it.
func (r Record) Price() float64 { return r.price }

// Longevity returns the longevity descriptor.
func (r Record) Longevity() string { return r.longevity }

// Sillage returns the sillage descriptor.
func (r Record) Sillage() string { return r.sillage }

// SeasonScores returns the per-season suitability scores.
func (r Record) SeasonScores() map[string]float64 { return r.seasonScores }

// OccasionScores returns the per-occasion suitability scores.
func (r Record) OccasionScores() map[string]float64 { return r.occasionScore }

// Accords returns the accord list ordered by prominence.
func (r Record) Accords() []Accord { return r.accords }

// Identity returns the natural key: lowercased name and brand.
func (r Record) Identity() string {
	return strings.ToLower(strings.TrimSpace(r.name)) + "|" + strings.ToLower(strings.TrimSpace(r.brand))
}

// TransparentImageURL returns the .webp variant of the primary image when the
// provider's suffix-swap rule applies, otherwise the primary URL unchanged.
func (r Record) TransparentImageURL() string {
	if strings.HasSuffix(r.imageURL, ".jpg") {
		return strings.TrimSuffix(r.imageURL, ".jpg") + ".webp"
	}
	return r.imageURL
}

// Term is a named catalog vocabulary entry (a note or an accord) returned by
// the provider's lookup endpoints.
type Term struct {
	name        string
	description string
}

// NewTerm creates a vocabulary term.
func NewTerm(name, description string) Term {
	return Term{name: name, description: description}
}

// Name returns the term name.
func (t Term) Name() string { return t.name }

// Description returns the term description.
func (t Term) Description() string { return t.description }
