package chi

import (
	"net/http"

	json "github.com/goccy/go-json"

	domcat "github.com/scentify/scentcore/internal/domain/catalog"
	recommenduc "github.com/scentify/scentcore/internal/usecase/recommend"
)

// Error codes surfaced to API clients.
const (
	codeBadRequest          = "bad_request"
	codeValidationFailed    = "validation_failed"
	codeNotFound            = "not_found"
	codeRateLimited         = "rate_limited"
	codeProviderError       = "provider_error"
	codeProviderUnavailable = "provider_unavailable"
	codeInternalError       = "internal_error"
	codeUnauthorized        = "unauthorized"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type accordResponse struct {
	Name     string  `json:"name"`
	Strength string  `json:"strength"`
	Weight   float64 `json:"weight"`
}

type recordResponse struct {
	Name                string             `json:"name"`
	Brand               string             `json:"brand"`
	Description         string             `json:"description,omitempty"`
	ImageURL            string             `json:"image_url,omitempty"`
	TransparentImageURL string             `json:"transparent_image_url,omitempty"`
	FallbackImageURLs   []string           `json:"fallback_image_urls,omitempty"`
	Price               float64            `json:"price,omitempty"`
	Longevity           string             `json:"longevity,omitempty"`
	Sillage             string             `json:"sillage,omitempty"`
	SeasonScores        map[string]float64 `json:"season_scores,omitempty"`
	OccasionScores      map[string]float64 `json:"occasion_scores,omitempty"`
	Accords             []accordResponse   `json:"accords"`
	Score               *float64           `json:"score,omitempty"`
}

type termResponse struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type clickRequest struct {
	SessionID string `json:"session_id"`
	Name      string `json:"name"`
	Brand     string `json:"brand"`
}

type clickResponse struct {
	SessionID string `json:"session_id"`
	Identity  string `json:"identity"`
	Count     int64  `json:"count"`
}

type usageResponse struct {
	RequestsRemaining int64  `json:"requests_remaining"`
	RequestsLimit     int64  `json:"requests_limit,omitempty"`
	ResetAt           string `json:"reset_at,omitempty"`
	Exhausted         bool   `json:"exhausted"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func recordToAPI(r domcat.Record) recordResponse {
	accords := make([]accordResponse, len(r.Accords()))
	for i, a := range r.Accords() {
		accords[i] = accordResponse{
			Name:     a.Name(),
			Strength: string(a.Strength()),
			Weight:   a.Strength().Weight(),
		}
	}
	return recordResponse{
		Name:                r.Name(),
		Brand:               r.Brand(),
		Description:         r.Description(),
		ImageURL:            r.ImageURL(),
		TransparentImageURL: r.TransparentImageURL(),
		FallbackImageURLs:   r.FallbackImageURLs(),
		Price:               r.Price(),
		Longevity:           r.Longevity(),
		Sillage:             r.Sillage(),
		SeasonScores:        r.SeasonScores(),
		OccasionScores:      r.OccasionScores(),
		Accords:             accords,
	}
}

func rankedToAPI(ranked []recommenduc.Ranked) []recordResponse {
	out := make([]recordResponse, len(ranked))
	for i, rr := range ranked {
		resp := recordToAPI(rr.Record())
		if rr.Scored() {
			score := rr.Score()
			resp.Score = &score
		}
		out[i] = resp
	}
	return out
}

func termsToAPI(terms []domcat.Term) []termResponse {
	out := make([]termResponse, len(terms))
	for i, t := range terms {
		out[i] = termResponse{Name: t.Name(), Description: t.Description()}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
