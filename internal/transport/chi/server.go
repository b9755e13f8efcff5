// Package chi is the inbound HTTP surface: route handlers, auth, and the
// mapping from domain errors to response codes.
package chi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/scentify/scentcore/internal/domain"
	domcat "github.com/scentify/scentcore/internal/domain/catalog"
	cataloguc "github.com/scentify/scentcore/internal/usecase/catalog"
	healthuc "github.com/scentify/scentcore/internal/usecase/health"
	recommenduc "github.com/scentify/scentcore/internal/usecase/recommend"
	usageuc "github.com/scentify/scentcore/internal/usecase/usage"
)

// Clicks records a click against a session.
type Clicks interface {
	Record(ctx context.Context, sessionID, identity string) (int64, error)
}

// Server hosts the catalog and personalization endpoints.
type Server struct {
	catalog   *cataloguc.Service
	recommend *recommenduc.Service
	clicks    Clicks
	usage     *usageuc.Service
	health    *healthuc.Service
	logger    *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	catalog *cataloguc.Service,
	recommend *recommenduc.Service,
	clicks Clicks,
	usage *usageuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	return &Server{
		catalog:   catalog,
		recommend: recommend,
		clicks:    clicks,
		usage:     usage,
		health:    health,
		logger:    logger,
	}
}

// Routes mounts all endpoints on the router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/fragrances", s.SearchFragrances)
	r.Get("/fragrances/match", s.MatchFragrances)
	r.Get("/fragrances/similar", s.SimilarFragrances)
	r.Get("/brands/{brand}", s.BrandFragrances)
	r.Get("/notes", s.SearchNotes)
	r.Get("/accords", s.SearchAccords)
	r.Post("/clicks", s.RecordClick)
	r.Get("/usage", s.GetUsage)
	r.Get("/health", s.GetHealth)
}

// SearchFragrances handles GET /fragrances.
func (s *Server) SearchFragrances(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("search")
	limit := queryInt(r, "limit")

	records, err := s.catalog.Search(r.Context(), query, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	s.respondRanked(w, r, records)
}

// MatchFragrances handles GET /fragrances/match.
func (s *Server) MatchFragrances(w http.ResponseWriter, r *http.Request) {
	weights := parseAccordFilter(r.URL.Query().Get("accords"))
	if len(weights) == 0 {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "accords parameter is required")
		return
	}
	limit := queryInt(r, "limit")

	records, err := s.catalog.MatchAccords(r.Context(), weights, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	s.respondRanked(w, r, records)
}

// SimilarFragrances handles GET /fragrances/similar.
func (s *Server) SimilarFragrances(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "name parameter is required")
		return
	}
	limit := queryInt(r, "limit")

	records, err := s.catalog.Similar(r.Context(), name, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	s.respondRanked(w, r, records)
}

// BrandFragrances handles GET /brands/{brand}.
func (s *Server) BrandFragrances(w http.ResponseWriter, r *http.Request) {
	brand := chi.URLParam(r, "brand")
	limit := queryInt(r, "limit")

	records, err := s.catalog.ByBrand(r.Context(), brand, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	s.respondRanked(w, r, records)
}

// SearchNotes handles GET /notes.
func (s *Server) SearchNotes(w http.ResponseWriter, r *http.Request) {
	terms, err := s.catalog.Notes(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, termsToAPI(terms))
}

// SearchAccords handles GET /accords.
func (s *Server) SearchAccords(w http.ResponseWriter, r *http.Request) {
	terms, err := s.catalog.Accords(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, termsToAPI(terms))
}

// RecordClick handles POST /clicks.
func (s *Server) RecordClick(w http.ResponseWriter, r *http.Request) {
	var req clickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.SessionID == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "session_id and name are required")
		return
	}

	identity := clickIdentity(req.Name, req.Brand)
	count, err := s.clicks.Record(r.Context(), req.SessionID, identity)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, clickResponse{
		SessionID: req.SessionID,
		Identity:  identity,
		Count:     count,
	})
}

// GetUsage handles GET /usage.
func (s *Server) GetUsage(w http.ResponseWriter, r *http.Request) {
	report, err := s.usage.GetReport(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, usageResponse{
		RequestsRemaining: report.Remaining(),
		RequestsLimit:     report.Limit(),
		ResetAt:           report.ResetAt(),
		Exhausted:         report.Exhausted(),
	})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}

	checks := make(map[string]string, len(report.Checks))
	for name, result := range report.Checks {
		checks[name] = string(result)
	}
	writeJSON(w, status, healthResponse{Status: string(report.Status), Checks: checks})
}

// respondRanked applies session personalization when a session id is present
// and writes the result list.
func (s *Server) respondRanked(w http.ResponseWriter, r *http.Request, records []domcat.Record) {
	sessionID := r.URL.Query().Get("session")
	ranked := s.recommend.Personalize(r.Context(), sessionID, records)
	writeJSON(w, http.StatusOK, rankedToAPI(ranked))
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, codeRateLimited, "provider rate limit reached")
	case errors.Is(err, domain.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, codeProviderUnavailable, "provider temporarily unavailable")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusBadGateway, codeProviderError, "provider rejected credentials")
	case errors.Is(err, domain.ErrTimeout), errors.Is(err, domain.ErrRemote):
		writeError(w, http.StatusBadGateway, codeProviderError, "provider request failed")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, "not found")
	default:
		s.logger.Error("Unhandled error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

func queryInt(r *http.Request, name string) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// parseAccordFilter parses "woody:80,citrus:40" into accord weights.
// A pair without a percent defaults to 100.
func parseAccordFilter(raw string) map[string]int {
	weights := make(map[string]int)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, pctRaw, hasPct := strings.Cut(pair, ":")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		pct := 100
		if hasPct {
			n, err := strconv.Atoi(strings.TrimSpace(pctRaw))
			if err != nil || n <= 0 || n > 100 {
				continue
			}
			pct = n
		}
		weights[name] = pct
	}
	return weights
}

func clickIdentity(name, brand string) string {
	return strings.ToLower(strings.TrimSpace(name)) + "|" + strings.ToLower(strings.TrimSpace(brand))
}
