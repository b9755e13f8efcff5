package chi

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"testing"

	json "github.com/goccy/go-json"

	domcat "github.com/scentify/scentcore/internal/domain/catalog"
	"github.com/scentify/scentcore/internal/domain"
	"github.com/scentify/scentcore/internal/domain/profile"
)

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("decode body %q: %v", data, err)
	}
	return v
}

func TestSearchFragrances_ReturnsRecords(t *testing.T) {
	source := &mockSource{records: []domcat.Record{
		testRecord("Aventus", "Creed", domcat.NewAccord("fruity", domcat.StrengthDominant)),
	}}
	srv := newTestServer(source, nil, nil)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/fragrances?search=aventus")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	records := decodeBody[[]recordResponse](t, resp)
	if len(records) != 1 || records[0].Name != "Aventus" {
		t.Fatalf("unexpected body: %v", records)
	}
	if records[0].Score != nil {
		t.Fatal("score must be absent without a session")
	}
	if len(records[0].Accords) != 1 || records[0].Accords[0].Weight != 1.0 {
		t.Fatalf("unexpected accords: %v", records[0].Accords)
	}
}

func TestSearchFragrances_SessionAddsScores(t *testing.T) {
	woody := testRecord("Woody One", "B", domcat.NewAccord("woody", domcat.StrengthDominant))
	citrus := testRecord("Citrus One", "B", domcat.NewAccord("citrus", domcat.StrengthDominant))
	source := &mockSource{records: []domcat.Record{citrus, woody}}

	clicks := &mockClicks{history: profile.ClickHistory{woody.Identity(): 3}}
	srv := newTestServer(source, clicks, nil)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/fragrances?search=test&session=s1")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	records := decodeBody[[]recordResponse](t, resp)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Name != "Woody One" {
		t.Fatalf("expected personalized order, got %q first", records[0].Name)
	}
	if records[0].Score == nil {
		t.Fatal("expected a score with a session")
	}
}

func TestSearchFragrances_ProviderErrorsMapToStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"rate limited", domain.ErrRateLimited, http.StatusTooManyRequests, codeRateLimited},
		{"circuit open", domain.ErrUnavailable, http.StatusServiceUnavailable, codeProviderUnavailable},
		{"retries exhausted", domain.NewRetriesExhausted(3, domain.ErrTimeout), http.StatusBadGateway, codeProviderError},
		{"bad credentials", domain.ErrUnauthorized, http.StatusBadGateway, codeProviderError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, codeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(&mockSource{err: tt.err}, nil, nil)
			defer srv.Close()

			resp, err := http.Get(srv.URL + "/fragrances?search=test")
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			body := decodeBody[errorResponse](t, resp)
			if body.Code != tt.wantCode {
				t.Fatalf("code = %q, want %q", body.Code, tt.wantCode)
			}
		})
	}
}

func TestMatchFragrances_RequiresAccords(t *testing.T) {
	srv := newTestServer(&mockSource{}, nil, nil)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/fragrances/match")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	body := decodeBody[errorResponse](t, resp)
	if body.Code != codeValidationFailed {
		t.Fatalf("code = %q, want %q", body.Code, codeValidationFailed)
	}
}

func TestRecordClick_Flow(t *testing.T) {
	clicks := &mockClicks{count: 2}
	srv := newTestServer(&mockSource{}, clicks, nil)
	defer srv.Close()

	payload := []byte(`{"session_id":"s1","name":"Aventus","brand":"Creed"}`)
	resp, err := http.Post(srv.URL+"/clicks", "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	body := decodeBody[clickResponse](t, resp)
	if body.Count != 2 {
		t.Fatalf("count = %d, want 2", body.Count)
	}
	if body.Identity != "aventus|creed" {
		t.Fatalf("identity = %q, want normalized", body.Identity)
	}
	if clicks.lastSession != "s1" || clicks.lastIdentity != "aventus|creed" {
		t.Fatalf("store got session=%q identity=%q", clicks.lastSession, clicks.lastIdentity)
	}
}

func TestRecordClick_Validation(t *testing.T) {
	srv := newTestServer(&mockSource{}, nil, nil)
	defer srv.Close()

	tests := []struct {
		name    string
		payload string
	}{
		{"missing session", `{"name":"A","brand":"B"}`},
		{"missing name", `{"session_id":"s1"}`},
		{"broken json", `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/clicks", "application/json", bytes.NewReader([]byte(tt.payload)))
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			_ = resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestGetUsage(t *testing.T) {
	srv := newTestServer(&mockSource{}, nil, nil)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/usage")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body := decodeBody[usageResponse](t, resp)
	if body.RequestsRemaining != 100 {
		t.Fatalf("remaining = %d, want 100", body.RequestsRemaining)
	}
}

func TestGetHealth(t *testing.T) {
	srv := newTestServer(&mockSource{}, nil, nil)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body := decodeBody[healthResponse](t, resp)
	if body.Status != "ok" {
		t.Fatalf("status = %q, want ok", body.Status)
	}
}

func TestParseAccordFilter(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want map[string]int
	}{
		{"pairs with percents", "woody:80,citrus:40", map[string]int{"woody": 80, "citrus": 40}},
		{"missing percent defaults 100", "woody", map[string]int{"woody": 100}},
		{"out of range dropped", "woody:150,citrus:0,amber:50", map[string]int{"amber": 50}},
		{"garbage dropped", "woody:abc, ,:", map[string]int{}},
		{"empty", "", map[string]int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseAccordFilter(tt.raw)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}
