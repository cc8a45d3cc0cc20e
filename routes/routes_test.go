package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dosada05/league-brackets/brackets"
	"github.com/Dosada05/league-brackets/handlers"
	"github.com/Dosada05/league-brackets/services"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "routes-secret"

type stubService struct {
	generated int
}

func (s *stubService) Preview(context.Context, services.BracketInput) (*services.PreviewResult, error) {
	return &services.PreviewResult{Matches: []services.MatchView{}, Warnings: []string{}}, nil
}

func (s *stubService) Generate(context.Context, services.BracketInput, *int) (*services.GenerateResult, error) {
	s.generated++
	return &services.GenerateResult{Success: true, Outcome: brackets.OutcomeFull}, nil
}

func (s *stubService) Stats(teamCount int, bracketType string) (brackets.BracketStats, error) {
	return brackets.CalculateStats(teamCount, brackets.BracketType(bracketType)), nil
}

func (s *stubService) GetBracket(context.Context, string, *string) (*services.BracketView, error) {
	return nil, services.ErrBracketNotFound
}

func newRouter(t *testing.T, svc services.BracketService) http.Handler {
	t.Helper()
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{Name: "routes_test_total", Help: "test"}))

	r := chi.NewRouter()
	SetupRoutes(r, handlers.NewBracketHandler(svc), nil, Options{
		JWTSecret:      secret,
		AllowedOrigins: []string{"*"},
		Gatherer:       reg,
	})
	return r
}

func token(t *testing.T, role string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": 1, "role": role}).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestRoutes(t *testing.T) {
	svc := &stubService{}
	router := newRouter(t, svc)
	body := `{"teamIds":["A","B"],"seasonId":"s1","tournamentDays":["2025-06-01"],"bracketType":"single"}`

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		auth   string
		want   int
	}{
		{name: "health", method: http.MethodGet, path: "/healthz", want: http.StatusOK},
		{name: "metrics", method: http.MethodGet, path: "/metrics", want: http.StatusOK},
		{name: "preview is public", method: http.MethodPost, path: "/api/v1/brackets/preview", body: body, want: http.StatusOK},
		{name: "stats is public", method: http.MethodGet, path: "/api/v1/brackets/stats?teams=4&type=single", want: http.StatusOK},
		{name: "generate needs a token", method: http.MethodPost, path: "/api/v1/brackets/generate", body: body, want: http.StatusUnauthorized},
		{name: "generate rejects players", method: http.MethodPost, path: "/api/v1/brackets/generate", body: body, auth: "player", want: http.StatusForbidden},
		{name: "generate for organizers", method: http.MethodPost, path: "/api/v1/brackets/generate", body: body, auth: "organizer", want: http.StatusOK},
		{name: "bracket read", method: http.MethodGet, path: "/api/v1/seasons/s1/bracket", want: http.StatusNotFound},
		{name: "unknown route", method: http.MethodGet, path: "/api/v1/nothing", want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.auth != "" {
				req.Header.Set("Authorization", "Bearer "+token(t, tt.auth))
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}

	assert.Equal(t, 1, svc.generated)
}

func TestRoutes_MetricsExposition(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(t, &stubService{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "routes_test_total 0")
}
