package wire

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sports-club/internal/data/repository"
	"sports-club/pkg/auth"
	"sports-club/pkg/metrics"
	"sports-club/pkg/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type rejectingVerifier struct{}

func (rejectingVerifier) Verify(context.Context, string) (*auth.FirebaseClaims, error) {
	return nil, auth.ErrInvalidToken
}

func testConfig(projectID string) *utils.Config {
	return &utils.Config{
		App:  utils.AppConfig{Name: "sports-club", AllowedOrigins: []string{"*"}},
		Auth: utils.AuthConfig{FirebaseProjectID: projectID},
	}
}

func newTestApp(config *utils.Config, pinger stubPinger) *App {
	log := zap.NewNop()
	return Wiring(Deps{
		Repo:     repository.NewRepository(nil, log),
		Config:   config,
		Pinger:   pinger,
		Metrics:  metrics.New(prometheus.NewRegistry()),
		Verifier: rejectingVerifier{},
		Log:      log,
	})
}

func TestOperationalRoutes(t *testing.T) {
	app := newTestApp(testConfig(""), stubPinger{})

	tests := []struct {
		path string
		want int
		body string
	}{
		{"/", http.StatusOK, "Sports Club Management System API Running"},
		{"/health", http.StatusOK, `"status":true`},
		{"/ready", http.StatusOK, "Ready"},
		{"/metrics", http.StatusOK, "go_goroutines"},
		{"/nope", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.want, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.body)
		})
	}
}

func TestReadyReportsStoreOutage(t *testing.T) {
	app := newTestApp(testConfig(""), stubPinger{err: errors.New("connection refused")})

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(testConfig("club-project"), stubPinger{})

	tests := []struct {
		name, method, path, header string
		want                       int
	}{
		{"no header", http.MethodGet, "/bookings/status", "", http.StatusUnauthorized},
		{"no token", http.MethodPost, "/bookings", "Bearer ", http.StatusUnauthorized},
		{"invalid token", http.MethodPatch, "/bookings/b-1/status", "Bearer abc.def.ghi", http.StatusForbidden},
		{"revoke", http.MethodDelete, "/users/member/a@x.com", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(`{}`))
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			app.Router.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestPaymentRouteIsPublic(t *testing.T) {
	app := newTestApp(testConfig("club-project"), stubPinger{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/create-payment-intent", strings.NewReader(`{"amount":0}`))
	app.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Valid amount is required")
}

func TestCORSPreflight(t *testing.T) {
	app := newTestApp(testConfig(""), stubPinger{})

	req := httptest.NewRequest(http.MethodOptions, "/bookings", nil)
	req.Header.Set("Origin", "https://club.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Less(t, rec.Code, 300)
}
