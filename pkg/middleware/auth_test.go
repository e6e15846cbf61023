package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"sports-club/pkg/auth"
	"sports-club/pkg/utils"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubVerifier struct {
	claims *auth.FirebaseClaims
	err    error
}

func (s stubVerifier) Verify(context.Context, string) (*auth.FirebaseClaims, error) {
	return s.claims, s.err
}

func TestFirebaseAuth(t *testing.T) {
	valid := stubVerifier{claims: &auth.FirebaseClaims{
		Email:            "A@x.com",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "uid-1"},
	}}

	var seen utils.Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = utils.GetIdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name     string
		verifier stubVerifier
		header   string
		want     int
	}{
		{"missing header", valid, "", http.StatusUnauthorized},
		{"missing token", valid, "Bearer ", http.StatusUnauthorized},
		{"wrong scheme", valid, "Basic abc", http.StatusUnauthorized},
		{"invalid token", stubVerifier{err: errors.New("bad signature")}, "Bearer abc", http.StatusForbidden},
		{"valid token", valid, "Bearer abc", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := FirebaseAuth(tt.verifier, zap.NewNop())(next)
			req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}

	assert.Equal(t, utils.Identity{UID: "uid-1", Email: "a@x.com"}, seen)
}
