// Package auth verifies Firebase ID tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	jwt "github.com/golang-jwt/jwt/v5"
)

const (
	firebaseIssuerPrefix = "https://securetoken.google.com/"
	keyLookupTimeout     = 5 * time.Second
)

var ErrInvalidToken = errors.New("invalid id token")

// KeySource resolves the verification key of a parsed token by its kid header.
type KeySource interface {
	KeyfuncCtx(ctx context.Context) jwt.Keyfunc
}

// NewGoogleKeys fetches the securetoken JWKS from url and keeps it fresh in the
// background. Unknown key ids trigger a rate-limited refresh.
func NewGoogleKeys(ctx context.Context, url string) (KeySource, error) {
	k, err := keyfunc.NewDefaultCtx(ctx, []string{url})
	if err != nil {
		return nil, fmt.Errorf("load jwks: %w", err)
	}
	return k, nil
}

type FirebaseClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name,omitempty"`
	Picture       string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

type FirebaseVerifier struct {
	projectID string
	keys      KeySource
	leeway    time.Duration
}

func NewFirebaseVerifier(projectID string, keys KeySource) *FirebaseVerifier {
	return &FirebaseVerifier{projectID: projectID, keys: keys, leeway: 30 * time.Second}
}

// Verify checks the RS256 signature against the published keys and the
// audience, issuer, subject and expiry claims of a Firebase ID token.
func (v *FirebaseVerifier) Verify(ctx context.Context, raw string) (*FirebaseClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(v.projectID),
		jwt.WithIssuer(firebaseIssuerPrefix+v.projectID),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(v.leeway),
	)

	// bounds the wait on the unknown-kid refresh limiter
	ctx, cancel := context.WithTimeout(ctx, keyLookupTimeout)
	defer cancel()
	lookup := v.keys.KeyfuncCtx(ctx)

	claims := &FirebaseClaims{}
	token, err := parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if kid, _ := t.Header["kid"].(string); kid == "" {
			return nil, errors.New("missing kid header")
		}
		return lookup(t)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}

	return claims, nil
}
