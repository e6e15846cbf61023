package middleware

import (
	"context"
	"net/http"
	"strings"

	"sports-club/pkg/auth"
	"sports-club/pkg/utils"

	"go.uber.org/zap"
)

// TokenVerifier checks an identity provider ID token.
type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (*auth.FirebaseClaims, error)
}

// FirebaseAuth requires a verified Firebase ID token. A missing header or token
// is 401, a token that fails verification is 403.
func FirebaseAuth(verifier TokenVerifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "unauthorized access - no authorization header")
				return
			}

			scheme, token, found := strings.Cut(strings.TrimSpace(authHeader), " ")
			token = strings.TrimSpace(token)
			if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
				utils.ResponseUnauthorized(w, "unauthorized access - no token provided")
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				logger.Warn("Token verification failed",
					zap.String("path", r.URL.Path),
					zap.Error(err))
				utils.ResponseForbidden(w, "forbidden access - invalid token")
				return
			}

			ctx := utils.SetIdentityContext(r.Context(), utils.Identity{
				UID:   claims.Subject,
				Email: utils.NormalizeEmail(claims.Email),
			})
			ctx = utils.SetTokenContext(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
