package utils

import (
	"context"
)

type contextKey string

const (
	UIDKey   contextKey = "uid"
	EmailKey contextKey = "email"
	TokenKey contextKey = "token"
)

// Identity is the caller verified by the identity provider.
type Identity struct {
	UID   string
	Email string
}

func SetIdentityContext(ctx context.Context, identity Identity) context.Context {
	ctx = context.WithValue(ctx, UIDKey, identity.UID)
	ctx = context.WithValue(ctx, EmailKey, identity.Email)
	return ctx
}

func GetIdentityFromContext(ctx context.Context) (Identity, bool) {
	uid, ok := ctx.Value(UIDKey).(string)
	if !ok || uid == "" {
		return Identity{}, false
	}

	email, _ := ctx.Value(EmailKey).(string)
	return Identity{UID: uid, Email: email}, true
}

// GetTokenFromContext mendapatkan token dari context
func GetTokenFromContext(ctx context.Context) (string, bool) {
	tokenVal := ctx.Value(TokenKey)
	if tokenVal == nil {
		return "", false
	}

	token, ok := tokenVal.(string)
	return token, ok
}

// SetTokenContext menambahkan token ke context
func SetTokenContext(ctx context.Context, token string) context.Context {
	ctx = context.WithValue(ctx, TokenKey, token)
	return ctx
}
