// Package payment creates payment intents with an external card processor.
package payment

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned by gateways that have no processor credentials.
var ErrNotConfigured = errors.New("payment processor not configured")

type IntentRequest struct {
	AmountCents int64
	Currency    string
	Metadata    map[string]string
}

type Intent struct {
	ID           string
	ClientSecret string
}

type Gateway interface {
	CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error)
}

// Disabled is the gateway used when no secret key is configured.
type Disabled struct{}

func (Disabled) CreateIntent(context.Context, IntentRequest) (*Intent, error) {
	return nil, ErrNotConfigured
}
