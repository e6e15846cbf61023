package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
	"go.uber.org/zap"
)

type StripeGateway struct {
	client paymentintent.Client
	log    *zap.Logger
}

// NewStripeGateway builds a gateway against backend, or the public API when backend is nil.
func NewStripeGateway(secretKey string, backend stripe.Backend, log *zap.Logger) *StripeGateway {
	if backend == nil {
		backend = stripe.GetBackend(stripe.APIBackend)
	}
	return &StripeGateway{
		client: paymentintent.Client{B: backend, Key: secretKey},
		log:    log.With(zap.String("gateway", "stripe")),
	}
}

func (g *StripeGateway) CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(req.AmountCents),
		Currency:           stripe.String(req.Currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := g.client.New(params)
	if err != nil {
		g.log.Error("Failed to create payment intent",
			zap.Int64("amount_cents", req.AmountCents),
			zap.String("currency", req.Currency),
			zap.Error(err))
		return nil, fmt.Errorf("create payment intent: %w", err)
	}

	return &Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}
