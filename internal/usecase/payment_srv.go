package usecase

import (
	"context"
	"errors"
	"math"

	"sports-club/internal/dto/request"
	"sports-club/internal/dto/response"
	"sports-club/pkg/apperror"
	"sports-club/pkg/metrics"
	"sports-club/pkg/payment"
	"sports-club/pkg/utils"

	"go.uber.org/zap"
)

type PaymentService interface {
	CreatePaymentIntent(ctx context.Context, req *request.PaymentIntentRequest) (*response.PaymentIntentResponse, error)
}

type paymentService struct {
	gateway  payment.Gateway
	currency string
	metrics  *metrics.Metrics
	log      *zap.Logger
}

func NewPaymentService(gateway payment.Gateway, currency string, m *metrics.Metrics, log *zap.Logger) PaymentService {
	if currency == "" {
		currency = "usd"
	}
	return &paymentService{
		gateway:  gateway,
		currency: currency,
		metrics:  m,
		log:      log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) CreatePaymentIntent(ctx context.Context, req *request.PaymentIntentRequest) (*response.PaymentIntentResponse, error) {
	amount := float64(req.Amount)
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		s.metrics.IncPaymentIntent("invalid")
		return nil, apperror.Validation("Valid amount is required")
	}

	cents := int64(math.Round(amount * 100))
	if cents <= 0 {
		s.metrics.IncPaymentIntent("invalid")
		return nil, apperror.Validation("Valid amount is required")
	}

	intent, err := s.gateway.CreateIntent(ctx, payment.IntentRequest{
		AmountCents: cents,
		Currency:    s.currency,
		Metadata: map[string]string{
			"userEmail":   utils.NormalizeEmail(req.UserEmail),
			"bookingId":   req.BookingID,
			"description": req.Description,
		},
	})
	if err != nil {
		if errors.Is(err, payment.ErrNotConfigured) {
			s.log.Warn("Payment intent requested but no processor is configured")
			return nil, apperror.Unsupported("Payments are not configured")
		}
		s.metrics.IncPaymentIntent("failed")
		s.log.Error("Payment failed",
			zap.Int64("amount_cents", cents),
			zap.String("user_email", req.UserEmail),
			zap.Error(err))
		return nil, apperror.Upstream("Payment failed", err)
	}

	s.metrics.IncPaymentIntent("created")
	s.log.Info("Payment intent created",
		zap.String("payment_intent_id", intent.ID),
		zap.Int64("amount_cents", cents),
		zap.String("booking_id", req.BookingID))

	return &response.PaymentIntentResponse{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
	}, nil
}
