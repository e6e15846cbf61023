package wire

import (
	"sports-club/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePayment(r chi.Router, paymentHandler *adaptor.PaymentHandler) {
	r.Post("/create-payment-intent", paymentHandler.CreatePaymentIntent)
}
