package adaptor

import (
	"encoding/json"
	"net/http"

	"sports-club/internal/dto/request"
	"sports-club/internal/usecase"
	"sports-club/pkg/utils"

	"go.uber.org/zap"
)

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// CreatePaymentIntent handles POST /create-payment-intent
func (h *PaymentHandler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req request.PaymentIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Valid amount is required", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	intent, err := h.service.CreatePaymentIntent(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create payment intent")
		return
	}

	utils.ResponseSuccess(w, "success", intent)
}
