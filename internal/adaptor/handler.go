package adaptor

import (
	"errors"
	"net/http"

	"sports-club/internal/usecase"
	"sports-club/pkg/apperror"
	"sports-club/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Booking *BookingHandler
	User    *UserHandler
	Payment *PaymentHandler
	Health  *HealthHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, pinger Pinger, log *zap.Logger) *Handler {
	return &Handler{
		Booking: NewBookingHandler(service.Booking, config.Auth.EnforceEmailMatch, log),
		User:    NewUserHandler(service.User, service.Membership, log),
		Payment: NewPaymentHandler(service.Payment, log),
		Health:  NewHealthHandler(config.App.Name, pinger, log),
	}
}

// writeServiceError maps a service failure onto its status code. Client
// mistakes are logged at warn, everything else at error.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		appErr = apperror.Upstream("Internal server error", err)
	}

	if appErr.StatusCode() >= http.StatusInternalServerError {
		log.Error(operation+" failed", zap.String("kind", string(appErr.Kind)), zap.Error(err))
	} else {
		log.Warn(operation+" failed", zap.String("kind", string(appErr.Kind)), zap.Error(err))
	}

	utils.ResponseAppError(w, appErr)
}
