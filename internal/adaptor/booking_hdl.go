package adaptor

import (
	"encoding/json"
	"net/http"

	"sports-club/internal/dto/request"
	"sports-club/internal/usecase"
	"sports-club/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service           usecase.BookingService
	enforceEmailMatch bool
	log               *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, enforceEmailMatch bool, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service:           service,
		enforceEmailMatch: enforceEmailMatch,
		log:               log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		h.log.Warn("Create booking validation failed", zap.String("errors", utils.FormatValidationErrors(validationErrors)))
		utils.ResponseBadRequest(w, "Missing required fields", validationErrors)
		return
	}

	// the body email is trusted unless matching is enforced
	if identity, ok := utils.GetIdentityFromContext(r.Context()); ok {
		if bodyEmail := utils.NormalizeEmail(req.UserEmail); identity.Email != bodyEmail {
			h.log.Warn("Booking email differs from token email",
				zap.String("token_email", identity.Email),
				zap.String("body_email", bodyEmail))
			if h.enforceEmailMatch {
				utils.ResponseForbidden(w, "forbidden access - email does not match token")
				return
			}
		}
	}

	booking, err := h.service.CreateBooking(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "Booking created", booking)
}

// ListBookings handles GET /bookings?email=
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.ListBookings(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		h.handleServiceError(w, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetPendingBookings handles GET /bookings/status
func (h *BookingHandler) GetPendingBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.GetPendingBookings(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get pending bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetBookingsByEmail handles GET /bookings/{email}
func (h *BookingHandler) GetBookingsByEmail(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.GetBookingsByEmail(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		h.handleServiceError(w, err, "get bookings by email")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetBookingByID handles GET /bookings/id/{id}
func (h *BookingHandler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	booking, err := h.service.GetBookingByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// GetApprovedBookings handles GET /bookings/approved/{email}
func (h *BookingHandler) GetApprovedBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.GetApprovedBookings(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		h.handleServiceError(w, err, "get approved bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// DeleteBooking handles DELETE /bookings/{id}
func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteBooking(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, err, "delete booking")
		return
	}

	utils.ResponseSuccess(w, "Booking deleted", nil)
}

// DeletePendingBooking handles DELETE /bookings/pending/email/{id}
func (h *BookingHandler) DeletePendingBooking(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeletePendingBooking(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, err, "delete pending booking")
		return
	}

	utils.ResponseSuccess(w, "Pending booking deleted", nil)
}

// UpdateStatus handles PATCH /bookings/{id}/status
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleServiceError(w, err, "update booking status")
		return
	}

	message := "Booking status updated"
	if result.MembershipUpgraded {
		message = "Booking status updated and user upgraded to member"
	}
	utils.ResponseSuccess(w, message, result)
}

func (h *BookingHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	writeServiceError(w, h.log, err, operation)
}
