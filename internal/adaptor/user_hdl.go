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

type UserHandler struct {
	service    usecase.UserService
	membership usecase.MembershipService
	log        *zap.Logger
}

func NewUserHandler(service usecase.UserService, membership usecase.MembershipService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service:    service,
		membership: membership,
		log:        log.With(zap.String("handler", "user")),
	}
}

// RegisterUser handles POST /users
func (h *UserHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		h.log.Warn("Register user validation failed", zap.String("errors", utils.FormatValidationErrors(validationErrors)))
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	user, created, err := h.service.RegisterUser(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "register user")
		return
	}

	if created {
		utils.ResponseCreated(w, "User registered", user)
		return
	}
	utils.ResponseSuccess(w, "User already exists", user)
}

// GetUser handles GET /users/{email}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetUserByEmail(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		h.handleServiceError(w, err, "get user")
		return
	}

	utils.ResponseSuccess(w, "success", user)
}

// GetMembers handles GET /users/members
func (h *UserHandler) GetMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.GetMembers(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get members")
		return
	}

	utils.ResponseSuccess(w, "success", members)
}

// RevokeMembership handles DELETE /users/member/{email}
func (h *UserHandler) RevokeMembership(w http.ResponseWriter, r *http.Request) {
	result, err := h.membership.RevokeMembership(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		h.handleServiceError(w, err, "revoke membership")
		return
	}

	utils.ResponseSuccess(w, "Membership revoked", result)
}

func (h *UserHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	writeServiceError(w, h.log, err, operation)
}
