package adaptor

import (
	"context"
	"net/http"
	"time"

	"sports-club/pkg/utils"

	"go.uber.org/zap"
)

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	name   string
	pinger Pinger
	log    *zap.Logger
}

func NewHealthHandler(name string, pinger Pinger, log *zap.Logger) *HealthHandler {
	return &HealthHandler{
		name:   name,
		pinger: pinger,
		log:    log.With(zap.String("handler", "health")),
	}
}

// Root handles GET /
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Sports Club Management System API Running"))
}

// Live handles GET /health
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "OK", map[string]string{"service": h.name})
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.pinger.Ping(ctx); err != nil {
		h.log.Warn("Readiness check failed", zap.Error(err))
		utils.ResponseJSON(w, http.StatusServiceUnavailable, false, "Database unavailable", nil, nil)
		return
	}

	utils.ResponseSuccess(w, "Ready", nil)
}
