package wire

import (
	"net/http"

	"sports-club/internal/adaptor"
	"sports-club/internal/data/repository"
	"sports-club/internal/usecase"
	"sports-club/pkg/events"
	"sports-club/pkg/metrics"
	"sports-club/pkg/middleware"
	"sports-club/pkg/payment"
	"sports-club/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// App holds the assembled HTTP surface.
type App struct {
	Router *chi.Mux
}

// Deps are the collaborators built by the process entrypoint.
type Deps struct {
	Repo      *repository.Repository
	Config    *utils.Config
	Pinger    adaptor.Pinger
	Publisher events.Publisher
	Metrics   *metrics.Metrics
	Gateway   payment.Gateway
	Limiter   middleware.Limiter
	Verifier  middleware.TokenVerifier
	Log       *zap.Logger
}

// Wiring builds services and handlers and mounts every route.
func Wiring(deps Deps) *App {
	service := usecase.NewService(usecase.Dependencies{
		Repo:      deps.Repo,
		Config:    deps.Config,
		Publisher: deps.Publisher,
		Metrics:   deps.Metrics,
		Gateway:   deps.Gateway,
		Log:       deps.Log,
	})
	handler := adaptor.NewHandler(service, deps.Config, deps.Pinger, deps.Log)

	return &App{
		Router: setupRouter(handler, deps),
	}
}

func setupRouter(handler *adaptor.Handler, deps Deps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(deps.Log))
	r.Use(middleware.Recover(deps.Log))
	r.Use(cors.Handler(middleware.CORSOptions(deps.Config.App.AllowedOrigins)))
	r.Use(middleware.Metrics(deps.Metrics))
	if deps.Limiter != nil {
		r.Use(middleware.RateLimit(deps.Limiter, deps.Metrics, deps.Log))
	}

	r.Get("/", handler.Health.Root)
	r.Get("/health", handler.Health.Live)
	r.Get("/ready", handler.Health.Ready)
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	protect := authMiddleware(deps)
	wireBooking(r, handler.Booking, protect)
	wireUser(r, handler.User, protect)
	wirePayment(r, handler.Payment)

	return r
}

// authMiddleware returns the token check for protected routes, or a
// pass-through when no Firebase project is configured.
func authMiddleware(deps Deps) func(next http.Handler) http.Handler {
	if !deps.Config.Auth.Enabled() || deps.Verifier == nil {
		deps.Log.Warn("Token verification disabled, protected routes are open")
		return func(next http.Handler) http.Handler { return next }
	}
	return middleware.FirebaseAuth(deps.Verifier, deps.Log)
}
