package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sports-club/internal/data/repository"
	"sports-club/internal/wire"
	"sports-club/pkg/auth"
	"sports-club/pkg/database"
	"sports-club/pkg/events"
	"sports-club/pkg/metrics"
	"sports-club/pkg/middleware"
	"sports-club/pkg/payment"
	"sports-club/pkg/tracing"
	"sports-club/pkg/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

func serveCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, logger, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServer(ctx, config, logger, migrate)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")

	return cmd
}

func runServer(ctx context.Context, config *utils.Config, logger *zap.Logger, migrate bool) error {
	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Error("Failed to connect to database", zap.Error(err))
		return err
	}
	defer db.Close()
	logger.Info("Database connected successfully")

	if migrate {
		if err := database.Migrate(ctx, config.Database.DSN(), logger); err != nil {
			logger.Error("Failed to apply migrations", zap.Error(err))
			return err
		}
	}

	shutdownTracing, err := tracing.Setup(ctx, config.App.Name, config.Tracing)
	if err != nil {
		logger.Error("Failed to set up tracing", zap.Error(err))
		return err
	}

	publisher := newPublisher(config, logger)
	defer publisher.Close()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	var gateway payment.Gateway = payment.Disabled{}
	if config.Stripe.SecretKey != "" {
		gateway = payment.NewStripeGateway(config.Stripe.SecretKey, nil, logger)
	} else {
		logger.Warn("STRIPE_SECRET_KEY not set, payment intents are disabled")
	}

	limiter, closeLimiter := newLimiter(ctx, config, logger)
	defer closeLimiter()

	var verifier middleware.TokenVerifier
	if config.Auth.Enabled() {
		keys, err := auth.NewGoogleKeys(ctx, config.Auth.JWKSURL)
		if err != nil {
			logger.Error("Failed to load token signing keys", zap.Error(err))
			return err
		}
		verifier = auth.NewFirebaseVerifier(config.Auth.FirebaseProjectID, keys)
	}

	app := wire.Wiring(wire.Deps{
		Repo:      repository.NewRepository(db, logger),
		Config:    config,
		Pinger:    db,
		Publisher: publisher,
		Metrics:   m,
		Gateway:   gateway,
		Limiter:   limiter,
		Verifier:  verifier,
		Log:       logger,
	})

	srv := &http.Server{
		Addr:              ":" + config.App.Port,
		Handler:           otelhttp.NewHandler(app.Router, config.App.Name),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("HTTP server failed", zap.Error(err))
			return err
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.App.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn("Tracer shutdown failed", zap.Error(err))
	}

	logger.Info("Server stopped")
	return nil
}

func newPublisher(config *utils.Config, logger *zap.Logger) events.Publisher {
	if config.Events.AMQPURL == "" {
		logger.Info("AMQP_URL not set, domain events are discarded")
		return events.Noop{}
	}

	publisher, err := events.NewAMQPPublisher(config.Events.AMQPURL, config.Events.Exchange, logger)
	if err != nil {
		logger.Warn("RabbitMQ unavailable, domain events are discarded", zap.Error(err))
		return events.Noop{}
	}
	return events.NewAsync(publisher, config.Events.QueueSize, config.Events.PublishTimeout, logger)
}

func newLimiter(ctx context.Context, config *utils.Config, logger *zap.Logger) (middleware.Limiter, func()) {
	if config.RateLimit.Requests <= 0 {
		return nil, func() {}
	}

	if config.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     config.Redis.Addr,
			Password: config.Redis.Password,
			DB:       config.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		err := rdb.Ping(pingCtx).Err()
		if err == nil {
			logger.Info("Rate limiting backed by redis", zap.String("addr", config.Redis.Addr))
			limiter := middleware.NewRedisLimiter(rdb, config.RateLimit.Requests, config.RateLimit.Window, config.App.Name+":ratelimit:")
			return limiter, func() { _ = rdb.Close() }
		}
		logger.Warn("Redis unavailable, falling back to in-process rate limiting", zap.Error(err))
		_ = rdb.Close()
	}

	return middleware.NewLocalLimiter(config.RateLimit.Requests, config.RateLimit.Window), func() {}
}
