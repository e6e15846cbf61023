package utils

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Stripe    StripeConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Events    EventsConfig
	Tracing   TracingConfig
	Booking   BookingConfig
}

type AppConfig struct {
	Name            string
	Port            string
	Debug           bool
	LogPath         string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32
}

// DSN is the keyword/value connection string for pgx.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("user=%s password=%s dbname=%s sslmode=%s host=%s port=%s",
		c.User, c.Password, c.Name, c.SSLMode, c.Host, c.Port)
}

type AuthConfig struct {
	FirebaseProjectID string
	JWKSURL           string
	EnforceEmailMatch bool
}

// Enabled reports whether ID tokens must be verified.
func (c AuthConfig) Enabled() bool {
	return c.FirebaseProjectID != ""
}

type StripeConfig struct {
	SecretKey string
	Currency  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

type EventsConfig struct {
	AMQPURL        string
	Exchange       string
	QueueSize      int
	PublishTimeout time.Duration
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	SampleRatio float64
}

type BookingConfig struct {
	StrictTransitions bool
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "sports-club")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("FIREBASE_JWKS_URL", "https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com")
	viper.SetDefault("STRIPE_CURRENCY", "usd")
	viper.SetDefault("RATE_LIMIT_REQUESTS", 120)
	viper.SetDefault("RATE_LIMIT_WINDOW", "1m")
	viper.SetDefault("AMQP_EXCHANGE", "sports-club.events")
	viper.SetDefault("EVENTS_QUEUE_SIZE", 1024)
	viper.SetDefault("EVENTS_PUBLISH_TIMEOUT", "3s")
	viper.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")
	viper.SetDefault("OTEL_SAMPLING_RATIO", 1.0)

	// .env is optional, the environment always wins
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:            viper.GetString("APP_NAME"),
			Port:            viper.GetString("PORT"),
			Debug:           viper.GetBool("DEBUG"),
			LogPath:         viper.GetString("LOG_PATH"),
			AllowedOrigins:  splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
			ShutdownTimeout: viper.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Auth: AuthConfig{
			FirebaseProjectID: viper.GetString("FIREBASE_PROJECT_ID"),
			JWKSURL:           viper.GetString("FIREBASE_JWKS_URL"),
			EnforceEmailMatch: viper.GetBool("AUTH_ENFORCE_EMAIL_MATCH"),
		},
		Stripe: StripeConfig{
			SecretKey: viper.GetString("STRIPE_SECRET_KEY"),
			Currency:  viper.GetString("STRIPE_CURRENCY"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Window:   viper.GetDuration("RATE_LIMIT_WINDOW"),
		},
		Events: EventsConfig{
			AMQPURL:        viper.GetString("AMQP_URL"),
			Exchange:       viper.GetString("AMQP_EXCHANGE"),
			QueueSize:      viper.GetInt("EVENTS_QUEUE_SIZE"),
			PublishTimeout: viper.GetDuration("EVENTS_PUBLISH_TIMEOUT"),
		},
		Tracing: TracingConfig{
			Enabled:     viper.GetBool("OTEL_ENABLED"),
			Endpoint:    viper.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
			SampleRatio: viper.GetFloat64("OTEL_SAMPLING_RATIO"),
		},
		Booking: BookingConfig{
			StrictTransitions: viper.GetBool("BOOKING_STRICT_TRANSITIONS"),
		},
	}

	return config, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
