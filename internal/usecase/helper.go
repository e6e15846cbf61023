package usecase

import (
	"context"
	"errors"
	"time"

	"sports-club/pkg/apperror"
	"sports-club/pkg/events"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("sports-club/internal/usecase")

func utcNow() time.Time {
	return time.Now().UTC()
}

// asAppError passes typed failures through and wraps anything else as upstream.
func asAppError(log *zap.Logger, err error, message string, fields ...zap.Field) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	log.Error(message, append(fields, zap.Error(err))...)
	return apperror.Upstream(message, err)
}

// publish hands an event off after commit. Failures are logged only.
func publish(ctx context.Context, pub events.Publisher, log *zap.Logger, routingKey string, data any) {
	if err := pub.Publish(ctx, routingKey, data); err != nil {
		log.Warn("Failed to publish event", zap.String("routing_key", routingKey), zap.Error(err))
	}
}
