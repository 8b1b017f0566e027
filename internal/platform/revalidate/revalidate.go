package revalidate

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"

	portssvc "github.com/fittrack/gym_backoffice/internal/core/ports/services"
	"github.com/fittrack/gym_backoffice/internal/middleware"
)

// Channel is the redis pub/sub channel the UI layer subscribes to for cache
// invalidation. Messages are the revalidation targets, one publish each.
const Channel = "gym:revalidate"

// RedisRevalidator publishes revalidation targets to redis. Publishing is
// fire and forget: failures are logged and never propagate to the operation
// that triggered the signal.
type RedisRevalidator struct {
	client  redis.Cmdable
	timeout time.Duration
}

// NewRedisRevalidator creates a revalidator over the given redis client.
func NewRedisRevalidator(client redis.Cmdable, timeout time.Duration) *RedisRevalidator {
	return &RedisRevalidator{client: client, timeout: timeout}
}

var _ portssvc.Revalidator = (*RedisRevalidator)(nil)

// Revalidate publishes each target on the revalidation channel. The caller's
// transaction has already committed; a lost signal means a stale screen, not
// lost data, so errors are only logged.
func (r *RedisRevalidator) Revalidate(ctx context.Context, targets ...string) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Detach from the request's cancellation: the signal should still go out
	// when the client disconnects right after the commit.
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()

	for _, target := range targets {
		if err := r.client.Publish(pubCtx, Channel, target).Err(); err != nil {
			logger.Warn("Failed to publish revalidation signal",
				slog.String("target", target),
				slog.String("error", err.Error()),
			)
		}
	}
}

// NoopRevalidator logs targets instead of publishing them. Used when no
// redis instance is configured and in tests.
type NoopRevalidator struct{}

var _ portssvc.Revalidator = (*NoopRevalidator)(nil)

// Revalidate logs the targets at debug level and does nothing else.
func (NoopRevalidator) Revalidate(ctx context.Context, targets ...string) {
	logger := middleware.GetLoggerFromCtx(ctx)
	for _, target := range targets {
		logger.Debug("Revalidation signal (noop)", slog.String("target", target))
	}
}
