package redis

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/redis/go-redis/v9"
)

// pingTimeout bounds a readiness ping when the probe carries no deadline.
const pingTimeout = time.Second

// Healthcheck returns a readiness check that pings client. A slow Redis
// fails the probe instead of hanging it.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if client == nil {
			return ErrHealthcheckFailed
		}
		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, pingTimeout)
			defer cancel()
		}
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// Shutdown closes client from a server shutdown hook. A client that is
// already closed is not an error.
func Shutdown(client io.Closer) func(context.Context) error {
	return func(context.Context) error {
		if err := client.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
			return err
		}
		return nil
	}
}
