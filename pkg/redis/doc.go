// Package redis opens the optional Redis connection behind the shared page
// cache. It wraps [github.com/redis/go-redis/v9] with env-driven settings,
// startup retries, a readiness check and a shutdown hook.
//
//	var cfg redis.Config // populated from REDIS_* variables
//	if cfg.Enabled() {
//		client, err := redis.Open(ctx, cfg)
//		if err != nil {
//			return err
//		}
//		app := pagefarm.New(
//			pagefarm.WithHealthChecks(pagefarm.WithReadinessCheck("redis", redis.Healthcheck(client))),
//		)
//		err = app.Run(":8080", pagefarm.ShutdownHook(redis.Shutdown(client)))
//	}
//
// Errors wrap [ErrEmptyConnectionURL], [ErrFailedToParseURL],
// [ErrConnectionFailed] or [ErrHealthcheckFailed] via [errors.Join].
package redis
