// Package health serves liveness and readiness probes.
//
// Liveness always answers 200. Readiness runs named checks concurrently
// under a shared timeout and answers 503 if any fails; the Redis page cache
// registers one when enabled. Clients asking for JSON, via ?format=json or
// Accept: application/json, get per-check results and optional info such as
// the number of loaded locations.
//
//	mux.Get("/health/ready", health.ReadinessHandler(health.Checks{
//		"redis": redis.Healthcheck(client),
//	}, health.WithInfo(func() map[string]string {
//		return map[string]string{"locations": strconv.Itoa(reg.Len())}
//	})))
package health
