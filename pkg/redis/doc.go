// Package redis connects the toolkit to the Redis server that backs the
// ephemeral challenge store and the enabled-flag cache.
//
// Connect retries with a configurable interval so services can start while
// Redis is still coming up; Healthcheck plugs into liveness and readiness
// probes. Configuration comes from environment variables via
// github.com/caarlos0/env.
//
//	cfg := redis.Config{ConnectionURL: "redis://localhost:6379/0", RetryAttempts: 3,
//		RetryInterval: 5 * time.Second, ConnectTimeout: 30 * time.Second}
//	client, err := redis.Connect(ctx, cfg)
package redis
