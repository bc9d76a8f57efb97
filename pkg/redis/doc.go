// Package redis opens [github.com/redis/go-redis/v9] clients from an
// environment-driven [Config].
//
// Redis is optional for promptdesk: with REDIS_URL unset the admin keeps its
// lookup cache in process. When set, the lookup cache is shared by all
// replicas so a write on one replica invalidates cached answers everywhere.
//
// # Configuration
//
//	REDIS_URL             - redis:// or rediss:// URL (empty disables Redis)
//	REDIS_POOL_SIZE       - Maximum connections (default: 10)
//	REDIS_MIN_IDLE_CONNS  - Minimum idle connections (default: 2)
//	REDIS_MAX_IDLE_TIME   - Maximum connection idle time (default: 10m)
//	REDIS_MAX_ACTIVE_TIME - Maximum connection lifetime (default: 30m)
//	REDIS_READ_TIMEOUT    - Read timeout (default: 3s)
//	REDIS_WRITE_TIMEOUT   - Write timeout (default: 3s)
//	REDIS_DIAL_TIMEOUT    - Dial timeout (default: 5s)
//	REDIS_RETRY_ATTEMPTS  - Startup ping attempts (default: 3)
//	REDIS_RETRY_INTERVAL  - Base retry interval (default: 2s)
//
// # Usage
//
//	client, err := redis.Open(ctx, cfg.Redis)
//	if err != nil {
//		return err
//	}
//	app := internal.New(
//		internal.WithHealthCheck("redis", redis.Healthcheck(client)),
//		internal.WithShutdownHook(redis.Shutdown(client)),
//	)
//
// # Error Handling
//
//   - [ErrEmptyConnectionURL] - Empty connection URL provided
//   - [ErrFailedToParseURL] - Invalid connection URL format or scheme
//   - [ErrConnectionFailed] - Connection failed after all retry attempts
//   - [ErrHealthcheckFailed] - Redis ping failed
//
// Errors are wrapped using [errors.Join] to preserve the original error context.
package redis
