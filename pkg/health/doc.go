// Package health provides liveness and readiness HTTP handlers.
//
// [LivenessHandler] always answers OK while the process runs.
// [ReadinessHandler] runs a set of named [Checks] concurrently and answers
// 503 when any of them fails. [Run] exposes the same aggregation for callers
// outside HTTP, such as the promptctl doctor command.
//
// Handlers answer with plain text by default. JSON is returned when the
// request sets Accept: application/json or ?format=json:
//
//	{
//	  "status": "unhealthy",
//	  "checks": {
//	    "postgres": {"status": "healthy", "duration": "1.2ms"},
//	    "redis": {"status": "unhealthy", "error": "connection refused", "duration": "3ms"}
//	  }
//	}
//
// Usage:
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "postgres": db.Healthcheck(pool),
//	    "redis":    redis.Healthcheck(client),
//	}, health.WithLogger(log), health.WithTimeout(3*time.Second)))
package health
