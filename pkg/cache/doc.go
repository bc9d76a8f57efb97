// Package cache provides a generic Cache interface with in-memory and Redis
// implementations.
//
// Both implementations satisfy [Cache], so a service can use [Memory] in a
// single process or in tests and [Redis] when several replicas must share
// invalidations.
//
// TTL semantics for Set:
//   - Positive duration: item expires after this duration
//   - Zero: use the cache's configured default TTL (1 minute by default)
//   - Negative: item never expires
//
// # In-Memory Cache
//
// [NewMemory] keeps entries in a map with a doubly-linked list for LRU
// ordering and sweeps expired entries in the background:
//
//	c := cache.NewMemory[int](
//	    cache.WithDefaultTTL(10 * time.Second),
//	    cache.WithMaxEntries(10000),
//	)
//	defer c.Close()
//
// # Redis Cache
//
// [NewRedis] stores values encoded by a [Codec] (JSON when nil) under an
// optional key prefix:
//
//	client, _ := redis.Open(ctx, cfg.Redis)
//	c := cache.NewRedis[[]string](client, nil, cache.WithPrefix("lookup"))
//
// # Invalidation
//
// DeletePrefix drops a whole key family at once. Callers structure keys so
// that related entries share a prefix, for example "prompts:" for every
// lookup against the prompts resource.
//
// # Stampede Protection
//
// [Group] deduplicates concurrent misses for the same key with
// [golang.org/x/sync/singleflight]:
//
//	var g cache.Group[int]
//	n, err := g.GetOrSet(ctx, c, key, func(ctx context.Context) (int, time.Duration, error) {
//	    n, err := repo.Count(ctx, value)
//	    return n, 0, err
//	})
package cache
