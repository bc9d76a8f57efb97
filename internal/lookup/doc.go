// Package lookup provides the slug resolver backends.
//
// [Postgres] answers Count and SelectPrefix from the content tables,
// [Memory] keeps values in process, [Cached] puts a short-lived cache in
// front of any backend and [Instrumented] records Prometheus metrics.
// The usual server chain is:
//
//	pg := lookup.NewPostgres(pool, registry)
//	backend := lookup.NewCached(lookup.Instrument(pg, metrics), counts, values)
//
// Table and column names are never taken from the request. They must pass
// the [Whitelist] before any SQL is built.
package lookup
