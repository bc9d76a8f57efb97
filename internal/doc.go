// Package internal is the HTTP application layer of the admin server.
//
// An [App] wraps a chi router. Handlers implement [Handler] and declare
// routes on a [Router]; each route is a [HandlerFunc] that receives a
// [Context] and returns an error. Errors flow to the app's [ErrorHandler],
// which by default renders [HTTPError] values as JSON for /api/ routes and
// as an HTML fragment for the admin UI.
//
//	app := internal.New(
//	    internal.WithLogger(log),
//	    internal.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    internal.WithHealthChecks(
//	        internal.WithReadinessCheck("postgres", db.Healthcheck(pool)),
//	    ),
//	    internal.WithMount("/metrics", promhttp.Handler()),
//	    internal.WithHandlers(handlers.NewLookup(svc, time.Second), handlers.NewAdmin(svc, time.Second)),
//	)
//
//	err := app.Run(":8080",
//	    internal.StartupHook(migrate),
//	    internal.ShutdownHook(db.Shutdown(pool)),
//	)
//
// Run blocks until SIGINT or SIGTERM (or the base context ends), then stops
// accepting requests and runs shutdown hooks in registration order within
// the shutdown timeout.
//
// Responses to HTMX requests are always sent with status 200 so that htmx
// swaps error fragments; [ResponseWriter.Status] keeps the real code for
// logging.
package internal
