// Package htmx detects HTMX requests and writes HTMX response headers.
//
// The admin UI swaps server-rendered fragments; [Render] writes a fragment
// together with its headers and any out-of-band components:
//
//	err := htmx.Render(ctx, w, http.StatusOK, field,
//	    htmx.WithReswap(htmx.SwapOuterHTML),
//	    htmx.WithTriggerDetail("slug:resolved", map[string]string{"value": v}),
//	)
//
// [Redirect] sends HX-Redirect for HTMX requests and a 303 otherwise.
package htmx
