// Package handlers declares the admin server's routes.
//
//	GET    /api/lookup/{resource}/count?field=&value=
//	GET    /api/lookup/{resource}/values?field=&prefix=
//	GET    /api/slugs/check?resource=&field=&value=
//	GET    /api/{resource}            POST /api/{resource}
//	GET    /api/{resource}/{id}       PUT  /api/{resource}/{id}   DELETE /api/{resource}/{id}
//	GET    /admin                     GET  /admin/{resource}      GET  /admin/{resource}/new
//	POST   /admin/{resource}          GET  /admin/{resource}/{id} POST /admin/{resource}/{id}
//	POST   /admin/{resource}/{id}/delete
//	POST   /admin/{resource}/slug-field
//
// The lookup routes are the HTTP form of the slug resolver backend and are
// what the CLI's remote backend talks to. Admin writes redirect with a
// one-time notice when the handler is built WithNotices.
package handlers
