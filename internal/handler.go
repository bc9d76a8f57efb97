package internal

// Handler declares routes on a router.
//
//	type PromptsHandler struct {
//	    svc *content.Service
//	}
//
//	func (h *PromptsHandler) Routes(r internal.Router) {
//	    r.GET("/api/prompts", h.list)
//	    r.POST("/api/prompts", h.create)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// Returning a non-nil error hands it to the app's ErrorHandler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler renders errors returned from handlers.
type ErrorHandler func(Context, error) error
