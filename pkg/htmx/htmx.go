package htmx

import "net/http"

// IsHTMX returns true if the request originated from HTMX.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get(HeaderHXRequest) == "true"
}

// TriggerName returns the name attribute of the element that fired the
// request, or "" for non-HTMX requests.
func TriggerName(r *http.Request) string {
	if !IsHTMX(r) {
		return ""
	}
	return r.Header.Get(HeaderHXTriggerName)
}

// Target returns the id of the element being swapped.
func Target(r *http.Request) string {
	if !IsHTMX(r) {
		return ""
	}
	return r.Header.Get(HeaderHXTarget)
}
