package htmx

// Response headers.
const (
	HeaderHXRedirect   = "HX-Redirect"
	HeaderHXRefresh    = "HX-Refresh"
	HeaderHXPushURL    = "HX-Push-Url"
	HeaderHXReswap     = "HX-Reswap"
	HeaderHXRetarget   = "HX-Retarget"
	HeaderHXTrigger    = "HX-Trigger"
	HeaderHXTriggerSet = "HX-Trigger-After-Settle"
)

// Request headers.
const (
	HeaderHXRequest     = "HX-Request"
	HeaderHXTarget      = "HX-Target"
	HeaderHXTriggerName = "HX-Trigger-Name"
	HeaderHXCurrentURL  = "HX-Current-URL"
)
