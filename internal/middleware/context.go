package middleware

// Context keys used to stash per-request metadata.
const (
	ContextKeyRequestID = "request_id"
)
