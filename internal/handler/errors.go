package handler

// Generic HTTP error messages for client responses.
// These intentionally do not expose internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
	ErrMsgInvalidUserID         = "Invalid user ID"
	ErrMsgInvalidPoolID         = "Invalid pool ID"
	ErrMsgInvalidInstanceID     = "Invalid instance ID"
	ErrMsgInvalidLimit          = "Invalid limit parameter"
	ErrMsgInvalidCategory       = "Invalid equipment category"
	ErrMsgPoolNotFoundHTTP      = "Pool not found"
	ErrMsgInternal              = "Internal server error"
)
