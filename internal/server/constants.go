package server

const (
	// Log messages
	LogMsgServerStarting    = "Server starting"
	LogMsgRequestStarted    = "Request started"
	LogMsgRequestCompleted  = "Request completed"
	LogMsgRequestHeaders    = "Request headers"

	// Header names
	HeaderAuthorization = "Authorization"
)
