package middlewares

// Gin context keys. Plain strings because gin's context map is string-keyed.
const (
	CtxRequestID = "request_id"
	CtxUserEmail = "auth.email"
	CtxUserRole  = "auth.role"
	CtxUserName  = "auth.name"
)
