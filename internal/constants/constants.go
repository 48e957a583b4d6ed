package constants

// Session / context keys
const (
	SessionCookieName = "taskboard_session"
	ContextKeyUserID  = "user_id"
)

// Pagination bounds for task list queries
const (
	DefaultPageSize = 10
	MinPageSize     = 1
	MaxPageSize     = 100
)

// Authentication
const (
	MinPasswordLength = 8
)
