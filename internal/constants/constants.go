package constants

// Session / context keys
const (
	SessionCookieName = "medicheck_session"
	ContextKeyUserID  = "user_id"
)

// Authentication limits
const (
	MinPasswordLength = 8
)

// Field length limits, matching the column sizes
const (
	MaxNameLength  = 255
	MaxEmailLength = 255
	MaxShortText   = 255
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 50
	MaxPageSize     = 100
)
