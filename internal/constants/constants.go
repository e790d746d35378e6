package constants

import "time"

// Context keys
const (
	ContextKeyUserID    = "user_id"
	ContextKeyRequestID = "request_id"
)

// Auth
const (
	AuthorizationHeader = "Authorization"
	BearerPrefix        = "Bearer "
	MinPasswordLength   = 6
	MaxUsernameLength   = 50
	DefaultTokenTTL     = 24 * time.Hour
)

// Categories and tasks
const (
	MaxCategoryNameLength = 100
	MaxTaskTitleLength    = 255
	MaxAIGeneratedTasks   = 20
)

// Request handling
const (
	DefaultRequestTimeout = 5 * time.Second
	RequestIDHeader       = "X-Request-ID"
)
