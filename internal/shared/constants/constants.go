package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderUserAgent     = "User-Agent"

	// Content Types
	ContentTypeJSON = "application/json"

	// Context keys
	ContextKeyUserID        = "user_id"
	ContextKeyUserRole      = "user_role"
	ContextKeyPhoneVerified = "phone_verified"
	ContextKeyRequestID     = "request_id"

	// Database table names
	TableUsers             = "users"
	TableMealSubscriptions = "meal_subscriptions"

	// Subscription defaults
	DefaultSubscriptionDays = 7

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgResourceNotFound    = "Resource not found"
	ErrMsgUnauthorized        = "Unauthorized access"
	ErrMsgForbidden           = "Access forbidden"
	ErrMsgValidationFailed    = "Validation failed"
)
