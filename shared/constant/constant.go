package constant

import (
	"time"
)

const (
	Asterix = "*"
	Empty   = ""
)

// ContextGuest is the actor recorded for self-service writes such as
// registration, where no authenticated user exists yet.
const ContextGuest = "guest"

type contextKey string

const (
	ContextKeyUserID    contextKey = "user_id"
	ContextKeyUserEmail contextKey = "user_email"
	ContextKeyUserRoles contextKey = "user_roles"
	ContextKeyTokenID   contextKey = "token_id"
	ContextKeyUserAgent contextKey = "user_agent"
)

// Role names as stored in user metadata and role rows.
const (
	RoleOwner    = "owner"
	RoleStaff    = "staff"
	RoleCustomer = "customer"
)

const (
	RequestParamID      = "id"
	RequestParamFeed    = "feed"
	RequestParamToken   = "token"
	RequestParamPage    = "page"
	RequestParamLimit   = "limit"
	RequestParamSortBy  = "sort_by"
	RequestParamSortDir = "sort_dir"

	RequestMaxMemory = 10 << 20
)

const (
	DefaultValuePage  = 1
	DefaultValueLimit = 10
)

// Audit columns shared by every table.
const (
	FieldCreatedAt  = "created_at"
	FieldModifiedAt = "modified_at"
	FieldModifiedBy = "modified_by"
)

const PqErrorCodeUniqueViolation = "23505"

const (
	DateFormat       = time.RFC3339
	DayDateFormat    = time.DateOnly
	MinutesToSeconds = 60
)

const (
	OtelHandlerScopeName    = "handler"
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelEventScopeName      = "event"
	OtelFeedScopeName       = "feed"
	OtelMediaScopeName      = "media"
	OtelPushScopeName       = "push"
	OtelS3ScopeName         = "s3"

	OtelQueryAttributeKey = "query"
)

const (
	RequestHeaderAuthorization      = "Authorization"
	RequestHeaderAPIKey             = "X-API-Key"
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderForwardedFor       = "X-Forwarded-For"
	RequestHeaderRealIP             = "X-Real-IP"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderContentDisposition = "Content-Disposition"
	RequestHeaderContentLength      = "Content-Length"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
	RequestHeaderRetryAfter         = "Retry-After"
)

const (
	ContentTypeJSON = "application/json"
	ContentTypePDF  = "application/pdf"
	FormFile        = "file"
	FormFolder      = "folder"
)

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorUnhealthy            = "SERVER UNHEALTHY"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)
