package constants

// Context keys
const (
	ContextKeyUserID = "user_id"
	ContextKeyUser   = "current_user"
)

// Password rules
const (
	MinPasswordLength = 8
)

// Pagination limits
const (
	MinPageSize = 1
	MaxPageSize = 1000

	DefaultAdminLimit = 100
)

// UploadSignatureTTLSeconds is how long an upload signature stays valid.
const UploadSignatureTTLSeconds = 30 * 60
