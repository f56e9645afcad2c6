package constants

// Session / context keys
const (
	SessionCookieName = "fieldnote_session"
	ContextKeyUserID  = "user_id"
	ContextKeyUser    = "current_user"
)

// Validation limits
const (
	MinPasswordLength = 8
	MaxNameLength     = 255
	MaxProgress       = 100
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// DateFormat is the wire format for all date fields (ISO-8601 date).
const DateFormat = "2006-01-02"

// ProjectStatusInProgress is the status value counted on the dashboard.
// Status is otherwise free text.
const ProjectStatusInProgress = "in progress"

// Dashboard aggregation parameters
const (
	DueSoonWindowDays = 7
	RecentMemoLimit   = 5
)
