package contextkeys

// ContextKey is a dedicated type for context keys so that values set by this
// application cannot collide with keys set by other packages.
type ContextKey string

const (
	// DBContextKey holds the *gorm.DB handle (pool or transaction) for the
	// current request. Set by middleware.DBMiddleware.
	DBContextKey ContextKey = "tourbook_db"

	// CurrentUserKey holds the authenticated *models.User for the current
	// request. Set by middleware.Authenticate / middleware.OptionalAuth.
	CurrentUserKey ContextKey = "tourbook_current_user"

	// RequestIDKey holds the request id assigned by middleware.RequestID.
	RequestIDKey ContextKey = "tourbook_request_id"
)
