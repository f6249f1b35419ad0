package contextkeys

type contextKey string

// DBContextKey stores the request-scoped *gorm.DB in the gin context.
const DBContextKey = contextKey("db")

// PrincipalKey stores the authenticated *auth.Principal in the gin context.
const PrincipalKey = contextKey("principal")
