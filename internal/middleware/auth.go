package middleware

import (
	"strings"

	"propmatch_backend/internal/auth"
	"propmatch_backend/internal/logger"
	"propmatch_backend/pkg/apperrors"
	"propmatch_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware verifies the bearer token and stores the caller's Principal.
// Role comes from the token claim and is not re-read from the store.
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		principal, err := tokens.Parse(tokenStr)
		if err != nil {
			logger.CtxWarn(c.Request.Context(), "rejected bearer token", "error", err.Error(), "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			return
		}

		ctx := logger.WithUserID(c.Request.Context(), principal.UserID)
		c.Request = c.Request.WithContext(ctx)
		c.Set(string(contextkeys.PrincipalKey), principal)
		c.Next()
	}
}

// RequireCapability lets the request through only if the caller's role holds capability.
func RequireCapability(capability auth.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
			return
		}

		if !principal.Can(capability) {
			logger.CtxWarn(c.Request.Context(), "capability denied",
				"role", principal.Role,
				"capability", capability,
				"path", c.Request.URL.Path,
			)
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			return
		}

		c.Next()
	}
}

// GetPrincipal returns the Principal stored by AuthMiddleware.
func GetPrincipal(c *gin.Context) (*auth.Principal, bool) {
	val, exists := c.Get(string(contextkeys.PrincipalKey))
	if !exists {
		return nil, false
	}
	principal, ok := val.(*auth.Principal)
	return principal, ok && principal != nil
}
