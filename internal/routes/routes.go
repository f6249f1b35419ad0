package routes

import (
	"net/http"

	"propmatch_backend/internal/handlers"
	"propmatch_backend/internal/logger"
	"propmatch_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

const APIPrefix = "/api/v1"

// RegisterRoutes mounts the API behind the readiness gate. /healthz stays
// outside the gate so probes can watch startup.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers, gate middleware.Readiness) {
	ginRouter.GET("/healthz", healthz(gate))

	api := ginRouter.Group(APIPrefix)
	api.Use(middleware.ReadinessMiddleware(gate))
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.JobHandler.RegisterRoutes(api)
		appHandlers.ProfessionalHandler.RegisterRoutes(api)
		appHandlers.AdminHandler.RegisterRoutes(api)
		appHandlers.LocationHandler.RegisterRoutes(api)
	}

	logger.Info("HTTP routes registered", "prefix", APIPrefix)
}

func healthz(gate middleware.Readiness) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !gate.Ready() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "starting", "ready": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "ready": true})
	}
}
