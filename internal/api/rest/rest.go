package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/stoneyard/remnant-portal/internal/api/middleware"
	"github.com/stoneyard/remnant-portal/internal/domain"
	"github.com/stoneyard/remnant-portal/internal/identity"
	"github.com/stoneyard/remnant-portal/internal/store"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, sessionCfg middleware.SessionConfig, resolver identity.Resolver, st store.Store) {
	// Health check endpoint (no auth, no prefix)
	router.GET("/health", handler.HealthCheck)

	session := middleware.Session(sessionCfg, resolver, st)
	admin := middleware.RequireRole(domain.RoleAdmin)

	api := router.Group("/api")
	{
		// Customer-facing inventory (public read access)
		api.GET("/remnants", handler.ListRemnants)

		// Hold requests: creation is a customer action, the rest is admin
		api.POST("/hold_requests", handler.CreateHoldRequest)
		api.GET("/hold_requests", session, admin, handler.ListHoldRequests)
		api.POST("/hold_requests/:id/approve", session, admin, handler.ApproveHoldRequest)
		api.POST("/hold_requests/:id/reject", session, admin, handler.RejectHoldRequest)

		// Session
		api.POST("/login", handler.Login)
		api.POST("/logout", handler.Logout)
		api.GET("/me", session, handler.Me)

		// Admin inventory management
		api.GET("/admin_remnants", session, admin, handler.ListAdminRemnants)
		api.POST("/admin_remnants/:id", session, admin, handler.UpdateRemnant)
		api.DELETE("/admin_remnants/:id", session, admin, handler.DeleteRemnant)
	}
}
