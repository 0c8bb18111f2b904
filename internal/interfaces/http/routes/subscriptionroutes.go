// Package routes provides HTTP route configurations.
package routes

import (
	"github.com/gin-gonic/gin"

	"mealsub/internal/infrastructure/permission"
	"mealsub/internal/interfaces/http/handlers"
	"mealsub/internal/interfaces/http/middleware"
)

// SubscriptionRouteConfig contains dependencies for the caller's own subscription routes.
type SubscriptionRouteConfig struct {
	SubscriptionHandler  *handlers.SubscriptionHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupSubscriptionRoutes configures user subscription routes.
// Routes: /subscriptions, /subscriptions/me
func SetupSubscriptionRoutes(engine *gin.Engine, cfg *SubscriptionRouteConfig) {
	subscriptions := engine.Group("/subscriptions")
	subscriptions.Use(cfg.AuthMiddleware.RequireAuth())
	{
		subscriptions.POST("",
			cfg.PermissionMiddleware.RequirePermission(permission.ResourceSubscription, permission.ActionCreate),
			cfg.SubscriptionHandler.CreateSubscription,
		)
		subscriptions.GET("/me",
			cfg.PermissionMiddleware.RequirePermission(permission.ResourceSubscription, permission.ActionReadOwn),
			cfg.SubscriptionHandler.GetMySubscription,
		)
	}
}
