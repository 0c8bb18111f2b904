package routes

import (
	"github.com/gin-gonic/gin"

	"mealsub/internal/infrastructure/permission"
	adminSubscriptionHandlers "mealsub/internal/interfaces/http/handlers/admin/subscription"
	"mealsub/internal/interfaces/http/middleware"
)

// AdminRouteConfig contains dependencies for admin routes.
type AdminRouteConfig struct {
	AdminSubscriptionHandler *adminSubscriptionHandlers.Handler
	AuthMiddleware           *middleware.AuthMiddleware
	PermissionMiddleware     *middleware.PermissionMiddleware
}

// SetupAdminRoutes configures admin subscription routes.
// :sid is subscription SID (msub_xxx format)
// :day_index is the zero-based position in the delivery schedule
func SetupAdminRoutes(engine *gin.Engine, cfg *AdminRouteConfig) {
	admin := engine.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAuth())

	subscriptions := admin.Group("/subscriptions")
	{
		subscriptions.GET("",
			cfg.PermissionMiddleware.RequirePermission(permission.ResourceSubscription, permission.ActionList),
			cfg.AdminSubscriptionHandler.List,
		)
		subscriptions.POST("/:sid/deliveries/:day_index/deliver",
			cfg.PermissionMiddleware.RequirePermission(permission.ResourceDelivery, permission.ActionMark),
			cfg.AdminSubscriptionHandler.MarkDelivered,
		)
	}
}
