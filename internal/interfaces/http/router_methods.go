package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"mealsub/internal/infrastructure/config"
	"mealsub/internal/interfaces/http/middleware"
	"mealsub/internal/interfaces/http/routes"
	"mealsub/internal/shared/constants"
	"mealsub/internal/shared/utils"
)

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes(cfg *config.Config) {
	c := r.container

	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(c.log))
	r.engine.Use(middleware.Recovery(c.log))
	r.engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	r.engine.NoRoute(func(ctx *gin.Context) {
		utils.ErrorResponse(ctx, http.StatusNotFound, constants.ErrMsgResourceNotFound)
	})

	r.engine.GET("/health", c.hdlrs.healthHandler.HealthCheck)
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupSubscriptionRoutes(r.engine, &routes.SubscriptionRouteConfig{
		SubscriptionHandler:  c.hdlrs.subscriptionHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})

	routes.SetupAdminRoutes(r.engine, &routes.AdminRouteConfig{
		AdminSubscriptionHandler: c.hdlrs.adminSubscriptionHandler,
		AuthMiddleware:           c.authMiddleware,
		PermissionMiddleware:     c.permissionMiddleware,
	})
}
