package http

import (
	"gorm.io/gorm"

	"mealsub/internal/interfaces/http/handlers"
	adminSubscriptionHandlers "mealsub/internal/interfaces/http/handlers/admin/subscription"
	"mealsub/internal/shared/logger"
)

// allHandlers holds the HTTP handlers registered by SetupRoutes.
type allHandlers struct {
	subscriptionHandler      *handlers.SubscriptionHandler
	adminSubscriptionHandler *adminSubscriptionHandlers.Handler
	healthHandler            *handlers.HealthHandler
}

func newHandlers(ucs *allUseCases, gormDB *gorm.DB, log logger.Interface) *allHandlers {
	return &allHandlers{
		subscriptionHandler: handlers.NewSubscriptionHandler(
			ucs.createSubscription, ucs.getLatestSubscription, log,
		),
		adminSubscriptionHandler: adminSubscriptionHandlers.NewHandler(
			ucs.listSubscriptions, ucs.markDelivered, log,
		),
		healthHandler: handlers.NewHealthHandler(gormDB, log),
	}
}
