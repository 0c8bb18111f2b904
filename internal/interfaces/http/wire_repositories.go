package http

import (
	"gorm.io/gorm"

	"mealsub/internal/domain/subscription"
	"mealsub/internal/infrastructure/repository"
	"mealsub/internal/shared/db"
	"mealsub/internal/shared/logger"
)

// repositories holds the persistence dependencies shared by use cases.
type repositories struct {
	subscriptionRepo subscription.SubscriptionRepository
	txManager        *db.TransactionManager
}

func newRepositories(gormDB *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		subscriptionRepo: repository.NewSubscriptionRepository(gormDB, log),
		txManager:        db.NewTransactionManager(gormDB),
	}
}
