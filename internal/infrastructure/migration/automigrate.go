package migration

import (
	"mealsub/internal/infrastructure/persistence/models"
)

// AutoMigrateModels lists the models the gorm strategy creates. The users
// table is included so SQLite development databases can resolve owners.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.SubscriptionModel{},
	}
}
