package migration

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"mealsub/internal/shared/config"
	"mealsub/internal/shared/logger"
)

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks the strategy for the database driver: SQL scripts for
// MySQL, gorm AutoMigrate for SQLite.
func NewManager(driver string, log logger.Interface) *Manager {
	var strategy Strategy

	switch driver {
	case config.DriverSQLite:
		strategy = NewGormAutoMigrateStrategy(log)
	default:
		strategy = NewGooseStrategy(Scripts(), log)
	}

	return NewManagerWithStrategy(strategy, log)
}

// NewManagerWithStrategy creates a new migration manager with a specific strategy
func NewManagerWithStrategy(strategy Strategy, log logger.Interface) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   log,
	}
}

// Migrate executes the configured migration strategy
func (m *Manager) Migrate(ctx context.Context, db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(ctx, db); err != nil {
		m.logger.Errorw("migration failed", "strategy", m.strategy.GetName(), "error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully", "strategy", m.strategy.GetName())
	return nil
}

// GetStrategy returns the current migration strategy
func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}
