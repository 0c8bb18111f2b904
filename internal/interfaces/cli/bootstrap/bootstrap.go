// Package bootstrap loads configuration and initializes the process-wide
// logger, business timezone and database shared by every CLI command.
package bootstrap

import (
	"fmt"

	"mealsub/internal/infrastructure/config"
	"mealsub/internal/infrastructure/database"
	"mealsub/internal/shared/biztime"
	"mealsub/internal/shared/logger"
)

// MapEnvToGinMode translates a deployment environment name to a gin mode.
func MapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}

// LoadConfig loads configuration and initializes logging and the business
// timezone.
func LoadConfig(env string) (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(MapEnvToGinMode(env))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	return cfg, logger.NewLogger(), nil
}

// InitDatabase loads configuration and opens the shared database connection.
// Callers must defer database.Close.
func InitDatabase(env string) (*config.Config, logger.Interface, error) {
	cfg, log, err := LoadConfig(env)
	if err != nil {
		return nil, nil, err
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return cfg, log, nil
}
