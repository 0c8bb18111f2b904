package migration

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"mealsub/internal/shared/logger"
)

//go:embed scripts/*.sql
var embeddedScripts embed.FS

// Scripts returns the versioned SQL migrations bundled into the binary.
func Scripts() fs.FS {
	sub, err := fs.Sub(embeddedScripts, "scripts")
	if err != nil {
		panic(fmt.Sprintf("migration scripts not embedded: %v", err))
	}
	return sub
}

// Strategy defines the interface for different migration strategies
type Strategy interface {
	// Migrate executes the migration strategy
	Migrate(ctx context.Context, db *gorm.DB) error
	// GetName returns the strategy name
	GetName() string
}

// GormAutoMigrateStrategy creates tables from the gorm models. Used for
// SQLite development and test databases.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy(log logger.Interface) Strategy {
	return &GormAutoMigrateStrategy{logger: log}
}

func (s *GormAutoMigrateStrategy) Migrate(ctx context.Context, db *gorm.DB) error {
	migrateModels := AutoMigrateModels()
	s.logger.Infow("starting gorm auto migration", "models_count", len(migrateModels))

	if err := db.WithContext(ctx).AutoMigrate(migrateModels...); err != nil {
		s.logger.Errorw("auto migration failed", "error", err)
		return fmt.Errorf("failed to auto migrate: %w", err)
	}

	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}

// GooseStrategy applies the embedded SQL scripts to MySQL.
type GooseStrategy struct {
	scripts fs.FS
	logger  logger.Interface
}

func NewGooseStrategy(scripts fs.FS, log logger.Interface) *GooseStrategy {
	return &GooseStrategy{
		scripts: scripts,
		logger:  log,
	}
}

func (s *GooseStrategy) provider(db *gorm.DB) (*goose.Provider, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectMySQL, sqlDB, s.scripts)
	if err != nil {
		return nil, fmt.Errorf("failed to create goose provider: %w", err)
	}
	return provider, nil
}

func (s *GooseStrategy) Migrate(ctx context.Context, db *gorm.DB) error {
	provider, err := s.provider(db)
	if err != nil {
		return err
	}

	currentVersion, err := provider.GetDBVersion(ctx)
	if err != nil {
		s.logger.Errorw("failed to get current version", "error", err)
		return fmt.Errorf("failed to get current version: %w", err)
	}

	s.logger.Infow("current migration status", "version", currentVersion)

	results, err := provider.Up(ctx)
	if err != nil {
		s.logger.Errorw("migration failed", "error", err)
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	for _, r := range results {
		s.logger.Infow("migration applied",
			"version", r.Source.Version,
			"path", r.Source.Path,
			"duration", r.Duration)
	}

	finalVersion, err := provider.GetDBVersion(ctx)
	if err != nil {
		s.logger.Errorw("failed to get final version", "error", err)
		return fmt.Errorf("failed to get final version: %w", err)
	}

	s.logger.Infow("migration completed successfully",
		"from_version", currentVersion,
		"to_version", finalVersion)

	return nil
}

func (s *GooseStrategy) GetName() string {
	return "goose"
}

func (s *GooseStrategy) MigrateDown(ctx context.Context, db *gorm.DB, steps int) error {
	s.logger.Infow("starting down migration", "steps", steps)

	provider, err := s.provider(db)
	if err != nil {
		return err
	}

	for i := 0; i < steps; i++ {
		if _, err := provider.Down(ctx); err != nil {
			s.logger.Errorw("down migration failed", "error", err)
			return fmt.Errorf("failed to run down migration: %w", err)
		}
	}

	s.logger.Infow("down migration completed successfully")
	return nil
}

// MigrationState is one row of the status report.
type MigrationState struct {
	Version int64
	Path    string
	Applied bool
}

func (s *GooseStrategy) Status(ctx context.Context, db *gorm.DB) ([]MigrationState, error) {
	provider, err := s.provider(db)
	if err != nil {
		return nil, err
	}

	statuses, err := provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}

	out := make([]MigrationState, 0, len(statuses))
	for _, st := range statuses {
		out = append(out, MigrationState{
			Version: st.Source.Version,
			Path:    st.Source.Path,
			Applied: st.State == goose.StateApplied,
		})
	}
	return out, nil
}

// DefaultScriptsDir is where new migration scripts are written, relative to
// the repository root.
const DefaultScriptsDir = "internal/infrastructure/migration/scripts"

// CreateScript writes an empty sequentially numbered goose SQL migration
// into dir. The file is embedded on the next build.
func CreateScript(dir, name string) error {
	if name == "" {
		return fmt.Errorf("migration name is required")
	}
	goose.SetSequential(true)
	if err := goose.Create(nil, dir, name, "sql"); err != nil {
		return fmt.Errorf("failed to create migration %q: %w", name, err)
	}
	return nil
}
