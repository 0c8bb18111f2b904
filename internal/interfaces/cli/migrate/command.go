package migrate

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"mealsub/internal/infrastructure/database"
	"mealsub/internal/infrastructure/migration"
	"mealsub/internal/interfaces/cli/bootstrap"
	sharedConfig "mealsub/internal/shared/config"
	"mealsub/internal/shared/logger"
)

var (
	env   string
	name  string
	dir   string
	steps int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations including running migrations, checking status, and creating new migration files.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newCreateCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Long:  `Apply all pending database migrations to bring the database schema up to date.`,
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		Long:  `Rollback a specified number of database migrations.`,
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Long:  `Display which embedded migrations have been applied to the database.`,
		RunE:  runStatus,
	}
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new migration",
		Long:  `Create a new sequentially numbered SQL migration file.`,
		RunE:  runCreate,
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the migration (required)")
	cmd.Flags().StringVar(&dir, "dir", migration.DefaultScriptsDir, "Directory to write the migration into")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

// gooseStrategy rejects drivers whose schema is managed by AutoMigrate.
func gooseStrategy(driver string, log logger.Interface) (*migration.GooseStrategy, error) {
	if driver == sharedConfig.DriverSQLite {
		return nil, fmt.Errorf("versioned migrations are not used with the %s driver", driver)
	}
	return migration.NewGooseStrategy(migration.Scripts(), log), nil
}

func runUp(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap.InitDatabase(env)
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running up migrations", "environment", env, "driver", cfg.Database.Driver)

	if err := migration.NewManager(cfg.Database.Driver, log).Migrate(cmd.Context(), database.Get()); err != nil {
		return err
	}

	log.Infow("migrations completed successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap.InitDatabase(env)
	if err != nil {
		return err
	}
	defer database.Close()

	strategy, err := gooseStrategy(cfg.Database.Driver, log)
	if err != nil {
		return err
	}

	log.Infow("running down migrations", "environment", env, "steps", steps)

	if err := strategy.MigrateDown(cmd.Context(), database.Get(), steps); err != nil {
		return fmt.Errorf("down migration failed: %w", err)
	}

	log.Infow("down migration completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap.InitDatabase(env)
	if err != nil {
		return err
	}
	defer database.Close()

	strategy, err := gooseStrategy(cfg.Database.Driver, log)
	if err != nil {
		return err
	}

	states, err := strategy.Status(cmd.Context(), database.Get())
	if err != nil {
		return fmt.Errorf("failed to get migration status: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "VERSION\tAPPLIED\tFILE\n")
	for _, st := range states {
		fmt.Fprintf(w, "%d\t%t\t%s\n", st.Version, st.Applied, st.Path)
	}
	return w.Flush()
}

func runCreate(cmd *cobra.Command, args []string) error {
	if err := migration.CreateScript(dir, name); err != nil {
		return err
	}

	logger.Info("migration created", "name", name, "dir", dir)
	return nil
}
