package main

import (
	"os"

	"github.com/spf13/cobra"

	"mealsub/internal/interfaces/cli/migrate"
	"mealsub/internal/interfaces/cli/server"
	"mealsub/internal/interfaces/cli/token"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mealsub",
		Short: "Meal subscription service",
		Long:  `mealsub enrolls users in meal plans, generates delivery schedules and tracks delivery progress.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		token.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
