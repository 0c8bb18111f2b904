// Package token issues access tokens for local development and smoke tests.
// Production tokens are minted by the account service sharing the JWT secret.
package token

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"mealsub/internal/infrastructure/auth"
	"mealsub/internal/interfaces/cli/bootstrap"
	"mealsub/internal/shared/authorization"
)

var (
	env           string
	userID        uint
	role          string
	phoneVerified bool
	ttl           time.Duration
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a development access token",
		Long:  `Sign an access token with the configured JWT secret for calling the API locally.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().UintVar(&userID, "user-id", 0, "User ID carried by the token (required)")
	cmd.Flags().StringVar(&role, "role", string(authorization.RoleUser), "Role carried by the token (user, admin)")
	cmd.Flags().BoolVar(&phoneVerified, "phone-verified", false, "Mark the caller's phone as verified")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("user-id")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if env == "production" {
		return fmt.Errorf("refusing to issue development tokens in production")
	}
	if userID == 0 {
		return fmt.Errorf("--user-id must be positive")
	}

	parsedRole := authorization.ParseUserRole(role)
	if string(parsedRole) != role {
		return fmt.Errorf("unknown role %q", role)
	}

	cfg, _, err := bootstrap.LoadConfig(env)
	if err != nil {
		return err
	}

	svc := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Issuer, ttl)
	token, err := svc.Generate(userID, parsedRole, phoneVerified)
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
