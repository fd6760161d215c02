package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/nurpe/agrojobs/internal/auth"
	"github.com/nurpe/agrojobs/internal/model"
)

type TokenCmd struct {
	secret string
	user   string
	role   string
	ttl    time.Duration
}

// NewTokenCmd issues access tokens for local development.
func NewTokenCmd() *cobra.Command {
	tc := &TokenCmd{}
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token",
		RunE:  tc.run,
	}
	cmd.Flags().StringVar(&tc.secret, "secret", os.Getenv("JWT_ACCESS_SECRET"), "Signing secret")
	cmd.Flags().StringVar(&tc.user, "user", "", "User id; random when empty")
	cmd.Flags().StringVar(&tc.role, "role", string(model.RoleManager), "ADMIN, MANAGER or VIEWER")
	cmd.Flags().DurationVar(&tc.ttl, "ttl", 24*time.Hour, "Token lifetime")
	return cmd
}

func (tc *TokenCmd) run(cmd *cobra.Command, _ []string) error {
	if tc.secret == "" {
		return fmt.Errorf("--secret or JWT_ACCESS_SECRET is required")
	}
	userID := uuid.New()
	if tc.user != "" {
		parsed, err := uuid.Parse(tc.user)
		if err != nil {
			return fmt.Errorf("invalid --user %q", tc.user)
		}
		userID = parsed
	}
	role := model.Role(strings.ToUpper(tc.role))
	switch role {
	case model.RoleAdmin, model.RoleManager, model.RoleViewer:
	default:
		return fmt.Errorf("unknown --role %q", tc.role)
	}

	token, err := auth.Issue(tc.secret, model.Principal{UserID: userID, Role: role}, tc.ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
