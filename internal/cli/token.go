// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/taibuivan/ontvitals/internal/platform/sec"
)

// TokenCmd returns the command that mints an access token for a transcriber.
//
// The site has no account store; volunteers receive a token minted here and
// present it as a Bearer header or session cookie.
func TokenCmd(deps Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token for a transcriber",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, _ := cmd.Flags().GetString("user")
			roleName, _ := cmd.Flags().GetString("role")
			ttl, _ := cmd.Flags().GetDuration("ttl")
			userID, _ := cmd.Flags().GetString("id")

			role := sec.UserRole(roleName)
			if !role.Valid() {
				return fmt.Errorf("unknown role %q: want admin, editor or visitor", roleName)
			}
			if ttl <= 0 {
				return fmt.Errorf("--ttl must be positive")
			}
			if userID == "" {
				userID = uuid.NewString()
			}

			minter, err := deps.Tokens()
			if err != nil {
				return fmt.Errorf("load signing key: %w", err)
			}

			token, err := minter.GenerateAccessToken(userID, user, role, ttl)
			if err != nil {
				return err
			}

			deps.Logger.Info("token_issued",
				"user", user,
				"role", roleName,
				"expires_at", time.Now().Add(ttl).Format(time.RFC3339),
			)
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().String("user", "", "Transcriber name stored in the token")
	cmd.Flags().String("role", string(sec.RoleEditor), "Role granted: admin, editor or visitor")
	cmd.Flags().Duration("ttl", 24*time.Hour, "Token lifetime")
	cmd.Flags().String("id", "", "User identifier; a random UUID when empty")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
