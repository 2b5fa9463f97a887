package main

import (
	"fmt"

	"bookloan/internal/core/services"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(&TokenCommand)
}

var TokenCommand = cobra.Command{
	Use:   "token <email>",
	Short: "Mint a token for a user",
	Long:  "Mint a token for an active user without their password, carrying their current capabilities.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := openBackend(false)
		if err != nil {
			return err
		}

		user, err := b.Stores.Users.GetByEmail(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("user %s: %w", args[0], err)
		}
		if !user.Active {
			return fmt.Errorf("user %s is disabled", args[0])
		}

		tokens := services.NewTokenService(cfg, b.Stores.RevokedTokens)
		issued, err := tokens.Issue(user)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), issued.Token)
		cmd.PrintErrf("valid for %s, expires at %s\n", tokens.Validity(), issued.ExpiresAt.Format("2006-01-02 15:04:05 MST"))
		return nil
	},
}
