package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iliyamo/cinema-ticket-dashboard/internal/identity"
)

var tokenCmd = &cobra.Command{
	Use:   "token <subject>",
	Short: "Issue a development identity token",
	Long:  `Signs a bearer token with IDENTITY_SECRET the way the identity provider does, for local testing.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, closeLog, err := setup()
		if err != nil {
			return err
		}
		defer closeLog()
		if cfg.IdentitySecret == "" {
			return errors.New("IDENTITY_SECRET is required")
		}
		name, _ := cmd.Flags().GetString("name")
		avatar, _ := cmd.Flags().GetString("avatar")
		ttl, _ := cmd.Flags().GetDuration("ttl")
		if ttl <= 0 {
			ttl = cfg.DevTokenTTL
		}
		tok, exp, err := identity.Issue(cfg.IdentitySecret, identity.Principal{Subject: args[0], Name: name, AvatarURL: avatar}, ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", exp.Format("2006-01-02 15:04:05 MST"))
		return nil
	},
}

func init() {
	tokenCmd.Flags().String("name", "", "display name claim")
	tokenCmd.Flags().String("avatar", "", "picture URL claim")
	tokenCmd.Flags().Duration("ttl", 0, "token lifetime (default DEV_TOKEN_TTL)")
}
