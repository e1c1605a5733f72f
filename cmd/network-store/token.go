package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gridstore/network-store/internal/config"
	"github.com/gridstore/network-store/internal/handlers"
)

func newTokenCommand(cfg *config.Configuration) *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a bearer token for the admin routes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.Auth.Secret == "" {
				return errors.New("--auth-secret is required")
			}
			token, err := handlers.NewToken([]byte(cfg.Auth.Secret), subject, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&cfg.Auth.Secret, "auth-secret", cfg.Auth.Secret, "HS256 secret of admin tokens")
	cmd.Flags().StringVar(&subject, "subject", "admin", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
