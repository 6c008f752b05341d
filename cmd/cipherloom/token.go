package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cipherloom-go/internal/auth"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for the HTTP API",
	Long:  `Signs a token with auth.jwt_secret from the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if !cfg.IsAuthEnabled() {
			return fmt.Errorf("auth.jwt_secret is not set")
		}

		client, _ := cmd.Flags().GetString("client")
		ttl, _ := cmd.Flags().GetDuration("ttl")
		if ttl <= 0 {
			ttl = time.Duration(cfg.Auth.JWTExpire) * time.Hour
		}

		token, err := auth.NewJWTAuth(cfg.Auth.JWTSecret, ttl).GenerateToken(client)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().String("client", "cli", "Client name embedded in the token")
	tokenCmd.Flags().Duration("ttl", 0, "Token lifetime (default auth.jwt_expire hours)")
	rootCmd.AddCommand(tokenCmd)
}
