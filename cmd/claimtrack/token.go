package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/mmynk/claimtrack/internal/auth"
)

var (
	tokenUserID string
	tokenOrgID  string
	tokenEmail  string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a development bearer token",
	Long:  "Signs a token with auth.jwt_secret the way the identity provider does, for local testing.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Auth.JWTSecret == "" {
			return eris.New("auth.jwt_secret is not set")
		}
		jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
		token, err := jwtManager.Generate(auth.Identity{
			UserID: tokenUserID,
			OrgID:  tokenOrgID,
			Email:  tokenEmail,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUserID, "user", "dev-user", "user ID")
	tokenCmd.Flags().StringVar(&tokenOrgID, "org", "", "organization ID (required)")
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "user email")
	_ = tokenCmd.MarkFlagRequired("org")
	rootCmd.AddCommand(tokenCmd)
}
