package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/assessment-records/pkg/jwt"
)

var tokenTTL time.Duration

// tokenCmd issues an access token for local testing of the HTTP API
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an access token for --email (development only)",
	RunE:  runToken,
}

func runToken(cmd *cobra.Command, args []string) error {
	if cfg.Server.Environment == "production" {
		return fmt.Errorf("refusing to issue tokens in production")
	}

	token, err := jwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.Issuer).GenerateAccessToken(email, tokenTTL)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
	return err
}
