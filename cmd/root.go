// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	apiURL      string
	accessToken string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "app",
	Short: "Sales Leaderboard",
	Long:  `Sales Leaderboard server and CLI for campaigns, sales and live leaderboards.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "http://localhost:8080", "Leaderboard API base URL")
	rootCmd.PersistentFlags().StringVar(&accessToken, "token", os.Getenv("LEADERBOARD_TOKEN"), "Bearer token, the user id when authentication is disabled")
}
