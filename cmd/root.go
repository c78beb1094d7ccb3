// Copyright (c) 2025 Anchor
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the Anchor SDK demo
// client. It implements subcommands for authentication and profile
// inspection using the Cobra CLI framework, and wires together the SDK's
// storage, gateway, and auth state manager.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	showVersion bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:           "anchor",
	Short:         "Anchor client for managing an authenticated session",
	Long:          `Anchor is a command-line client for the Anchor backend service. It manages login, credential linking, logout, and profile access with automatic session refresh.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("anchor %s\n", Version)
			return nil
		}
		// If no flag is set, show help
		return cmd.Help()
	},
}

// Execute runs the CLI application.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show client version information")
}
