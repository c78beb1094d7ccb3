// Copyright (c) 2025 Anchor
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// logoutCmd clears the local session. The device id assigned by the server
// is retained so the next login is recognized as the same installation.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session for this device",
	Long: `The logout command clears the authenticated session from local storage,
including the access and refresh tokens and the logged-in user identity.

The device id assigned by the server is kept, so a later login from this
installation is recognized as the same device. Logging out while already
logged out is a no-op.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSDK()
		if err != nil {
			return err
		}
		if err := s.mgr.Logout(); err != nil {
			return err
		}
		fmt.Println("✅ Session cleared")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
