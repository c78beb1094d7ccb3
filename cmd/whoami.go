// Copyright (c) 2025 Anchor
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var verboseWhoami bool

// whoamiCmd displays the current authentication state without any network
// round trip: identity, provider, device id, and access-token expiry as
// decoded from the stored session.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show current authenticated session",
	Long: `The whoami command displays the locally stored authentication state: the
logged-in user id, the provider that produced the session, the assigned
device id, and the access-token expiry decoded from the token itself.

No network call is made; for a server-validated view of the session, use
'anchor profile' instead.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		if verboseWhoami {
			os.Setenv("ANCHOR_VERBOSE", "1")
		}

		s, err := newSDK()
		if err != nil {
			return err
		}

		if !s.mgr.IsLoggedIn() {
			fmt.Println("🔒 You're not logged in yet!")
			fmt.Println("   Run 'anchor login' to get started.")
			return nil
		}

		user := s.mgr.User()
		if user != nil {
			fmt.Printf("👤 %s (provider: %s)\n", user.ID, user.LoggedInProviderType)
		} else {
			// Session restored from storage; the profile has not been
			// fetched in this process.
			fmt.Println("👤 Logged in (restored session)")
		}
		if s.mgr.HasDeviceID() {
			fmt.Printf("   device: %s\n", s.mgr.DeviceID())
		}
		if exp, ok := s.mgr.SessionExpiry(); ok {
			fmt.Printf("   access token expires: %s\n", exp.Local().Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

func init() {
	whoamiCmd.Flags().BoolVar(&verboseWhoami, "verbose", false, "Enable verbose debug output")
	rootCmd.AddCommand(whoamiCmd)
}
