// Copyright (c) 2025 Anchor
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"

	"anchor/sdk/internal/auth"
	errs "anchor/sdk/internal/errors"
	"anchor/sdk/internal/gateway"
	"anchor/sdk/internal/httperrors"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// profileCmd fetches the user profile from the server through the
// refresh-and-retry protocol, so an expired access token is refreshed
// transparently before the command fails.
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Fetch the logged-in user's profile from the server",
	Long: `The profile command fetches the authenticated user's profile document from
the Anchor backend. The request runs under the session refresh protocol: an
expired access token is refreshed once and the request retried before any
error is reported. If the refresh token itself has expired, the local
session is cleared and a fresh login is required.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		s, err := newSDK()
		if err != nil {
			return err
		}

		profile, err := auth.Authenticated(ctx, s.mgr, s.gw.Profile)
		if err != nil {
			if errs.IsKind(err, errs.MustAuthenticateFirst) {
				fmt.Println("🔒 You're not logged in yet!")
				fmt.Println("   Run 'anchor login' to get started.")
				return nil
			}
			var re *gateway.RequestError
			if errors.As(err, &re) {
				if re.ErrorCode == gateway.ErrorCodeInvalidSession {
					pterm.Error.Println("Session expired and could not be refreshed. Run 'anchor login' again.")
					return err
				}
				pterm.Error.Printf("Profile request failed: %s\n", re.Message)
				return err
			}
			return httperrors.FormatNetworkError(err, "fetching your profile")
		}

		fmt.Printf("type: %s\n", profile.UserType)
		for _, id := range profile.Identities {
			fmt.Printf("identity: %s (%s)\n", id.ID, id.ProviderType)
		}
		for k, v := range profile.Data {
			fmt.Printf("%s: %v\n", k, v)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
}
