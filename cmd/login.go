// Copyright (c) 2025 Anchor
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	"anchor/sdk/internal/credential"
	"anchor/sdk/internal/gateway"
	"anchor/sdk/internal/httperrors"
	"anchor/sdk/internal/terminal"

	"atomicgo.dev/cursor"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	loginUsername string
	loginPassword string
	loginToken    string
)

// loginCmd authenticates against the Anchor backend and stores the session.
// Without flags it performs an anonymous login; --username/--password selects
// the userpass provider and --token the custom-token provider. Tokens are
// persisted through the key-value store (OS keychain when available) so the
// session survives process restarts.
var loginCmd = &cobra.Command{
	Use:     "login",
	Aliases: []string{"auth"},
	Short:   "Authenticate and store the session for this device",
	Long: `The login command authenticates against the Anchor backend using one of the
configured credential providers and persists the resulting session locally.

Without flags an anonymous session is created. Pass --username (the password
is prompted when --password is omitted) to log in with the userpass provider,
or --token to log in with an externally issued JWT.

If already logged in anonymously, an anonymous login returns the existing
session; any other credential replaces it.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		s, err := newSDK()
		if err != nil {
			return err
		}

		cred, err := pickCredential()
		if err != nil {
			return err
		}

		cursor.Hide()
		spinner, _ := pterm.DefaultSpinner.Start("Signing in")
		user, err := s.mgr.Login(ctx, cred)
		if spinner != nil {
			_ = spinner.Stop()
		}
		cursor.Show()

		if err != nil {
			var re *gateway.RequestError
			if errors.As(err, &re) {
				pterm.Error.Printf("Login rejected: %s\n", re.Message)
				return err
			}
			return httperrors.FormatNetworkError(err, "signing in")
		}

		pterm.Success.Printf("Logged in as %s (%s)\n", user.ID, user.LoggedInProviderType)
		return nil
	},
}

// pickCredential maps the command flags onto a credential value.
func pickCredential() (credential.Credential, error) {
	if loginToken != "" {
		return credential.CustomToken{Token: loginToken}, nil
	}
	if loginUsername != "" {
		pw := loginPassword
		if pw == "" {
			prompt := fmt.Sprintf("Password for %s: ", loginUsername)
			fmt.Print(prompt)
			raw, err := term.ReadPassword(int(syscall.Stdin))
			fmt.Println()
			if err != nil {
				return nil, err
			}
			terminal.ClearPreviousLines(len(prompt))
			pw = string(raw)
		}
		return credential.UserPassword{Username: loginUsername, Password: pw}, nil
	}
	return credential.Anonymous{}, nil
}

func init() {
	loginCmd.Flags().StringVar(&loginUsername, "username", os.Getenv("ANCHOR_USERNAME"), "Log in with the userpass provider")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password for --username (prompted when omitted)")
	loginCmd.Flags().StringVar(&loginToken, "token", "", "Log in with an externally issued JWT")
	rootCmd.AddCommand(loginCmd)
}
