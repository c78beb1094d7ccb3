// Copyright (c) 2025 Anchor
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package logging provides utilities for secure logging and error presentation.
// It includes functions for masking sensitive information in log messages and
// formatting errors for user-friendly display while protecting credentials.
//
// The package helps ensure that session tokens, passwords, and API keys are
// not accidentally exposed in debug output or error messages shown to users.
package logging

import (
	"regexp"
	"strings"
)

var (
	rePassword = regexp.MustCompile(`(?i)(password=)([^\s;&]+)`)
	reToken    = regexp.MustCompile(`(?i)(token=|bearer\s+)([A-Za-z0-9._-]+)`)
	reJWT      = regexp.MustCompile(`\beyJ[A-Za-z0-9_-]+\.[A-Za-z0-9._-]+`)
	reAPIKey   = regexp.MustCompile(`(?i)(apikey=|api_key=)([^\s;&]+)`)
)

// Mask replaces sensitive values in the input string with "***".
// JWT-shaped strings are masked wherever they appear, since session tokens
// routinely end up inside wrapped error messages.
func Mask(s string) string {
	out := s
	out = rePassword.ReplaceAllString(out, "$1***")
	out = reToken.ReplaceAllString(out, "$1***")
	out = reAPIKey.ReplaceAllString(out, "$1***")
	out = reJWT.ReplaceAllString(out, "***")
	// Basic env-like pairs key=VALUE; mask common secret keys
	for _, k := range []string{"ANCHOR_ACCESS_TOKEN", "ANCHOR_REFRESH_TOKEN", "ANCHOR_API_KEY"} {
		out = strings.ReplaceAll(out, k+"=", k+"=***")
	}
	return out
}
