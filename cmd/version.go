// Copyright (c) 2025 Anchor
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

var (
	// Version holds the client version information.
	// This value is typically set at build time using -ldflags.
	Version = "0.0.0-dev"
)
