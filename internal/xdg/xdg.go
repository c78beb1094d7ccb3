// Copyright (c) 2025 Anchor
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package xdg provides helpers to resolve XDG Base Directory paths for the
// Anchor SDK. It implements the XDG Base Directory specification for
// determining appropriate locations for configuration files and state data.
//
// The package handles fallback to traditional locations when XDG environment
// variables are not set and ensures private permissions for security-sensitive
// directories like session-state storage.
package xdg

import (
	"os"
	"path/filepath"
)

// ConfigDir returns the XDG config directory for the given service.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.config/<service> when XDG_CONFIG_HOME is unset.
func ConfigDir(service string) (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	dir := filepath.Join(base, service)
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}

// StateDir returns the XDG state directory for the given service.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.local/state/<service> when XDG_STATE_HOME is unset.
func StateDir(service string) (string, error) {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "state")
	}
	dir := filepath.Join(base, service)
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}
