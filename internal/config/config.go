// Copyright (c) 2025 Anchor
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package config loads and stores SDK client configuration in the XDG config
// dir. Only non-secret settings are kept here; session tokens go to the
// key-value store (OS keychain when available).
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"anchor/sdk/internal/xdg"
)

// ServiceName identifies the config and storage namespace for this client.
const ServiceName = "anchor"

// Default server origin, overridable via config file or ANCHOR_BASE_URL.
const defaultBaseURL = "https://api.anchor.dev"

// Config holds non-sensitive client settings.
type Config struct {
	// ClientAppID identifies the Anchor app this client talks to.
	ClientAppID string `json:"client_app_id"`
	// BaseURL is the server origin.
	BaseURL string `json:"base_url"`
	// Storage selects the persistence backend: "auto", "keychain", "file"
	// or "memory". "auto" tries keychain, then file, then memory.
	Storage string `json:"storage"`
}

// path returns the path to the config file.
func path() (string, error) {
	dir, err := xdg.ConfigDir(ServiceName)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration; a missing file returns defaults. Environment
// variables ANCHOR_BASE_URL and ANCHOR_APP_ID override the file.
func Load() (Config, error) {
	c := Config{BaseURL: defaultBaseURL, Storage: "auto"}
	p, err := path()
	if err != nil {
		return c, err
	}
	data, err := os.ReadFile(p)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return c, err
	}
	if err == nil {
		if err := json.Unmarshal(data, &c); err != nil {
			return c, err
		}
	}
	if v := os.Getenv("ANCHOR_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("ANCHOR_APP_ID"); v != "" {
		c.ClientAppID = v
	}
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.Storage == "" {
		c.Storage = "auto"
	}
	return c, nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := path()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}
