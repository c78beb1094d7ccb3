// Copyright (c) 2025 Anchor
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"

	"anchor/sdk/internal/auth"
	"anchor/sdk/internal/config"
	"anchor/sdk/internal/device"
	"anchor/sdk/internal/gateway"
	"anchor/sdk/internal/storage"
)

// sdk bundles the wired SDK components used by the commands.
type sdk struct {
	mgr *auth.Manager
	gw  *gateway.Client
}

// newSDK loads configuration and wires storage, gateway, and the auth state
// manager. The device-info provider reads the device id through the manager,
// so an id assigned mid-session is attached to subsequent requests.
func newSDK() (*sdk, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.ClientAppID == "" {
		return nil, errors.New("no app configured; set ANCHOR_APP_ID or client_app_id in the config file")
	}

	st := openStorage(cfg)

	var mgr *auth.Manager
	dev := device.NewProvider(Version, func() string {
		if mgr == nil {
			return ""
		}
		return mgr.DeviceID()
	})
	gw := gateway.New(cfg.BaseURL, cfg.ClientAppID, dev)
	mgr = auth.NewManager(st, cfg.ClientAppID, gw, auth.NewUserFactory())

	return &sdk{mgr: mgr, gw: gw}, nil
}

// openStorage honors the configured backend, degrading to memory rather than
// failing: the auth manager must always be constructible.
func openStorage(cfg config.Config) storage.Storage {
	switch cfg.Storage {
	case "keychain":
		if ks, err := storage.OpenKeyring(config.ServiceName); err == nil {
			return ks
		}
		return storage.NewMemory()
	case "file":
		if fs, err := storage.OpenFile(config.ServiceName); err == nil {
			return fs
		}
		return storage.NewMemory()
	case "memory":
		return storage.NewMemory()
	default:
		return storage.Open(config.ServiceName)
	}
}
