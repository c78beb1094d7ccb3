// Copyright (c) 2025 Anchor
// Licensed under the MIT License. See LICENSE file in the project root for details.

// This file implements persistence for the auth state: one storage entry per
// AuthInfo field, each namespaced to the owning app, plus a device-id key
// that outlives logout.

package auth

import (
	"fmt"
	"os"

	"anchor/sdk/internal/logging"
	"anchor/sdk/internal/storage"
)

var verboseAuth = os.Getenv("ANCHOR_VERBOSE") == "1"

// Storage keys, relative to the app namespace.
const (
	keyUserID       = "auth_user_id"
	keyAccessToken  = "auth_access_token"
	keyRefreshToken = "auth_refresh_token"
	keyProviderType = "auth_provider_type"
	keyProviderName = "auth_provider_name"
	keyDeviceID     = "device_id"
)

// persistor reads and writes the AuthInfo schema through the key-value store.
// It performs no locking; the manager serializes access.
type persistor struct {
	st storage.Storage
	ns string
}

func newPersistor(st storage.Storage, namespace string) *persistor {
	return &persistor{st: st, ns: namespace}
}

func (p *persistor) key(k string) string {
	return p.ns + "." + k
}

// load reconstructs AuthInfo from storage. A missing or partial token pair is
// normalized to logged out so a crash between writes can never resurrect a
// half-authenticated session. Read failures yield a fresh record.
func (p *persistor) load() *AuthInfo {
	get := func(k string) string {
		v, _ := p.st.Get(p.key(k))
		return v
	}

	info := &AuthInfo{
		UserID:               get(keyUserID),
		DeviceID:             get(keyDeviceID),
		AccessToken:          get(keyAccessToken),
		RefreshToken:         get(keyRefreshToken),
		LoggedInProviderType: get(keyProviderType),
		LoggedInProviderName: get(keyProviderName),
	}

	if !info.loggedIn() {
		info = info.loggedOut()
	}
	if verboseAuth {
		fmt.Printf("[DEBUG] auth.load: loggedIn=%v hasDeviceID=%v\n", info.loggedIn(), info.hasDeviceID())
	}
	return info
}

// save writes every AuthInfo field. The device id is written under its own
// key so it survives a later clear.
func (p *persistor) save(info *AuthInfo) error {
	if info == nil {
		return nil
	}
	fields := map[string]string{
		keyUserID:       info.UserID,
		keyAccessToken:  info.AccessToken,
		keyRefreshToken: info.RefreshToken,
		keyProviderType: info.LoggedInProviderType,
		keyProviderName: info.LoggedInProviderName,
	}
	for k, v := range fields {
		if v == "" {
			if err := p.st.Remove(p.key(k)); err != nil {
				return err
			}
			continue
		}
		if err := p.st.Set(p.key(k), v); err != nil {
			if verboseAuth {
				fmt.Printf("[DEBUG] auth.save: set %s failed: %v\n", k, logging.Mask(err.Error()))
			}
			return err
		}
	}
	if info.DeviceID != "" {
		return p.st.Set(p.key(keyDeviceID), info.DeviceID)
	}
	return nil
}

// clear removes all session fields but never the device id.
func (p *persistor) clear() error {
	for _, k := range []string{keyUserID, keyAccessToken, keyRefreshToken, keyProviderType, keyProviderName} {
		if err := p.st.Remove(p.key(k)); err != nil {
			return err
		}
	}
	return nil
}
