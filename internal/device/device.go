// Copyright (c) 2025 Anchor
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package device describes the installation performing authentication.
// The device document is attached to login and link requests so the server
// can associate sessions with an installation and re-issue its device id.
package device

import "runtime"

// InfoProvider yields the device document for auth exchanges. It is injected
// into the gateway so tests can substitute deterministic device data.
type InfoProvider interface {
	Info() map[string]any
}

type provider struct {
	sdkVersion string
	deviceID   func() string
}

// NewProvider builds the default device-info provider. deviceID is consulted
// on every request so a device id assigned mid-session is picked up without
// rebuilding the provider; it may return "" when none has been assigned yet.
func NewProvider(sdkVersion string, deviceID func() string) InfoProvider {
	return &provider{sdkVersion: sdkVersion, deviceID: deviceID}
}

func (p *provider) Info() map[string]any {
	info := map[string]any{
		"platform":   runtime.GOOS,
		"arch":       runtime.GOARCH,
		"sdkVersion": p.sdkVersion,
	}
	if p.deviceID != nil {
		if id := p.deviceID(); id != "" {
			info["deviceId"] = id
		}
	}
	return info
}
