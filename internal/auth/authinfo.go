// Copyright (c) 2025 Anchor
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

// AuthInfo is the persisted record of an authenticated session.
//
// Invariant: AccessToken and RefreshToken are either both present or both
// absent. DeviceID, once assigned by the server, is retained across logins,
// links, refreshes and logouts.
type AuthInfo struct {
	UserID               string
	DeviceID             string
	AccessToken          string
	RefreshToken         string
	LoggedInProviderType string
	LoggedInProviderName string
}

// loggedIn reports whether the record describes a fully authenticated
// session. Works on a nil receiver.
func (a *AuthInfo) loggedIn() bool {
	return a != nil && a.AccessToken != "" && a.RefreshToken != ""
}

// hasDeviceID reports whether a device id has been assigned. Works on a nil
// receiver.
func (a *AuthInfo) hasDeviceID() bool {
	return a != nil && a.DeviceID != ""
}

// clone returns a copy so snapshots taken under the manager lock cannot alias
// the live record.
func (a *AuthInfo) clone() *AuthInfo {
	if a == nil {
		return nil
	}
	cp := *a
	return &cp
}

// loggedOut returns the record as it must be persisted after logout or an
// unrecoverable auth failure: every field wiped except the device id.
func (a *AuthInfo) loggedOut() *AuthInfo {
	if a == nil {
		return nil
	}
	return &AuthInfo{DeviceID: a.DeviceID}
}
