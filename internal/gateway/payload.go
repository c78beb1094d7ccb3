// Copyright (c) 2025 Anchor
// Licensed under the MIT License. See LICENSE file in the project root for details.

package gateway

// AuthInfoPayload is the wire document returned by the login and link
// endpoints. DeviceID may be empty when the server chose not to (re-)issue
// one; callers preserve any previously stored device id in that case.
type AuthInfoPayload struct {
	UserID       string `json:"user_id"`
	DeviceID     string `json:"device_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// IdentityPayload is one linked identity inside a profile document.
type IdentityPayload struct {
	ID           string `json:"id"`
	ProviderType string `json:"provider_type"`
	ProviderID   string `json:"provider_id"`
}

// ProfilePayload is the wire document returned by the profile endpoint.
type ProfilePayload struct {
	UserType   string            `json:"type"`
	Identities []IdentityPayload `json:"identities"`
	Data       map[string]any    `json:"data"`
}

// sessionPayload is the wire document returned by the session refresh
// endpoint. Only a fresh access token is minted; ids and the refresh token
// are unchanged by a refresh.
type sessionPayload struct {
	AccessToken string `json:"access_token"`
}
