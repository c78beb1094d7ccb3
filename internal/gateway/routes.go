// Copyright (c) 2025 Anchor
// Licensed under the MIT License. See LICENSE file in the project root for details.

package gateway

import "fmt"

// routes builds the client API paths for one app. All auth endpoints live
// under the versioned client API prefix.
type routes struct {
	clientAppID string
}

const clientAPIPrefix = "/api/client/v2.0"

func (r routes) loginRoute(providerName string) string {
	return fmt.Sprintf("%s/app/%s/auth/providers/%s/login", clientAPIPrefix, r.clientAppID, providerName)
}

func (r routes) linkRoute(providerName string) string {
	return fmt.Sprintf("%s/app/%s/auth/providers/%s/login?link=true", clientAPIPrefix, r.clientAppID, providerName)
}

func (r routes) profileRoute() string {
	return clientAPIPrefix + "/auth/profile"
}

func (r routes) sessionRoute() string {
	return clientAPIPrefix + "/auth/session"
}
