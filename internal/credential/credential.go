// Copyright (c) 2025 Anchor
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package credential defines the authentication mechanisms accepted by the
// Anchor login and link endpoints. Each credential identifies the provider
// that handles it and produces the request material sent in the exchange.
package credential

// Provider type tags understood by the server's provider routing.
const (
	TypeAnonymous    = "anon-user"
	TypeUserPassword = "local-userpass"
	TypeCustomToken  = "custom-token"
)

// Credential describes how to authenticate against a provider endpoint.
type Credential interface {
	// ProviderType identifies the credential mechanism.
	ProviderType() string
	// ProviderName identifies the provider instance handling this credential.
	// Usually equal to the provider type unless the app configures multiple
	// providers of the same type.
	ProviderName() string
	// Material returns the provider-specific fields of the login request body.
	Material() map[string]any
}

// Validator is implemented by credentials that can check their own material
// before any network exchange is attempted.
type Validator interface {
	Validate() error
}
