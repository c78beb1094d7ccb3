// Copyright (c) 2025 Anchor
// Licensed under the MIT License. See LICENSE file in the project root for details.

package credential

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Anonymous authenticates without user-supplied material. The server mints a
// fresh anonymous identity, or re-issues the existing one when the request
// carries a known device id.
type Anonymous struct{}

func (Anonymous) ProviderType() string     { return TypeAnonymous }
func (Anonymous) ProviderName() string     { return TypeAnonymous }
func (Anonymous) Material() map[string]any { return map[string]any{} }

// UserPassword authenticates with an email/username and password pair.
type UserPassword struct {
	Username string
	Password string
}

func (UserPassword) ProviderType() string { return TypeUserPassword }
func (UserPassword) ProviderName() string { return TypeUserPassword }

func (c UserPassword) Material() map[string]any {
	return map[string]any{
		"username": c.Username,
		"password": c.Password,
	}
}

// Validate checks both fields are present.
func (c UserPassword) Validate() error {
	if c.Username == "" {
		return errors.New("username is required")
	}
	if c.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

// CustomToken authenticates with an externally issued JWT that the server
// verifies against the app's configured signing key.
type CustomToken struct {
	Token string
}

func (CustomToken) ProviderType() string { return TypeCustomToken }
func (CustomToken) ProviderName() string { return TypeCustomToken }

func (c CustomToken) Material() map[string]any {
	return map[string]any{"token": c.Token}
}

// Validate checks the token is a structurally well-formed JWT. Signature
// verification is the server's job; this only catches malformed input before
// a network round trip is wasted on it.
func (c CustomToken) Validate() error {
	if c.Token == "" {
		return errors.New("token is required")
	}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(c.Token, jwt.MapClaims{}); err != nil {
		return errors.New("token is not a well-formed JWT")
	}
	return nil
}
