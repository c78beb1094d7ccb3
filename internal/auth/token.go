// Copyright (c) 2025 Anchor
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry returns the expiration claim embedded in a JWT session token.
// The signature is not verified; the server is the authority on validity and
// this is only used for display and proactive diagnostics.
func TokenExpiry(token string) (time.Time, error) {
	var claims jwt.RegisteredClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, errors.New("token carries no expiration claim")
	}
	return claims.ExpiresAt.Time, nil
}

// SessionExpiry returns the expiry of the current access token. ok is false
// when logged out or when the token carries no readable expiration.
func (m *Manager) SessionExpiry() (expiry time.Time, ok bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.info.loggedIn() {
		return time.Time{}, false
	}
	exp, err := TokenExpiry(m.info.AccessToken)
	if err != nil {
		return time.Time{}, false
	}
	return exp, true
}
