// Copyright (c) 2025 Anchor
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"errors"

	"anchor/sdk/internal/gateway"
)

// Identity is one credential mechanism linked to a user.
type Identity struct {
	ID           string
	ProviderType string
	ProviderID   string
}

// UserProfile is decoded identity data for a user.
type UserProfile struct {
	UserType   string
	Identities []Identity
	Data       map[string]any
}

// User is the externally visible identity of an authenticated principal.
// Users are constructed only by a UserFactory and are not mutated afterward.
type User struct {
	ID                   string
	LoggedInProviderType string
	LoggedInProviderName string
	Profile              UserProfile
}

// UserFactory constructs User values from decoded profile data and auth
// metadata. Injected into the manager so tests can substitute their own
// user type construction.
type UserFactory interface {
	MakeUser(id, providerType, providerName string, profile UserProfile) (*User, error)
}

type userFactory struct{}

// NewUserFactory returns the default factory.
func NewUserFactory() UserFactory {
	return userFactory{}
}

// MakeUser validates the auth metadata and builds the user. Pure
// construction: no I/O.
func (userFactory) MakeUser(id, providerType, providerName string, profile UserProfile) (*User, error) {
	if id == "" {
		return nil, errors.New("user id is required")
	}
	if providerType == "" {
		return nil, errors.New("provider type is required")
	}
	if providerName == "" {
		return nil, errors.New("provider name is required")
	}
	return &User{
		ID:                   id,
		LoggedInProviderType: providerType,
		LoggedInProviderName: providerName,
		Profile:              profile,
	}, nil
}

// profileFromPayload converts the wire profile document.
func profileFromPayload(p *gateway.ProfilePayload) UserProfile {
	prof := UserProfile{UserType: p.UserType, Data: p.Data}
	for _, id := range p.Identities {
		prof.Identities = append(prof.Identities, Identity{
			ID:           id.ID,
			ProviderType: id.ProviderType,
			ProviderID:   id.ProviderID,
		})
	}
	return prof
}
