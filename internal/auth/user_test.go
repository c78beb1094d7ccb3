// Copyright (c) 2025 Anchor
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"testing"
)

func TestMakeUser(t *testing.T) {
	profile := UserProfile{
		UserType:   "normal",
		Identities: []Identity{{ID: "bar", ProviderType: "local-userpass"}},
		Data:       map[string]any{"email": "a@example.com"},
	}

	tests := []struct {
		name         string
		id           string
		providerType string
		providerName string
		expectError  bool
	}{
		{
			name:         "valid",
			id:           "u1",
			providerType: "local-userpass",
			providerName: "local-userpass",
		},
		{
			name:         "missing id",
			providerType: "local-userpass",
			providerName: "local-userpass",
			expectError:  true,
		},
		{
			name:         "missing provider type",
			id:           "u1",
			providerName: "local-userpass",
			expectError:  true,
		},
		{
			name:         "missing provider name",
			id:           "u1",
			providerType: "local-userpass",
			expectError:  true,
		},
	}

	factory := NewUserFactory()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := factory.MakeUser(tt.id, tt.providerType, tt.providerName, profile)

			if tt.expectError {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user.ID != tt.id {
				t.Errorf("ID = %q, want %q", user.ID, tt.id)
			}
			if user.Profile.UserType != profile.UserType {
				t.Errorf("Profile.UserType = %q, want %q", user.Profile.UserType, profile.UserType)
			}
			if len(user.Profile.Identities) != 1 {
				t.Errorf("Identities = %d, want 1", len(user.Profile.Identities))
			}
		})
	}
}
