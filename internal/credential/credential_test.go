// Copyright (c) 2025 Anchor
// Licensed under the MIT License. See LICENSE file in the project root for details.

package credential

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestAnonymous(t *testing.T) {
	cred := Anonymous{}
	if cred.ProviderType() != TypeAnonymous {
		t.Errorf("ProviderType = %q, want %q", cred.ProviderType(), TypeAnonymous)
	}
	if cred.ProviderName() != TypeAnonymous {
		t.Errorf("ProviderName = %q, want %q", cred.ProviderName(), TypeAnonymous)
	}
	if len(cred.Material()) != 0 {
		t.Errorf("Material = %v, want empty", cred.Material())
	}
}

func TestUserPasswordMaterial(t *testing.T) {
	cred := UserPassword{Username: "alice", Password: "s3cret"}
	m := cred.Material()
	if m["username"] != "alice" || m["password"] != "s3cret" {
		t.Errorf("Material = %v", m)
	}
}

func TestUserPasswordValidate(t *testing.T) {
	tests := []struct {
		name        string
		cred        UserPassword
		expectError bool
	}{
		{
			name: "valid",
			cred: UserPassword{Username: "alice", Password: "s3cret"},
		},
		{
			name:        "missing username",
			cred:        UserPassword{Password: "s3cret"},
			expectError: true,
		},
		{
			name:        "missing password",
			cred:        UserPassword{Username: "alice"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cred.Validate()
			if tt.expectError && err == nil {
				t.Error("expected error but got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCustomTokenValidate(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := tok.SignedString([]byte("external-key"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}

	tests := []struct {
		name        string
		token       string
		expectError bool
	}{
		{
			name:  "well-formed JWT",
			token: signed,
		},
		{
			name:        "empty",
			token:       "",
			expectError: true,
		},
		{
			name:        "not a JWT",
			token:       "hello world",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CustomToken{Token: tt.token}.Validate()
			if tt.expectError && err == nil {
				t.Error("expected error but got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
