// Copyright (c) 2025 Anchor
// Licensed under the MIT License. See LICENSE file in the project root for details.

package storage

import (
	"errors"
	"sync"

	"github.com/99designs/keyring"
)

// Keyring stores values in the OS credential store (macOS Keychain, Windows
// Credential Manager, Secret Service, or pass). All methods are thread-safe.
type Keyring struct {
	mu   sync.RWMutex
	ring keyring.Keyring
}

// OpenKeyring opens the OS keyring under the given service namespace.
// Returns an error when no supported credential store is available on this
// platform, in which case callers should fall back to another backend.
func OpenKeyring(serviceName string) (*Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.WinCredBackend,
			keyring.SecretServiceBackend,
			keyring.PassBackend,
		},
		PassPrefix:    serviceName,
		WinCredPrefix: serviceName,
	})
	if err != nil {
		return nil, err
	}
	return &Keyring{ring: ring}, nil
}

// Get returns the value for key. Backend read failures report absence.
func (k *Keyring) Get(key string) (string, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	it, err := k.ring.Get(key)
	if err != nil || len(it.Data) == 0 {
		return "", false
	}
	return string(it.Data), true
}

// Set stores value under key in the OS credential store.
func (k *Keyring) Set(key, value string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.ring.Set(keyring.Item{Key: key, Data: []byte(value)})
}

// Remove deletes the value for key. A missing key is not an error.
func (k *Keyring) Remove(key string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	err := k.ring.Remove(key)
	if err != nil && errors.Is(err, keyring.ErrKeyNotFound) {
		return nil
	}
	return err
}
