// Copyright (c) 2025 Anchor
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package storage provides the key-value persistence layer for the Anchor SDK.
// It abstracts over durable media (OS keychain, XDG state file) behind a small
// get/set/remove contract, with an in-memory fallback so callers can always
// construct a working store. Cross-key consistency is the caller's concern;
// this package only guarantees that individual operations are atomic and
// thread-safe per backend.
package storage

// Storage is the key-value contract consumed by the auth state manager.
// Get reports absence through its second return value; backend read failures
// are treated as absence so that a corrupt or unavailable medium never
// prevents construction of a fresh session.
type Storage interface {
	// Get returns the value for key, or ok=false when the key is absent.
	Get(key string) (value string, ok bool)
	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
	// Remove deletes the value for key. Removing an absent key is a no-op.
	Remove(key string) error
}

// Open returns the best available durable store for the given service
// namespace, falling back in order: OS keychain, XDG state file, memory.
// The returned Storage is always usable; only durability degrades.
func Open(serviceName string) Storage {
	if ks, err := OpenKeyring(serviceName); err == nil {
		return ks
	}
	if fs, err := OpenFile(serviceName); err == nil {
		return fs
	}
	return NewMemory()
}
