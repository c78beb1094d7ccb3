// Copyright (c) 2025 Anchor
// Licensed under the MIT License. See LICENSE file in the project root for details.

package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"anchor/sdk/internal/xdg"
)

// File stores values as a single JSON document in the XDG state directory.
// It is the durable fallback for platforms without a usable credential store.
// The file is written with 0600 permissions.
type File struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

// OpenFile opens (or creates) the state file for the given service namespace.
func OpenFile(serviceName string) (*File, error) {
	dir, err := xdg.StateDir(serviceName)
	if err != nil {
		return nil, err
	}

	f := &File{
		path: filepath.Join(dir, "storage.json"),
		data: make(map[string]string),
	}

	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return f, nil
		}
		return nil, err
	}
	// A corrupt file is treated as empty rather than unusable.
	if err := json.Unmarshal(raw, &f.data); err != nil {
		f.data = make(map[string]string)
	}
	return f, nil
}

// Get returns the value for key when present.
func (f *File) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok
}

// Set stores value under key and flushes the file.
func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return f.flush()
}

// Remove deletes the value for key and flushes the file.
func (f *File) Remove(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.data[key]; !ok {
		return nil
	}
	delete(f.data, key)
	return f.flush()
}

// flush writes the document with private permissions. Caller holds the lock.
func (f *File) flush() error {
	b, err := json.MarshalIndent(f.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, b, 0o600)
}
