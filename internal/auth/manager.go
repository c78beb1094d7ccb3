// Copyright (c) 2025 Anchor
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package auth implements the authentication core of the Anchor SDK: the
// state manager that owns the current session, persists it through the
// key-value store, and mediates every authenticated call through the
// refresh-and-retry protocol.
//
// The manager is safe for concurrent use. State reads and the
// read-modify-persist step of every transition are serialized by a single
// lock; the lock is never held across a network call, so two concurrent
// refreshes may both complete and the last writer's token wins. Auth-event
// observers are invoked synchronously after each committed transition and
// must not call back into the manager.
package auth

import (
	"context"
	"fmt"
	"sync"

	"anchor/sdk/internal/credential"
	errs "anchor/sdk/internal/errors"
	"anchor/sdk/internal/gateway"
	"anchor/sdk/internal/logging"
	"anchor/sdk/internal/storage"
)

// Gateway is the slice of the session request gateway the manager consumes.
type Gateway interface {
	Login(ctx context.Context, providerName string, material map[string]any) (*gateway.AuthInfoPayload, error)
	Link(ctx context.Context, providerName string, material map[string]any, accessToken string) (*gateway.AuthInfoPayload, error)
	Profile(ctx context.Context, accessToken string) (*gateway.ProfilePayload, error)
	RefreshSession(ctx context.Context, refreshToken string) (string, error)
}

// Manager owns the auth state for one app.
type Manager struct {
	mu     sync.RWMutex
	info   *AuthInfo
	user   *User
	store  *persistor
	gw     Gateway
	users  UserFactory
	events *eventRegistry
}

// NewManager constructs a manager bound to the given store and gateway,
// reconstructing any previously persisted session. Construction never fails:
// an unreadable store simply yields a logged-out manager.
func NewManager(st storage.Storage, namespace string, gw Gateway, users UserFactory) *Manager {
	m := &Manager{
		store:  newPersistor(st, namespace),
		gw:     gw,
		users:  users,
		events: newEventRegistry(),
	}
	m.info = m.store.load()
	return m
}

// IsLoggedIn reports whether a fully authenticated session is present.
func (m *Manager) IsLoggedIn() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.info.loggedIn()
}

// HasDeviceID reports whether a device id has been assigned. Independent of
// login state: a device id survives logout.
func (m *Manager) HasDeviceID() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.info.hasDeviceID()
}

// DeviceID returns the assigned device id, or "" when none exists yet.
func (m *Manager) DeviceID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.info == nil {
		return ""
	}
	return m.info.DeviceID
}

// User returns the currently logged-in user, or nil when logged out.
func (m *Manager) User() *User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

// OnAuthEvent registers an observer invoked once per committed state
// transition (login, link, logout, forced logout). Delivery is synchronous
// in registration order; the observer must not re-enter the manager.
func (m *Manager) OnAuthEvent(observer func()) {
	m.events.subscribe(observer)
}

// Login authenticates with the given credential and returns the user built
// from a freshly fetched profile. Logging in with the anonymous provider
// while already anonymously logged in returns the current user without a
// network exchange; any other credential replaces the session wholesale.
func (m *Manager) Login(ctx context.Context, cred credential.Credential) (*User, error) {
	if v, ok := cred.(credential.Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}

	m.mu.RLock()
	if m.info.loggedIn() && m.user != nil &&
		cred.ProviderType() == credential.TypeAnonymous &&
		m.info.LoggedInProviderType == credential.TypeAnonymous {
		u := m.user
		m.mu.RUnlock()
		return u, nil
	}
	m.mu.RUnlock()

	payload, err := m.gw.Login(ctx, cred.ProviderName(), cred.Material())
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	next := &AuthInfo{
		UserID:               payload.UserID,
		DeviceID:             payload.DeviceID,
		AccessToken:          payload.AccessToken,
		RefreshToken:         payload.RefreshToken,
		LoggedInProviderType: cred.ProviderType(),
		LoggedInProviderName: cred.ProviderName(),
	}
	// A response without a device id never regresses one already assigned.
	if next.DeviceID == "" && m.info.hasDeviceID() {
		next.DeviceID = m.info.DeviceID
	}
	m.info = next
	m.user = nil
	m.persistLocked()
	snapshot := next.clone()
	m.mu.Unlock()

	user, err := m.buildUser(ctx, snapshot)
	if err != nil {
		// The login exchange succeeded but the session is unusable without a
		// profile. Roll the half-open session back; no event fires for a
		// login that never committed.
		m.mu.Lock()
		m.clearLocked()
		m.mu.Unlock()
		return nil, err
	}

	m.mu.Lock()
	if !m.info.loggedIn() {
		m.mu.Unlock()
		return nil, errs.New(errs.LoggedOutDuringRequest, "session was cleared while logging in")
	}
	m.user = user
	m.mu.Unlock()
	m.events.publish()
	return user, nil
}

// Link attaches an additional credential to the logged-in user's identity.
// The link target must be the currently logged-in user.
func (m *Manager) Link(ctx context.Context, user *User, cred credential.Credential) (*User, error) {
	if v, ok := cred.(credential.Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}

	m.mu.RLock()
	if !m.info.loggedIn() {
		m.mu.RUnlock()
		return nil, errs.New(errs.MustAuthenticateFirst, "log in before linking a credential")
	}
	if user == nil || user.ID != m.info.UserID {
		m.mu.RUnlock()
		return nil, errs.New(errs.UserNoLongerValid, "link target does not match the logged-in user")
	}
	m.mu.RUnlock()

	payload, err := Authenticated(ctx, m, func(ctx context.Context, accessToken string) (*gateway.AuthInfoPayload, error) {
		return m.gw.Link(ctx, cred.ProviderName(), cred.Material(), accessToken)
	})
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	if !m.info.loggedIn() {
		m.mu.Unlock()
		return nil, errs.New(errs.LoggedOutDuringRequest, "session was cleared while linking")
	}
	if payload.AccessToken != "" {
		m.info.AccessToken = payload.AccessToken
	}
	if payload.RefreshToken != "" {
		m.info.RefreshToken = payload.RefreshToken
	}
	if payload.DeviceID != "" {
		m.info.DeviceID = payload.DeviceID
	}
	m.info.LoggedInProviderType = cred.ProviderType()
	m.info.LoggedInProviderName = cred.ProviderName()
	m.persistLocked()
	snapshot := m.info.clone()
	m.mu.Unlock()

	linked, err := m.buildUser(ctx, snapshot)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	if !m.info.loggedIn() {
		m.mu.Unlock()
		return nil, errs.New(errs.LoggedOutDuringRequest, "session was cleared while linking")
	}
	m.user = linked
	m.mu.Unlock()
	m.events.publish()
	return linked, nil
}

// Logout clears the session, retaining the device id. Idempotent: logging
// out while logged out is a no-op success, and fires no event.
func (m *Manager) Logout() error {
	m.mu.Lock()
	if !m.info.loggedIn() {
		m.mu.Unlock()
		return nil
	}
	m.clearLocked()
	m.mu.Unlock()
	m.events.publish()
	return nil
}

// RequestFunc is an authenticated call: it receives the current access token
// and performs the network exchange.
type RequestFunc[T any] func(ctx context.Context, accessToken string) (T, error)

// Authenticated runs fn under the refresh-and-retry protocol:
//
//  1. Fail with must_authenticate_first when logged out.
//  2. Run fn; a success or any failure other than an invalid session is
//     returned verbatim.
//  3. On an invalid session, attempt exactly one session refresh. If the
//     refresh succeeds, run fn once more and return its result verbatim.
//     If the refresh fails, the session is unrecoverable: the manager
//     transitions to logged out (device id retained) and the original
//     invalid-session failure propagates.
//
// At most one refresh is attempted per call, so routine access-token expiry
// is recovered transparently without any possibility of a retry loop.
func Authenticated[T any](ctx context.Context, m *Manager, fn RequestFunc[T]) (T, error) {
	var zero T

	m.mu.RLock()
	if !m.info.loggedIn() {
		m.mu.RUnlock()
		return zero, errs.New(errs.MustAuthenticateFirst, "no authenticated session")
	}
	accessToken := m.info.AccessToken
	m.mu.RUnlock()

	out, err := fn(ctx, accessToken)
	if err == nil {
		return out, nil
	}
	if !gateway.IsInvalidSession(err) {
		return zero, err
	}

	if rerr := m.refreshSession(ctx); rerr != nil {
		// Refresh failures are never retried; the original invalid-session
		// error is what the caller sees.
		return zero, err
	}

	m.mu.RLock()
	if !m.info.loggedIn() {
		m.mu.RUnlock()
		return zero, errs.New(errs.LoggedOutDuringRequest, "session was cleared while retrying")
	}
	accessToken = m.info.AccessToken
	m.mu.RUnlock()

	return fn(ctx, accessToken)
}

// refreshSession performs the single refresh attempt of the protocol. On
// failure the session is cleared (device id retained), persisted, and a
// forced-logout auth event fires.
func (m *Manager) refreshSession(ctx context.Context) error {
	m.mu.RLock()
	if !m.info.loggedIn() {
		m.mu.RUnlock()
		return errs.New(errs.LoggedOutDuringRequest, "session was cleared before refresh")
	}
	refreshToken := m.info.RefreshToken
	m.mu.RUnlock()

	accessToken, err := m.gw.RefreshSession(ctx, refreshToken)
	if err != nil {
		m.mu.Lock()
		wasLoggedIn := m.info.loggedIn()
		if wasLoggedIn {
			m.clearLocked()
		}
		m.mu.Unlock()
		if wasLoggedIn {
			m.events.publish()
		}
		return err
	}

	m.mu.Lock()
	if !m.info.loggedIn() {
		m.mu.Unlock()
		return errs.New(errs.LoggedOutDuringRequest, "session was cleared during refresh")
	}
	m.info.AccessToken = accessToken
	m.persistLocked()
	m.mu.Unlock()
	return nil
}

// buildUser fetches the profile through the retry protocol and constructs
// the user via the injected factory.
func (m *Manager) buildUser(ctx context.Context, info *AuthInfo) (*User, error) {
	profile, err := Authenticated(ctx, m, m.gw.Profile)
	if err != nil {
		return nil, err
	}
	return m.users.MakeUser(info.UserID, info.LoggedInProviderType, info.LoggedInProviderName, profileFromPayload(profile))
}

// persistLocked writes the current record. Persistence failures are not
// fatal to the in-memory transition; they are logged when verbose. Caller
// holds the write lock.
func (m *Manager) persistLocked() {
	if err := m.store.save(m.info); err != nil && verboseAuth {
		fmt.Printf("[DEBUG] auth: %s\n", logging.PresentError("persist failed", err))
	}
}

// clearLocked wipes the session in memory and in storage, retaining the
// device id in both. Caller holds the write lock.
func (m *Manager) clearLocked() {
	m.info = m.info.loggedOut()
	m.user = nil
	if err := m.store.clear(); err != nil && verboseAuth {
		fmt.Printf("[DEBUG] auth: %s\n", logging.PresentError("clear failed", err))
	}
}
