// Copyright (c) 2025 Anchor
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"anchor/sdk/internal/credential"
	errs "anchor/sdk/internal/errors"
	"anchor/sdk/internal/gateway"
	"anchor/sdk/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testNamespace = "test-app"

// mockGateway lets each test script the server's behavior per endpoint and
// counts calls. The zero value answers every endpoint successfully.
type mockGateway struct {
	mu sync.Mutex

	loginFn   func(providerName string, material map[string]any) (*gateway.AuthInfoPayload, error)
	linkFn    func(providerName string, material map[string]any, accessToken string) (*gateway.AuthInfoPayload, error)
	profileFn func(accessToken string) (*gateway.ProfilePayload, error)
	refreshFn func(refreshToken string) (string, error)

	loginCalls   int
	linkCalls    int
	profileCalls int
	refreshCalls int
}

func defaultAuthPayload() *gateway.AuthInfoPayload {
	return &gateway.AuthInfoPayload{
		UserID:       "u1",
		DeviceID:     "d1",
		AccessToken:  "T1",
		RefreshToken: "R1",
	}
}

func defaultProfilePayload() *gateway.ProfilePayload {
	return &gateway.ProfilePayload{
		UserType: "normal",
		Identities: []gateway.IdentityPayload{
			{ID: "bar", ProviderType: "anon-user"},
		},
		Data: map[string]any{},
	}
}

func invalidSession() *gateway.RequestError {
	return &gateway.RequestError{
		StatusCode: 401,
		ErrorCode:  gateway.ErrorCodeInvalidSession,
		Message:    "invalid session",
	}
}

func (g *mockGateway) Login(ctx context.Context, providerName string, material map[string]any) (*gateway.AuthInfoPayload, error) {
	g.mu.Lock()
	g.loginCalls++
	fn := g.loginFn
	g.mu.Unlock()
	if fn != nil {
		return fn(providerName, material)
	}
	return defaultAuthPayload(), nil
}

func (g *mockGateway) Link(ctx context.Context, providerName string, material map[string]any, accessToken string) (*gateway.AuthInfoPayload, error) {
	g.mu.Lock()
	g.linkCalls++
	fn := g.linkFn
	g.mu.Unlock()
	if fn != nil {
		return fn(providerName, material, accessToken)
	}
	return defaultAuthPayload(), nil
}

func (g *mockGateway) Profile(ctx context.Context, accessToken string) (*gateway.ProfilePayload, error) {
	g.mu.Lock()
	g.profileCalls++
	fn := g.profileFn
	g.mu.Unlock()
	if fn != nil {
		return fn(accessToken)
	}
	return defaultProfilePayload(), nil
}

func (g *mockGateway) RefreshSession(ctx context.Context, refreshToken string) (string, error) {
	g.mu.Lock()
	g.refreshCalls++
	fn := g.refreshFn
	g.mu.Unlock()
	if fn != nil {
		return fn(refreshToken)
	}
	return "T2", nil
}

func newTestManager(t *testing.T) (*Manager, *mockGateway, *storage.Memory) {
	t.Helper()
	st := storage.NewMemory()
	gw := &mockGateway{}
	m := NewManager(st, testNamespace, gw, NewUserFactory())
	return m, gw, st
}

func storedValue(t *testing.T, st storage.Storage, key string) (string, bool) {
	t.Helper()
	return st.Get(testNamespace + "." + key)
}

func TestLoginAnonymous(t *testing.T) {
	m, gw, st := newTestManager(t)

	events := 0
	m.OnAuthEvent(func() { events++ })

	user, err := m.Login(context.Background(), credential.Anonymous{})
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, credential.TypeAnonymous, user.LoggedInProviderType)
	assert.True(t, m.IsLoggedIn())
	assert.True(t, m.HasDeviceID())
	assert.Equal(t, 1, events)
	assert.Equal(t, 1, gw.loginCalls)
	assert.Equal(t, 1, gw.profileCalls)

	access, ok := storedValue(t, st, keyAccessToken)
	require.True(t, ok)
	assert.Equal(t, "T1", access)
	refresh, ok := storedValue(t, st, keyRefreshToken)
	require.True(t, ok)
	assert.Equal(t, "R1", refresh)
	deviceID, ok := storedValue(t, st, keyDeviceID)
	require.True(t, ok)
	assert.Equal(t, "d1", deviceID)
}

func TestLoginValidatesCredential(t *testing.T) {
	m, gw, _ := newTestManager(t)

	_, err := m.Login(context.Background(), credential.UserPassword{Username: "alice"})
	require.Error(t, err)
	assert.Equal(t, 0, gw.loginCalls)
	assert.False(t, m.IsLoggedIn())
}

func TestAnonymousReloginReturnsCurrentUser(t *testing.T) {
	m, gw, _ := newTestManager(t)

	first, err := m.Login(context.Background(), credential.Anonymous{})
	require.NoError(t, err)
	second, err := m.Login(context.Background(), credential.Anonymous{})
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, gw.loginCalls)
}

func TestLogoutRetainsDeviceID(t *testing.T) {
	m, _, st := newTestManager(t)

	_, err := m.Login(context.Background(), credential.Anonymous{})
	require.NoError(t, err)
	require.True(t, m.HasDeviceID())

	events := 0
	m.OnAuthEvent(func() { events++ })

	require.NoError(t, m.Logout())
	assert.False(t, m.IsLoggedIn())
	assert.True(t, m.HasDeviceID())
	assert.Equal(t, 1, events)

	_, ok := storedValue(t, st, keyAccessToken)
	assert.False(t, ok)
	_, ok = storedValue(t, st, keyRefreshToken)
	assert.False(t, ok)
	deviceID, ok := storedValue(t, st, keyDeviceID)
	require.True(t, ok)
	assert.Equal(t, "d1", deviceID)

	// Idempotent: a second logout succeeds and fires no event.
	require.NoError(t, m.Logout())
	assert.Equal(t, 1, events)
}

func TestLoginPreservesStoredDeviceID(t *testing.T) {
	m, gw, _ := newTestManager(t)

	_, err := m.Login(context.Background(), credential.Anonymous{})
	require.NoError(t, err)
	require.NoError(t, m.Logout())

	// The server omits device_id for a device it already knows.
	gw.loginFn = func(string, map[string]any) (*gateway.AuthInfoPayload, error) {
		p := defaultAuthPayload()
		p.DeviceID = ""
		return p, nil
	}

	_, err = m.Login(context.Background(), credential.Anonymous{})
	require.NoError(t, err)
	assert.Equal(t, "d1", m.DeviceID())
}

func TestLinkWhenLoggedOut(t *testing.T) {
	m, gw, _ := newTestManager(t)

	_, err := m.Link(context.Background(), &User{ID: "u1"}, credential.UserPassword{Username: "a", Password: "b"})
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.MustAuthenticateFirst))
	assert.Equal(t, 0, gw.linkCalls)
	assert.False(t, m.IsLoggedIn())
}

func TestLinkRejectsStaleUser(t *testing.T) {
	m, gw, _ := newTestManager(t)

	_, err := m.Login(context.Background(), credential.Anonymous{})
	require.NoError(t, err)

	_, err = m.Link(context.Background(), &User{ID: "someone-else"}, credential.UserPassword{Username: "a", Password: "b"})
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.UserNoLongerValid))
	assert.Equal(t, 0, gw.linkCalls)
	assert.True(t, m.IsLoggedIn())
}

func TestLinkReplacesTokens(t *testing.T) {
	m, gw, st := newTestManager(t)

	user, err := m.Login(context.Background(), credential.Anonymous{})
	require.NoError(t, err)

	gw.linkFn = func(providerName string, material map[string]any, accessToken string) (*gateway.AuthInfoPayload, error) {
		if accessToken != "T1" {
			return nil, fmt.Errorf("unexpected bearer %q", accessToken)
		}
		return &gateway.AuthInfoPayload{
			UserID:       "u1",
			AccessToken:  "T1-linked",
			RefreshToken: "R1-linked",
		}, nil
	}

	events := 0
	m.OnAuthEvent(func() { events++ })

	linked, err := m.Link(context.Background(), user, credential.UserPassword{Username: "a", Password: "b"})
	require.NoError(t, err)
	assert.Equal(t, "u1", linked.ID)
	assert.Equal(t, credential.TypeUserPassword, linked.LoggedInProviderType)
	assert.Equal(t, 1, events)

	access, _ := storedValue(t, st, keyAccessToken)
	assert.Equal(t, "T1-linked", access)
	providerType, _ := storedValue(t, st, keyProviderType)
	assert.Equal(t, credential.TypeUserPassword, providerType)
	// Device id untouched by link.
	assert.Equal(t, "d1", m.DeviceID())
}

func TestAuthenticatedRequiresLogin(t *testing.T) {
	m, _, _ := newTestManager(t)

	_, err := Authenticated(context.Background(), m, func(ctx context.Context, accessToken string) (string, error) {
		t.Fatal("request must not run while logged out")
		return "", nil
	})
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.MustAuthenticateFirst))
}

func TestAuthenticatedRefreshAndRetry(t *testing.T) {
	m, gw, st := newTestManager(t)

	_, err := m.Login(context.Background(), credential.Anonymous{})
	require.NoError(t, err)

	calls := 0
	out, err := Authenticated(context.Background(), m, func(ctx context.Context, accessToken string) (string, error) {
		calls++
		if accessToken == "T1" {
			return "", invalidSession()
		}
		return "ok:" + accessToken, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok:T2", out)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, gw.refreshCalls)

	// The refreshed access token is persisted; the refresh token is not
	// touched by a refresh.
	access, _ := storedValue(t, st, keyAccessToken)
	assert.Equal(t, "T2", access)
	refresh, _ := storedValue(t, st, keyRefreshToken)
	assert.Equal(t, "R1", refresh)
	assert.True(t, m.IsLoggedIn())
}

func TestAuthenticatedRetryFailurePropagatesVerbatim(t *testing.T) {
	m, gw, _ := newTestManager(t)

	_, err := m.Login(context.Background(), credential.Anonymous{})
	require.NoError(t, err)

	boom := &gateway.RequestError{StatusCode: 403, ErrorCode: "Forbidden", Message: "nope"}
	calls := 0
	_, err = Authenticated(context.Background(), m, func(ctx context.Context, accessToken string) (string, error) {
		calls++
		if calls == 1 {
			return "", invalidSession()
		}
		return "", boom
	})
	require.Error(t, err)
	// The retry's failure surfaces as-is; no second refresh happens.
	assert.Same(t, error(boom), err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, gw.refreshCalls)
}

func TestAuthenticatedRefreshFailureForcesLogout(t *testing.T) {
	m, gw, st := newTestManager(t)

	_, err := m.Login(context.Background(), credential.Anonymous{})
	require.NoError(t, err)

	gw.refreshFn = func(string) (string, error) {
		return "", &gateway.RequestError{StatusCode: 401, ErrorCode: gateway.ErrorCodeInvalidSession, Message: "refresh token expired"}
	}

	events := 0
	m.OnAuthEvent(func() { events++ })

	original := invalidSession()
	calls := 0
	_, err = Authenticated(context.Background(), m, func(ctx context.Context, accessToken string) (string, error) {
		calls++
		return "", original
	})
	require.Error(t, err)
	// The original invalid-session failure propagates, not the refresh error.
	assert.Same(t, error(original), err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, gw.refreshCalls)

	// Forced logout: state cleared except device id, one event fired.
	assert.False(t, m.IsLoggedIn())
	assert.True(t, m.HasDeviceID())
	assert.Equal(t, 1, events)
	_, ok := storedValue(t, st, keyAccessToken)
	assert.False(t, ok)
	deviceID, _ := storedValue(t, st, keyDeviceID)
	assert.Equal(t, "d1", deviceID)
}

func TestAuthenticatedOtherErrorSkipsRefresh(t *testing.T) {
	m, gw, _ := newTestManager(t)

	_, err := m.Login(context.Background(), credential.Anonymous{})
	require.NoError(t, err)

	boom := &gateway.RequestError{StatusCode: 500, ErrorCode: "InternalError", Message: "boom"}
	_, err = Authenticated(context.Background(), m, func(ctx context.Context, accessToken string) (string, error) {
		return "", boom
	})
	require.Error(t, err)
	assert.Same(t, error(boom), err)
	assert.Equal(t, 0, gw.refreshCalls)
	assert.True(t, m.IsLoggedIn())
}

func TestLoginProfileFailureRollsBack(t *testing.T) {
	m, gw, st := newTestManager(t)

	gw.profileFn = func(string) (*gateway.ProfilePayload, error) {
		return nil, &gateway.RequestError{StatusCode: 500, ErrorCode: "InternalError", Message: "boom"}
	}

	events := 0
	m.OnAuthEvent(func() { events++ })

	_, err := m.Login(context.Background(), credential.Anonymous{})
	require.Error(t, err)

	// The half-open session was rolled back and no event fired.
	assert.False(t, m.IsLoggedIn())
	assert.Equal(t, 0, events)
	_, ok := storedValue(t, st, keyAccessToken)
	assert.False(t, ok)
	// Device id from the login response is still retained.
	assert.True(t, m.HasDeviceID())
}

func TestManagerRestoresPersistedSession(t *testing.T) {
	st := storage.NewMemory()
	gw := &mockGateway{}

	first := NewManager(st, testNamespace, gw, NewUserFactory())
	_, err := first.Login(context.Background(), credential.Anonymous{})
	require.NoError(t, err)

	// A new manager over the same store sees the committed session.
	second := NewManager(st, testNamespace, gw, NewUserFactory())
	assert.True(t, second.IsLoggedIn())
	assert.Equal(t, "d1", second.DeviceID())
}

func TestPartialPersistedStateLoadsAsLoggedOut(t *testing.T) {
	st := storage.NewMemory()
	require.NoError(t, st.Set(testNamespace+"."+keyAccessToken, "T1"))
	require.NoError(t, st.Set(testNamespace+"."+keyDeviceID, "d1"))

	m := NewManager(st, testNamespace, &mockGateway{}, NewUserFactory())
	assert.False(t, m.IsLoggedIn())
	assert.True(t, m.HasDeviceID())
}

func TestConcurrentLoginLogoutKeepsTokensPaired(t *testing.T) {
	m, _, st := newTestManager(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_, _ = m.Login(context.Background(), credential.Anonymous{})
			} else {
				_ = m.Logout()
			}
		}(i)
	}
	wg.Wait()

	// Whatever interleaving happened, the persisted record never holds
	// exactly one of the two tokens.
	_, hasAccess := storedValue(t, st, keyAccessToken)
	_, hasRefresh := storedValue(t, st, keyRefreshToken)
	assert.Equal(t, hasAccess, hasRefresh)
	assert.Equal(t, hasAccess, m.IsLoggedIn())
}

// Full scenario: anonymous login, server rejects the next profile fetch with
// an invalid session, refresh mints T2, the retried fetch succeeds and T2 is
// persisted.
func TestSessionRefreshScenario(t *testing.T) {
	m, gw, st := newTestManager(t)

	user, err := m.Login(context.Background(), credential.Anonymous{})
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.True(t, m.IsLoggedIn())

	gw.profileFn = func(accessToken string) (*gateway.ProfilePayload, error) {
		if accessToken == "T1" {
			return nil, invalidSession()
		}
		return defaultProfilePayload(), nil
	}

	profile, err := Authenticated(context.Background(), m, gw.Profile)
	require.NoError(t, err)
	assert.Equal(t, "normal", profile.UserType)
	assert.Equal(t, 1, gw.refreshCalls)

	access, _ := storedValue(t, st, keyAccessToken)
	assert.Equal(t, "T2", access)
}

func TestAuthEventObserverOrder(t *testing.T) {
	m, _, _ := newTestManager(t)

	var order []string
	m.OnAuthEvent(func() { order = append(order, "first") })
	m.OnAuthEvent(func() { order = append(order, "second") })

	_, err := m.Login(context.Background(), credential.Anonymous{})
	require.NoError(t, err)
	require.NoError(t, m.Logout())

	assert.Equal(t, []string{"first", "second", "first", "second"}, order)
}
