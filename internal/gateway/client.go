// Copyright (c) 2025 Anchor
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package gateway implements the session request gateway: the HTTP client for
// the Anchor auth endpoints. It attaches bearer headers to authenticated
// calls and decodes server error documents into typed RequestErrors. Retry
// policy is not decided here; that belongs to the auth state manager.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"anchor/sdk/internal/device"
)

// Client performs auth exchanges against one Anchor app.
type Client struct {
	// baseURL is the server origin, e.g. "https://api.anchor.dev".
	baseURL string
	routes  routes
	client  *http.Client
	// dev supplies the device document attached to login/link requests.
	dev device.InfoProvider
}

// New creates a gateway client for the given app. dev may be nil when no
// device document should be attached.
func New(baseURL, clientAppID string, dev device.InfoProvider) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		routes:  routes{clientAppID: clientAppID},
		client:  &http.Client{Timeout: 15 * time.Second},
		dev:     dev,
	}
}

// Login performs the unauthenticated login exchange for the named provider.
func (c *Client) Login(ctx context.Context, providerName string, material map[string]any) (*AuthInfoPayload, error) {
	var out AuthInfoPayload
	if err := c.doJSON(ctx, http.MethodPost, c.routes.loginRoute(providerName), c.loginBody(material), "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Link performs the bearer-authenticated link exchange for the named
// provider, attaching the current access token.
func (c *Client) Link(ctx context.Context, providerName string, material map[string]any, accessToken string) (*AuthInfoPayload, error) {
	var out AuthInfoPayload
	if err := c.doJSON(ctx, http.MethodPost, c.routes.linkRoute(providerName), c.loginBody(material), accessToken, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Profile fetches the profile document for the session behind accessToken.
func (c *Client) Profile(ctx context.Context, accessToken string) (*ProfilePayload, error) {
	var out ProfilePayload
	if err := c.doJSON(ctx, http.MethodGet, c.routes.profileRoute(), nil, accessToken, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RefreshSession mints a new access token. The bearer on this call is the
// refresh token, not the access token.
func (c *Client) RefreshSession(ctx context.Context, refreshToken string) (string, error) {
	var out sessionPayload
	if err := c.doJSON(ctx, http.MethodPost, c.routes.sessionRoute(), nil, refreshToken, &out); err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

// loginBody merges credential material with the device document under
// "options", matching the login/link request schema.
func (c *Client) loginBody(material map[string]any) map[string]any {
	body := make(map[string]any, len(material)+1)
	for k, v := range material {
		body[k] = v
	}
	if c.dev != nil {
		body["options"] = map[string]any{"device": c.dev.Info()}
	}
	return body
}

// doJSON performs one round trip: optional JSON body, optional bearer token,
// JSON-decoded 2xx response, decoded RequestError otherwise.
func (c *Client) doJSON(ctx context.Context, method, path string, body map[string]any, bearer string, out any) error {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
