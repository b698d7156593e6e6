// api implements the authenticated request pipeline. Every call goes out
// with the current bearer token attached; a 401 triggers one refresh
// through the auth root's cookie-based refresh endpoint and one retry of
// the original request. The retry itself never retries, so an expired
// refresh cookie cannot loop.
package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"

	"github.com/google/uuid"

	"voteroom/internal/config"
	"voteroom/internal/constants"
	"voteroom/internal/token"
	"voteroom/internal/types"
)

// Base selects the logical API root for a request.
type Base int

const (
	// BaseResource: /api/v1, bearer-authenticated resource endpoints.
	BaseResource Base = iota
	// BaseAuth: /api, the auth endpoint family (signup/signin/refresh/logout).
	BaseAuth
)

func (b Base) root() string {
	if b == BaseAuth {
		return constants.AuthRoot
	}
	return constants.ResourceRoot
}

type Client struct {
	http   *http.Client
	origin string
	store  *token.Store
	log    *slog.Logger
}

// New builds a Client for the configured server origin. The underlying
// http.Client carries a cookie jar: the refresh cookie the auth root
// sets on sign-in rides along on every request, which is what makes the
// refresh sub-protocol work without any bearer token.
func New(cfg *config.Config, store *token.Store, log *slog.Logger) (*Client, error) {
	if log == nil {
		log = slog.Default()
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	httpClient := &http.Client{
		Jar:     jar,
		Timeout: cfg.HTTP.Timeout,
	}
	if cfg.Server.InsecureSkipVerify {
		log.Warn("TLS verify skip enabled", "server", cfg.Server.URL)
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	return &Client{
		http:   httpClient,
		origin: cfg.Server.URL,
		store:  store,
		log:    log,
	}, nil
}

// TokenStore exposes the credential store the client writes refreshed
// tokens through.
func (c *Client) TokenStore() *token.Store {
	return c.store
}

// Do performs one logical request with explicit base, method and extra
// headers: the general entry point the convenience wrappers delegate to.
func (c *Client) Do(ctx context.Context, base Base, method, path string, body, out any, headers http.Header) error {
	return c.execute(ctx, base, method, path, body, out, headers, true)
}

// execute performs one logical request. retry is true only on the first
// attempt; the recursive call after a successful refresh passes false.
func (c *Client) execute(ctx context.Context, base Base, method, path string, body, out any, headers http.Header, retry bool) error {
	url := c.origin + base.root() + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	// Caller headers are merged on top, so they may override the
	// defaults but never the bearer token or the request id.
	for key, vals := range headers {
		req.Header.Del(key)
		for _, val := range vals {
			req.Header.Add(key, val)
		}
	}
	req.Header.Set("X-Request-Id", uuid.NewString())
	if tok, ok := c.store.Get(); ok {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && retry {
		// Keep the original 401 body around: if the refresh fails this
		// response is what the caller gets.
		respBody, _ := io.ReadAll(resp.Body)
		if c.refresh(ctx) {
			return c.execute(ctx, base, method, path, body, out, headers, false)
		}
		c.store.Clear()
		return newError(resp.StatusCode, respBody)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return newError(resp.StatusCode, respBody)
	}

	// 204 carries no body, nothing to decode.
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// refresh exchanges the ambient refresh cookie for a new access token.
// It never returns an error: any failure: network, non-2xx, missing
// token in the body: just reports false.
func (c *Client) refresh(ctx context.Context) bool {
	url := c.origin + constants.AuthRoot + constants.EndpointRefresh

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("token refresh failed", "err", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Debug("token refresh rejected", "status", resp.StatusCode)
		return false
	}

	var auth types.AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return false
	}
	if auth.AccessToken == "" {
		return false
	}

	c.store.Set(auth.AccessToken)
	return true
}

// Get issues a GET against the resource root, decoding into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.execute(ctx, BaseResource, http.MethodGet, path, nil, out, nil, true)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.execute(ctx, BaseResource, http.MethodPost, path, body, out, nil, true)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.execute(ctx, BaseResource, http.MethodPut, path, body, out, nil, true)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.execute(ctx, BaseResource, http.MethodDelete, path, nil, nil, nil, true)
}

// AuthPost targets the auth root. The auth endpoints are themselves part
// of the refresh flow, so a bearer token may or may not exist yet;
// attach-if-present and retry-once apply the same as everywhere else.
func (c *Client) AuthPost(ctx context.Context, path string, body, out any) error {
	return c.execute(ctx, BaseAuth, http.MethodPost, path, body, out, nil, true)
}
