// Package storefront is the client-side core of the mini-app: the REST
// client, the credential session store, the host-bridge capability layer,
// the authentication flow, and the local shopping cart.
package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// DefaultBaseURL is used when no API origin is configured.
const DefaultBaseURL = "http://localhost:8080"

// ErrTokenMissing is raised locally, before any request is sent, when an
// authenticated call is attempted without a credential.
var ErrTokenMissing = errors.New("auth token missing")

// APIError is returned for any non-2xx response. Only the status code is
// carried; the API does not promise a structured error body.
type APIError struct {
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error: %d", e.StatusCode)
}

// Client talks to the storefront API. It holds the current bearer token;
// SetToken replaces it for all subsequent authenticated calls.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.Mutex
	token string
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithTimeout overrides the default 15s request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http.Timeout = d }
}

func NewClient(baseURL string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token used for authenticated calls. An empty
// string clears it.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the currently held bearer token.
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// request performs one API call. Every request carries JSON headers and
// disables intermediate caching; menu, profile, and address state change too
// often for stale responses to be acceptable.
func (c *Client) request(ctx context.Context, method, path string, auth bool, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-store")
	if auth {
		token := c.Token()
		if token == "" {
			return ErrTokenMissing
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &APIError{StatusCode: res.StatusCode}
	}

	if res.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	// An empty body resolves to "no value" rather than a parse error.
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

// AuthTelegram exchanges host-asserted initData for a token and profile.
func (c *Client) AuthTelegram(ctx context.Context, initData string) (*AuthResponse, error) {
	var resp AuthResponse
	payload := map[string]string{"init_data": initData}
	if err := c.request(ctx, http.MethodPost, "/auth/telegram", false, payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AdminLogin authenticates an operator and returns the admin bearer token.
func (c *Client) AdminLogin(ctx context.Context, username, password string) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	payload := map[string]string{"username": username, "password": password}
	if err := c.request(ctx, http.MethodPost, "/admin/login", false, payload, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (c *Client) GetMenu(ctx context.Context) (*MenuResponse, error) {
	var resp MenuResponse
	if err := c.request(ctx, http.MethodGet, "/menu", false, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetRegions(ctx context.Context) (*RegionsResponse, error) {
	var resp RegionsResponse
	if err := c.request(ctx, http.MethodGet, "/regions", false, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	var resp Profile
	if err := c.request(ctx, http.MethodGet, "/profile", true, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetAddresses(ctx context.Context) (*AddressesResponse, error) {
	var resp AddressesResponse
	if err := c.request(ctx, http.MethodGet, "/addresses", true, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CreateAddress(ctx context.Context, input AddressInput) (*Address, error) {
	var resp Address
	if err := c.request(ctx, http.MethodPost, "/addresses", true, input, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UpdateAddress(ctx context.Context, id int64, input AddressInput) (*Address, error) {
	var resp Address
	path := fmt.Sprintf("/addresses/%d", id)
	if err := c.request(ctx, http.MethodPut, path, true, input, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DeleteAddress(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/addresses/%d", id)
	return c.request(ctx, http.MethodDelete, path, true, nil, nil)
}

func (c *Client) CreateOrder(ctx context.Context, payload CreateOrderPayload) (*Order, error) {
	var resp Order
	if err := c.request(ctx, http.MethodPost, "/orders", true, payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
