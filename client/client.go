// Package client provides a client for the activity registration HTTP API.
//
// Rejections are mapped back to the registry's sentinel errors, so callers
// can use errors.Is exactly as they would against a local registry:
//
//	c := client.New("http://localhost:8080")
//	msg, err := c.Signup(ctx, "Chess Club", "ada@mergington.edu")
//	if errors.Is(err, registry.ErrFull) {
//	    ...
//	}
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nomis52/mergington/registry"
)

const defaultTimeout = 10 * time.Second

// Client talks to an activity registration server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a Client for the server at baseURL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is returned for responses the client cannot map to a registry error.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Detail)
}

// List returns every activity keyed by name.
func (c *Client) List(ctx context.Context) (map[string]registry.Activity, error) {
	var out map[string]registry.Activity
	if err := c.do(ctx, http.MethodGet, "/activities", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a single activity.
func (c *Client) Get(ctx context.Context, activity string) (registry.Activity, error) {
	var out registry.Activity
	if err := c.do(ctx, http.MethodGet, "/activities/"+url.PathEscape(activity), nil, &out); err != nil {
		return registry.Activity{}, err
	}
	return out, nil
}

// Signup enrolls email in activity and returns the server's confirmation message.
func (c *Client) Signup(ctx context.Context, activity, email string) (string, error) {
	path := "/activities/" + url.PathEscape(activity) + "/signup?email=" + url.QueryEscape(email)
	var out struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, path, nil, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// Unregister removes email from activity and returns the server's confirmation message.
func (c *Client) Unregister(ctx context.Context, activity, email string) (string, error) {
	body, err := json.Marshal(map[string]string{"participant": email})
	if err != nil {
		return "", err
	}
	var out struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/activities/"+url.PathEscape(activity)+"/unregister", body, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// decodeError turns an error response into a registry sentinel where the
// server's detail message identifies one.
func decodeError(resp *http.Response) error {
	var e struct {
		Detail string `json:"detail"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	if err := json.Unmarshal(data, &e); err != nil || e.Detail == "" {
		e.Detail = strings.TrimSpace(string(data))
	}

	var sentinel error
	switch {
	case resp.StatusCode == http.StatusNotFound && e.Detail == "Activity not found":
		sentinel = registry.ErrNotFound
	case resp.StatusCode == http.StatusBadRequest && e.Detail == "Student already signed up for this activity":
		sentinel = registry.ErrAlreadyRegistered
	case resp.StatusCode == http.StatusBadRequest && e.Detail == "Activity is full":
		sentinel = registry.ErrFull
	case resp.StatusCode == http.StatusBadRequest && e.Detail == "Participant not found in activity":
		sentinel = registry.ErrNotRegistered
	}

	apiErr := &APIError{StatusCode: resp.StatusCode, Detail: e.Detail}
	if sentinel != nil {
		return fmt.Errorf("%w: %w", sentinel, apiErr)
	}
	return apiErr
}
