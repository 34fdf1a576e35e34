package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// envelope is the response wrapper every endpoint uses. The payload is
// unwrapped before anything is cached.
type envelope struct {
	Status  string          `json:"status"`
	Payload json.RawMessage `json:"payload"`
	Message string          `json:"message,omitempty"`
}

const statusSuccess = "success"

// RemoteClient is an authenticated HTTP client for one remote. It is
// built once per remote identifier and reused for the lifetime of the
// process (a single CLI invocation).
type RemoteClient struct {
	remoteID string
	baseURL  string
	token    string
	http     *http.Client
}

// NewRemoteClient builds a client from a remote record
func NewRemoteClient(r Remote, timeout time.Duration) *RemoteClient {
	return &RemoteClient{
		remoteID: r.ID,
		baseURL:  r.BaseURL(),
		token:    r.Auth.Token,
		http:     &http.Client{Timeout: timeout},
	}
}

// RemoteID returns the remote identifier this client is bound to
func (c *RemoteClient) RemoteID() string {
	return c.remoteID
}

func (c *RemoteClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &RemoteUnreachableError{RemoteID: c.remoteID, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RemoteUnreachableError{RemoteID: c.remoteID, Err: err}
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("remote %s: unexpected response (%d): %w", c.remoteID, resp.StatusCode, err)
	}
	if resp.StatusCode >= 400 || env.Status != statusSuccess {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return fmt.Errorf("remote %s: %s (%d)", c.remoteID, msg, resp.StatusCode)
	}

	if out != nil && len(env.Payload) > 0 {
		if err := json.Unmarshal(env.Payload, out); err != nil {
			return fmt.Errorf("remote %s: decoding payload: %w", c.remoteID, err)
		}
	}
	return nil
}

// Ping probes the remote's health endpoint
func (c *RemoteClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/ping", nil, nil)
}

// ListContexts fetches the remote's complete context list
func (c *RemoteClient) ListContexts(ctx context.Context) ([]CachedContext, error) {
	var out []CachedContext
	if err := c.do(ctx, http.MethodGet, "/contexts", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListWorkspaces fetches the remote's complete workspace list
func (c *RemoteClient) ListWorkspaces(ctx context.Context) ([]CachedWorkspace, error) {
	var out []CachedWorkspace
	if err := c.do(ctx, http.MethodGet, "/workspaces", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetContext fetches one context by id
func (c *RemoteClient) GetContext(ctx context.Context, id string) (*CachedContext, error) {
	var out CachedContext
	if err := c.do(ctx, http.MethodGet, "/contexts/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a bearer token
func (c *RemoteClient) Login(ctx context.Context, username, password string) (string, error) {
	body := map[string]string{"username": username, "password": password}
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", fmt.Errorf("remote %s: login succeeded but no token in payload", c.remoteID)
	}
	return out.Token, nil
}

// ClientFactory lazily builds and caches one RemoteClient per remote
// identifier. Clients are never shared across identifiers, even when
// two identifiers point at the same physical server.
type ClientFactory struct {
	store   *Store
	timeout time.Duration

	mu      sync.Mutex
	clients map[string]*RemoteClient
}

// NewClientFactory creates a factory over the given store
func NewClientFactory(store *Store, timeout time.Duration) *ClientFactory {
	return &ClientFactory{
		store:   store,
		timeout: timeout,
		clients: make(map[string]*RemoteClient),
	}
}

// Client returns the cached client for a remote identifier, building it
// on first use. Unknown identifiers fail with RemoteNotFoundError.
func (f *ClientFactory) Client(remoteID string) (*RemoteClient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.clients[remoteID]; ok {
		return c, nil
	}
	remote, ok := f.store.Remote(remoteID)
	if !ok {
		return nil, &RemoteNotFoundError{RemoteID: remoteID}
	}
	c := NewRemoteClient(remote, f.timeout)
	f.clients[remoteID] = c
	return c, nil
}

// Invalidate drops the cached client for a remote, forcing the next
// Client call to re-read credentials from the store. Used after login
// rewrites the token.
func (f *ClientFactory) Invalidate(remoteID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.clients, remoteID)
}
