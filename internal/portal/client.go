// Package portal talks to the external portal service that issues and
// verifies session tokens. The price list never creates sessions itself;
// it only asks the portal whether a token is still good.
package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/exp/slog"
)

// SessionInfo is the portal's description of the authenticated user.
type SessionInfo struct {
	Username string `json:"username"`
}

// VerifyResult is the portal's answer for a token. Invalid tokens come
// back with Valid=false and an optional human-readable message.
type VerifyResult struct {
	Valid   bool         `json:"valid"`
	Message string       `json:"message,omitempty"`
	Session *SessionInfo `json:"session,omitempty"`
}

type Client struct {
	client  *http.Client
	baseURL string
	log     *slog.Logger
}

func NewClient(baseURL string, log *slog.Logger) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
		log:     log.With("component", "portal_client"),
	}
}

// BaseURL returns the portal address, used to point locked-out users
// back at the login page.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// VerifySession asks the portal whether the token is valid. A non-2xx
// response or a transport error is returned as an error; callers decide
// whether that invalidates the session.
func (c *Client) VerifySession(ctx context.Context, token string) (*VerifyResult, error) {
	payload, err := json.Marshal(map[string]string{"sessionToken": token})
	if err != nil {
		return nil, fmt.Errorf("marshal verify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/verify-session", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("verify session: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read verify response: %w", err)
	}

	if resp.StatusCode >= 400 {
		c.log.Debug("portal rejected verification", "status", resp.StatusCode)
		return nil, fmt.Errorf("portal returned status %d", resp.StatusCode)
	}

	var result VerifyResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse verify response: %w", err)
	}

	return &result, nil
}
