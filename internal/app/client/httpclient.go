package client

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

	"golang.org/x/exp/slog"

	"pricelist/internal/domain/price"
)

// ErrUnauthorized marks a 401 from the storage API. It is always fatal
// to the session, never a transient condition.
var ErrUnauthorized = errors.New("unauthorized")

// apiClient talks to the storage API. The session token travels in the
// X-Session-Token header on every request.
type apiClient struct {
	client  *http.Client
	baseURL string
	log     *slog.Logger

	mu    sync.RWMutex
	token string
}

func newAPIClient(baseURL string, log *slog.Logger) *apiClient {
	return &apiClient{
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
		baseURL: baseURL,
		log:     log.With("component", "api_client"),
	}
}

func (c *apiClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *apiClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Probe runs the no-body liveness check. Any transport error or non-2xx
// status means unreachable; the caller bounds the duration via ctx.
func (c *apiClient) Probe(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/api/precos", nil)
	if err != nil {
		return fmt.Errorf("create probe request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("X-Session-Token", c.Token())

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("probe: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("probe: status %d", resp.StatusCode)
	}
	return nil
}

// List fetches the full collection with cache-defeating headers.
func (c *apiClient) List(ctx context.Context) ([]price.Price, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/precos", nil)
	if err != nil {
		return nil, fmt.Errorf("create list request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("X-Session-Token", c.Token())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list prices: %w", err)
	}

	var prices []price.Price
	if err := c.parseResponse(resp, &prices); err != nil {
		return nil, err
	}
	return prices, nil
}

func (c *apiClient) Create(ctx context.Context, fields price.Fields) (*price.Price, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/precos", fields)
	if err != nil {
		return nil, err
	}

	var created price.Price
	if err := c.parseResponse(resp, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *apiClient) Update(ctx context.Context, id string, fields price.Fields) (*price.Price, error) {
	resp, err := c.doRequest(ctx, http.MethodPut, "/api/precos/"+id, fields)
	if err != nil {
		return nil, err
	}

	var updated price.Price
	if err := c.parseResponse(resp, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *apiClient) Delete(ctx context.Context, id string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/api/precos/"+id, nil)
	if err != nil {
		return err
	}
	return c.parseResponse(resp, nil)
}

func (c *apiClient) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-Token", c.Token())

	c.log.Debug("sending request", "method", method, "url", req.URL.String())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	return resp, nil
}

func (c *apiClient) parseResponse(resp *http.Response, result interface{}) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("server error: %s", errResp.Error)
		}
		return fmt.Errorf("server error: status %d", resp.StatusCode)
	}

	if result != nil && len(body) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
	}
	return nil
}
