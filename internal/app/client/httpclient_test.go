package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricelist/internal/domain/price"
)

func TestAPIClient_SendsTokenAndCacheHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tok-123", r.Header.Get("X-Session-Token"))
		assert.Equal(t, "no-cache", r.Header.Get("Cache-Control"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]price.Price{})
	}))
	defer server.Close()

	api := newAPIClient(server.URL, testLogger())
	api.SetToken("tok-123")

	_, err := api.List(context.Background())
	require.NoError(t, err)
	require.NoError(t, api.Probe(context.Background()))
}

func TestAPIClient_UnauthorizedIsSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Unauthorized"}`))
	}))
	defer server.Close()

	api := newAPIClient(server.URL, testLogger())

	_, err := api.List(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)

	err = api.Delete(context.Background(), "1")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAPIClient_ServerErrorMessageSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"codigo already registered"}`))
	}))
	defer server.Close()

	api := newAPIClient(server.URL, testLogger())

	_, err := api.Create(context.Background(), validFields())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "codigo already registered")
}

func TestAPIClient_ProbeFailsOnErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	api := newAPIClient(server.URL, testLogger())
	assert.Error(t, api.Probe(context.Background()))
}
