package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricelist/internal/app/client/config"
	"pricelist/internal/portal"
)

func testConfig(t *testing.T, apiURL, portalURL string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Env:                "local",
		APIURL:             apiURL,
		PortalURL:          portalURL,
		ConfigDir:          dir,
		TokenPath:          filepath.Join(dir, "session"),
		CachePath:          filepath.Join(dir, "cache.db"),
		PollIntervalSec:    1,
		ProbeIntervalSec:   1,
		ProbeTimeoutSec:    1,
		SessionCheckSec:    1,
		RefreshIntervalSec: 1,
	}
}

func TestApp_StartSyncsCollection(t *testing.T) {
	prices := samplePrices()
	apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(prices)
	}))
	defer apiServer.Close()
	portalSrv := portalServer(t, portal.VerifyResult{Valid: true, Session: &portal.SessionInfo{Username: "maria"}})

	cfg := testConfig(t, apiServer.URL, portalSrv.URL)
	app := New(cfg, nil, nil, testLogger())
	defer app.Close()

	require.NoError(t, app.Start(context.Background(), "tok-123"))

	assert.True(t, app.Authenticated())
	assert.Equal(t, "maria", app.Username())
	assert.True(t, app.Online())

	view := app.View()
	assert.Len(t, view.Prices, len(prices))
	assert.Equal(t, AllBrands, view.SelectedBrand)

	// a second run with the server down still shows the cached
	// snapshot from this one
	deadAPI := httptest.NewServer(http.NotFoundHandler())
	deadURL := deadAPI.URL
	deadAPI.Close()

	cfg2 := testConfig(t, deadURL, portalSrv.URL)
	cfg2.CachePath = cfg.CachePath
	app2 := New(cfg2, nil, nil, testLogger())
	defer app2.Close()

	require.NoError(t, app2.Start(context.Background(), "tok-123"))
	assert.False(t, app2.Online())
	assert.Len(t, app2.View().Prices, len(prices), "cached snapshot feeds the offline first paint")
}

func TestApp_LockoutBlocksFurtherMutations(t *testing.T) {
	var reject atomic.Bool
	apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if reject.Load() {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.Method == http.MethodHead {
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("[]"))
	}))
	defer apiServer.Close()
	portalSrv := portalServer(t, portal.VerifyResult{Valid: true})

	notifier := &recordingNotifier{}
	app := New(testConfig(t, apiServer.URL, portalSrv.URL), nil, notifier, testLogger())
	defer app.Close()

	require.NoError(t, app.Start(context.Background(), "tok-123"))
	require.True(t, app.Authenticated())

	// server starts rejecting the session; the next poll escalates
	reject.Store(true)
	app.poller.PollOnce(context.Background())

	assert.False(t, app.Authenticated())
	assert.Empty(t, app.api.Token())
	assert.NotEmpty(t, notifier.Errors())

	// the engine refuses new work after the lockout
	_, err := app.Create(context.Background(), validFields())
	assert.ErrorIs(t, err, ErrSessionInvalid)
	app.Wait()
}
