package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONFIG_DIR", dir)

	cfg := MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, defaultAPIURL, cfg.APIURL)
	assert.Equal(t, defaultPortalURL, cfg.PortalURL)
	assert.Equal(t, dir, cfg.ConfigDir)
	assert.Equal(t, filepath.Join(dir, "session"), cfg.TokenPath)
	assert.Equal(t, filepath.Join(dir, "cache.db"), cfg.CachePath)

	assert.Equal(t, 3, cfg.PollIntervalSec)
	assert.Equal(t, 10, cfg.ProbeIntervalSec)
	assert.Equal(t, 5, cfg.ProbeTimeoutSec)
	assert.Equal(t, 30, cfg.SessionCheckSec)
	assert.Equal(t, 30, cfg.RefreshIntervalSec)
}

func TestMustLoad_RejectsNonPositiveIntervals(t *testing.T) {
	t.Setenv("CONFIG_DIR", t.TempDir())
	t.Setenv("POLL_INTERVAL_SECONDS", "0")

	assert.Panics(t, func() { MustLoad() })
}

func TestMustLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_DIR", t.TempDir())
	t.Setenv("API_URL", "http://api.example:9999")
	t.Setenv("POLL_INTERVAL_SECONDS", "7")

	cfg := MustLoad()

	require.Equal(t, "http://api.example:9999", cfg.APIURL)
	assert.Equal(t, 7, cfg.PollIntervalSec)
}
