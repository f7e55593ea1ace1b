package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultAPIURL    = "http://localhost:3002"
	defaultPortalURL = "http://localhost:3001"
	defaultConfigDir = ".tabela-precos"
)

type Config struct {
	Env       string
	APIURL    string
	PortalURL string
	ConfigDir string
	TokenPath string
	CachePath string

	// Intervals in seconds. Probing is cheaper than a full fetch, so the
	// two run on independent schedules.
	PollIntervalSec    int
	ProbeIntervalSec   int
	ProbeTimeoutSec    int
	SessionCheckSec    int
	RefreshIntervalSec int
}

// MustLoad loads the client configuration from the environment, with an
// optional .env file next to the binary.
func MustLoad() *Config {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("failed to load .env: %v\n", err)
		}
	}

	viper.AutomaticEnv()

	viper.SetDefault("APP_ENV", "local")
	viper.SetDefault("API_URL", defaultAPIURL)
	viper.SetDefault("PORTAL_URL", defaultPortalURL)
	viper.SetDefault("CONFIG_DIR", defaultConfigDir)
	viper.SetDefault("POLL_INTERVAL_SECONDS", 3)
	viper.SetDefault("PROBE_INTERVAL_SECONDS", 10)
	viper.SetDefault("PROBE_TIMEOUT_SECONDS", 5)
	viper.SetDefault("SESSION_CHECK_SECONDS", 30)
	viper.SetDefault("REFRESH_INTERVAL_SECONDS", 30)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	configDir := viper.GetString("CONFIG_DIR")
	if configDir == defaultConfigDir {
		configDir = filepath.Join(homeDir, configDir)
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		fmt.Printf("failed to create config dir: %v\n", err)
	}

	cfg := &Config{
		Env:                viper.GetString("APP_ENV"),
		APIURL:             viper.GetString("API_URL"),
		PortalURL:          viper.GetString("PORTAL_URL"),
		ConfigDir:          configDir,
		TokenPath:          filepath.Join(configDir, "session"),
		CachePath:          filepath.Join(configDir, "cache.db"),
		PollIntervalSec:    viper.GetInt("POLL_INTERVAL_SECONDS"),
		ProbeIntervalSec:   viper.GetInt("PROBE_INTERVAL_SECONDS"),
		ProbeTimeoutSec:    viper.GetInt("PROBE_TIMEOUT_SECONDS"),
		SessionCheckSec:    viper.GetInt("SESSION_CHECK_SECONDS"),
		RefreshIntervalSec: viper.GetInt("REFRESH_INTERVAL_SECONDS"),
	}

	if err := cfg.validate(); err != nil {
		panic(fmt.Sprintf("invalid configuration: %v", err))
	}

	return cfg
}

func (c *Config) validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("api_url must not be empty")
	}
	if c.PortalURL == "" {
		return fmt.Errorf("portal_url must not be empty")
	}

	// the intervals feed time.NewTicker, which panics on non-positive
	// durations
	intervals := map[string]int{
		"poll_interval_seconds":    c.PollIntervalSec,
		"probe_interval_seconds":   c.ProbeIntervalSec,
		"probe_timeout_seconds":    c.ProbeTimeoutSec,
		"session_check_seconds":    c.SessionCheckSec,
		"refresh_interval_seconds": c.RefreshIntervalSec,
	}
	for name, value := range intervals {
		if value <= 0 {
			return fmt.Errorf("%s must be positive, got %d", name, value)
		}
	}
	return nil
}
