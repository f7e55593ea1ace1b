package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	defaultRunAddress = ":3002"
	defaultPortalURL  = "http://localhost:3001"
	defaultMigrations = "migrations"
)

type Config struct {
	Env    string
	DB     db
	Server server
	Portal portal
	Logger logger
}

type db struct {
	DatabaseURI string
	Migrations  string
}

type server struct {
	RunAddress string
}

type portal struct {
	// BaseURL of the external portal that issues and verifies session
	// tokens. The server never issues tokens itself.
	BaseURL string

	// SessionCacheSeconds controls how long a positive verification is
	// reused before asking the portal again.
	SessionCacheSeconds int
}

type logger struct {
	LogLevel string
}

func MustLoad() *Config {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("failed to load .env, relying on environment variables")
		}
	}

	viper.AutomaticEnv()
	viper.SetDefault("RUN_ADDRESS", defaultRunAddress)
	viper.SetDefault("PORTAL_URL", defaultPortalURL)
	viper.SetDefault("MIGRATIONS_PATH", defaultMigrations)
	viper.SetDefault("SESSION_CACHE_SECONDS", 60)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("APP_ENV", EnvLocal)

	return &Config{
		Env: viper.GetString("APP_ENV"),
		DB: db{
			DatabaseURI: viper.GetString("DATABASE_URI"),
			Migrations:  viper.GetString("MIGRATIONS_PATH"),
		},
		Server: server{RunAddress: viper.GetString("RUN_ADDRESS")},
		Portal: portal{
			BaseURL:             viper.GetString("PORTAL_URL"),
			SessionCacheSeconds: viper.GetInt("SESSION_CACHE_SECONDS"),
		},
		Logger: logger{LogLevel: viper.GetString("LOG_LEVEL")},
	}
}
