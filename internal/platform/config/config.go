// Package config loads service configuration from the environment.
package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL string
	Port        string
	LogLevel    string
	Development bool

	JWTSecret string
	JWTExpiry time.Duration

	DBMaxConns        int32
	DBMinConns        int32
	DBMaxConnLifetime time.Duration
}

// Load reads configuration from environment variables, with an optional
// .env file for local development.
func Load() (*Config, error) {
	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("JWT_SECRET", "change-me-in-production")
	viper.SetDefault("JWT_EXPIRY", "8h")
	viper.SetDefault("DB_MAX_CONNS", 25)
	viper.SetDefault("DB_MIN_CONNS", 5)
	viper.SetDefault("DB_MAX_CONN_LIFETIME", "1h")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL: viper.GetString("DATABASE_URL"),
		Port:        viper.GetString("PORT"),
		LogLevel:    viper.GetString("LOG_LEVEL"),
		Development: viper.GetString("APP_ENV") == "development",
		JWTSecret:   viper.GetString("JWT_SECRET"),
		JWTExpiry:   viper.GetDuration("JWT_EXPIRY"),

		DBMaxConns:        viper.GetInt32("DB_MAX_CONNS"),
		DBMinConns:        viper.GetInt32("DB_MIN_CONNS"),
		DBMaxConnLifetime: viper.GetDuration("DB_MAX_CONN_LIFETIME"),
	}

	return cfg, nil
}
