// Package config loads server settings from the environment and an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Port     int
	LogLevel string
	DB       DBConfig
	Auth     AuthConfig
	Events   EventsConfig
}

type DBConfig struct {
	Driver      string
	Path        string // sqlite file
	DatabaseURL string // postgres DSN
	MaxConns    int32
}

type AuthConfig struct {
	Disabled      bool
	JWTSecret     string
	TokenDuration time.Duration
}

type EventsConfig struct {
	AMQPURL  string // empty disables publishing
	Exchange string
}

// Load reads .env if present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return fromEnv()
}

func fromEnv() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil || port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid PORT %q", os.Getenv("PORT"))
	}

	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "10"))
	if err != nil || maxConns <= 0 {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS %q", os.Getenv("DB_MAX_CONNS"))
	}

	tokenDuration, err := time.ParseDuration(getEnv("TOKEN_DURATION", "24h"))
	if err != nil || tokenDuration <= 0 {
		return nil, fmt.Errorf("invalid TOKEN_DURATION %q", os.Getenv("TOKEN_DURATION"))
	}

	authDisabled, err := strconv.ParseBool(getEnv("AUTH_DISABLED", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_DISABLED %q", os.Getenv("AUTH_DISABLED"))
	}

	cfg := &Config{
		Port:     port,
		LogLevel: getEnv("LOG_LEVEL", "info"),
		DB: DBConfig{
			Driver:      strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
			Path:        getEnv("DB_PATH", "./data/kitchenpos.db"),
			DatabaseURL: getEnv("DATABASE_URL", ""),
			MaxConns:    int32(maxConns),
		},
		Auth: AuthConfig{
			Disabled:      authDisabled,
			JWTSecret:     getEnv("JWT_SECRET", ""),
			TokenDuration: tokenDuration,
		},
		Events: EventsConfig{
			AMQPURL:  getEnv("AMQP_URL", ""),
			Exchange: getEnv("AMQP_EXCHANGE", "kitchenpos.events"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field requirements.
func (c *Config) Validate() error {
	var errs []error

	switch c.DB.Driver {
	case DriverSQLite:
		if c.DB.Path == "" {
			errs = append(errs, errors.New("DB_PATH is required for the sqlite driver"))
		}
	case DriverPostgres:
		if c.DB.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown DB_DRIVER %q", c.DB.Driver))
	}

	if !c.Auth.Disabled && c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required unless AUTH_DISABLED=true"))
	}
	if c.Events.AMQPURL != "" && c.Events.Exchange == "" {
		errs = append(errs, errors.New("AMQP_EXCHANGE must not be empty"))
	}

	return errors.Join(errs...)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
