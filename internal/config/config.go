// Package config reads runtime configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// ErrMissingSpotifyCredentials is returned when SPOTIFY_ID or
// SPOTIFY_SECRET is not set.
var ErrMissingSpotifyCredentials = errors.New("missing SPOTIFY_ID or SPOTIFY_SECRET environment variable")

// Defaults for optional settings.
const (
	DefaultAddr       = "127.0.0.1:8080"
	DefaultLogMode    = "dev"
	DefaultSessionTTL = time.Hour
)

// Config holds process configuration.
type Config struct {
	Addr        string        // MOODMUSE_ADDR
	LogMode     string        // MOODMUSE_LOG_MODE: dev or prod
	LexiconPath string        // MOODMUSE_LEXICON; embedded lexicon when empty
	CatalogPath string        // MOODMUSE_CATALOG; embedded sample when empty
	DatabaseURL string        // DATABASE_URL; switches the catalog to Postgres
	RedisAddr   string        // REDIS_ADDR; switches sessions to Redis
	SessionTTL  time.Duration // MOODMUSE_SESSION_TTL
}

// Load reads configuration from the environment. Only malformed values are
// errors; everything is optional.
func Load() (*Config, error) {
	cfg := &Config{
		Addr:        getenv("MOODMUSE_ADDR", DefaultAddr),
		LogMode:     getenv("MOODMUSE_LOG_MODE", DefaultLogMode),
		LexiconPath: os.Getenv("MOODMUSE_LEXICON"),
		CatalogPath: os.Getenv("MOODMUSE_CATALOG"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		SessionTTL:  DefaultSessionTTL,
	}

	if v := os.Getenv("MOODMUSE_SESSION_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parsing MOODMUSE_SESSION_TTL: %w", err)
		}
		if ttl <= 0 {
			return nil, fmt.Errorf("MOODMUSE_SESSION_TTL must be positive, got %s", v)
		}
		cfg.SessionTTL = ttl
	}

	switch strings.ToLower(cfg.LogMode) {
	case "dev", "development", "prod", "production":
	default:
		return nil, fmt.Errorf("MOODMUSE_LOG_MODE must be dev or prod, got %q", cfg.LogMode)
	}

	return cfg, nil
}

// Spotify holds client credentials for the catalog importer.
type Spotify struct {
	ClientID     string
	ClientSecret string
}

// LoadSpotify reads SPOTIFY_ID and SPOTIFY_SECRET.
// Returns ErrMissingSpotifyCredentials if either is not set.
func LoadSpotify() (*Spotify, error) {
	id, secret := os.Getenv("SPOTIFY_ID"), os.Getenv("SPOTIFY_SECRET")
	if id == "" || secret == "" {
		return nil, ErrMissingSpotifyCredentials
	}
	return &Spotify{ClientID: id, ClientSecret: secret}, nil
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
