package lastfm

import (
	"errors"
	"os"
	"strings"
)

// ErrMissingAPIKey is returned when LASTFM_API_KEY is not set.
var ErrMissingAPIKey = errors.New("missing LASTFM_API_KEY environment variable")

// Config holds the Last.fm credentials used by the tag client. Tag lookups
// are optional during import, so a missing key disables hints instead of
// failing the import.
type Config struct {
	APIKey string
}

// LoadConfig reads LASTFM_API_KEY, ignoring surrounding whitespace.
func LoadConfig() (*Config, error) {
	apiKey := strings.TrimSpace(os.Getenv("LASTFM_API_KEY"))
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	return &Config{APIKey: apiKey}, nil
}
