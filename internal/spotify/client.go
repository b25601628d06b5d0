// Package spotify reads public playlists and audio features from the
// Spotify Web API to seed the catalog.
package spotify

import (
	"context"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/justestif/go-moodmuse/internal/config"
	"github.com/justestif/go-moodmuse/internal/logger"
)

// Client wraps the Spotify API client with convenience methods.
type Client struct {
	api *spotify.Client
	log *logger.Logger
}

// New creates a new Spotify client wrapper.
// The underlying client should already be authenticated.
func New(api *spotify.Client, log *logger.Logger) *Client {
	return &Client{api: api, log: log}
}

// NewClientCredentials authenticates as the application rather than a
// user. That is enough for public playlists and audio features.
func NewClientCredentials(ctx context.Context, cfg *config.Spotify, log *logger.Logger) *Client {
	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}
	return New(spotify.New(cc.Client(ctx)), log)
}
