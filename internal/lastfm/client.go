// Package lastfm fetches community tags for songs and artists from the
// Last.fm API. Tags become category hints for catalog items.
package lastfm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/justestif/go-moodmuse/internal/textnorm"
)

const (
	defaultBaseURL = "https://ws.audioscrobbler.com/2.0/"
	userAgent      = "moodmuse/1.0"
)

// Last.fm API error codes.
const (
	errCodeInvalidAPIKey = 10
	errCodeRateLimited   = 29
)

var (
	// ErrRateLimited is returned when the API rate limit is exceeded after retries.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidAPIKey is returned when the API key is invalid.
	ErrInvalidAPIKey = errors.New("invalid API key")
)

// Client is a Last.fm API client with an in-memory cache and retry on
// rate limiting.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	delays     []time.Duration

	// keyed by normalized "track|artist|title" or "artist|artist"
	mu    sync.RWMutex
	cache map[string][]Tag
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another endpoint, such as a test server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetryDelays sets the waits between attempts after a rate limit
// response. The number of delays is the number of retries.
func WithRetryDelays(d ...time.Duration) Option {
	return func(c *Client) { c.delays = d }
}

// NewClient creates a new Last.fm API client.
func NewClient(cfg *Config, opts ...Option) *Client {
	c := &Client{
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultBaseURL,
		delays:     []time.Duration{time.Second, 2 * time.Second, 4 * time.Second},
		cache:      make(map[string][]Tag),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetTags fetches tags for a song, falling back to the artist's tags when
// the song has none. It returns an empty slice, never nil, with SourceNone
// when neither has tags.
func (c *Client) GetTags(ctx context.Context, artist, title string) ([]Tag, Source, error) {
	tags, err := c.topTags(ctx, "track|"+textnorm.Normalize(artist)+"|"+textnorm.Normalize(title), url.Values{
		"method": {"track.getTopTags"},
		"artist": {artist},
		"track":  {title},
	})
	if err != nil {
		return nil, SourceNone, fmt.Errorf("fetching track tags: %w", err)
	}
	if len(tags) > 0 {
		return tags, SourceTrack, nil
	}

	tags, err = c.topTags(ctx, "artist|"+textnorm.Normalize(artist), url.Values{
		"method": {"artist.getTopTags"},
		"artist": {artist},
	})
	if err != nil {
		return nil, SourceNone, fmt.Errorf("fetching artist tags: %w", err)
	}
	if len(tags) > 0 {
		return tags, SourceArtist, nil
	}
	return tags, SourceNone, nil
}

// topTags runs one getTopTags call through the cache.
func (c *Client) topTags(ctx context.Context, key string, params url.Values) ([]Tag, error) {
	c.mu.RLock()
	hit, ok := c.cache[key]
	c.mu.RUnlock()
	if ok {
		return hit, nil
	}

	params.Set("autocorrect", "1")
	params.Set("format", "json")
	params.Set("api_key", c.apiKey)

	body, err := c.doRequest(ctx, params)
	if err != nil {
		return nil, err
	}

	var resp topTagsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	tags := resp.TopTags.Tag
	if tags == nil {
		tags = []Tag{}
	}

	c.mu.Lock()
	c.cache[key] = tags
	c.mu.Unlock()
	return tags, nil
}

// doRequest performs a GET, retrying after each configured delay while
// the API reports rate limiting.
func (c *Client) doRequest(ctx context.Context, params url.Values) ([]byte, error) {
	reqURL := c.baseURL + "?" + params.Encode()

	for attempt := 0; ; attempt++ {
		body, err := c.doSingleRequest(ctx, reqURL)
		if err == nil {
			return body, nil
		}
		if !errors.Is(err, ErrRateLimited) || attempt >= len(c.delays) {
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.delays[attempt]):
		}
	}
}

func (c *Client) doSingleRequest(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != 0 {
		switch apiErr.Error {
		case errCodeRateLimited:
			return nil, ErrRateLimited
		case errCodeInvalidAPIKey:
			return nil, ErrInvalidAPIKey
		default:
			return nil, fmt.Errorf("API error %d: %s", apiErr.Error, apiErr.Message)
		}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return body, nil
}
