package spotify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/zmb3/spotify/v2"
)

// FetchPlaylistTracks retrieves every track of a playlist, following pages.
// Episodes, local files and removed tracks are skipped.
func (c *Client) FetchPlaylistTracks(ctx context.Context, playlistID string) ([]Track, error) {
	var tracks []Track

	page, err := c.api.GetPlaylistItems(ctx, spotify.ID(playlistID), spotify.Limit(100))
	if err != nil {
		return nil, fmt.Errorf("fetching playlist %s: %w", playlistID, err)
	}

	for {
		for _, item := range page.Items {
			if item.IsLocal || item.Track.Track == nil {
				continue
			}
			tracks = append(tracks, convertTrack(item.Track.Track))
		}

		c.log.Debug("fetched playlist page", "playlist", playlistID, "tracks", len(tracks), "total", page.Total)

		err = c.api.NextPage(ctx, page)
		if errors.Is(err, spotify.ErrNoMorePages) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("fetching next page: %w", err)
		}
	}

	c.log.Info("fetched playlist", "playlist", playlistID, "tracks", len(tracks))
	return tracks, nil
}

// convertTrack converts a Spotify FullTrack to a Track.
func convertTrack(t *spotify.FullTrack) Track {
	artists := make([]string, len(t.Artists))
	for i, a := range t.Artists {
		artists[i] = a.Name
	}

	return Track{
		ID:     t.ID.String(),
		Name:   t.Name,
		Artist: strings.Join(artists, ", "),
	}
}
