package spotify

import (
	"context"
	"fmt"

	"github.com/zmb3/spotify/v2"
)

// PlaylistName returns the display name of a playlist.
func (c *Client) PlaylistName(ctx context.Context, playlistID string) (string, error) {
	p, err := c.api.GetPlaylist(ctx, spotify.ID(playlistID), spotify.Fields("id,name"))
	if err != nil {
		return "", fmt.Errorf("getting playlist %s: %w", playlistID, err)
	}
	return p.Name, nil
}
