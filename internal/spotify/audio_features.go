package spotify

import (
	"context"
	"fmt"

	"github.com/zmb3/spotify/v2"

	"github.com/justestif/go-moodmuse/internal/affect"
)

const maxTracksPerRequest = 100

// FetchAudioFeatures fills in Features for the given tracks in place.
// Batches requests to max 100 tracks per request per Spotify API limits.
// Tracks without available audio features keep nil Features.
func (c *Client) FetchAudioFeatures(ctx context.Context, tracks []Track) error {
	if len(tracks) == 0 {
		return nil
	}

	ids := make([]spotify.ID, len(tracks))
	indexByID := make(map[string]int, len(tracks))
	for i, t := range tracks {
		ids[i] = spotify.ID(t.ID)
		indexByID[t.ID] = i
	}

	total := len(ids)
	for i := 0; i < total; i += maxTracksPerRequest {
		end := min(i+maxTracksPerRequest, total)

		features, err := c.api.GetAudioFeatures(ctx, ids[i:end]...)
		if err != nil {
			return fmt.Errorf("fetching audio features (batch %d-%d): %w", i+1, end, err)
		}

		for _, f := range features {
			if f == nil {
				continue
			}
			if idx, ok := indexByID[f.ID.String()]; ok {
				tracks[idx].Features = convertFeatures(f)
			}
		}
		c.log.Debug("fetched audio features", "from", i+1, "to", end, "total", total)
	}

	return nil
}

func convertFeatures(f *spotify.AudioFeatures) *Features {
	return &Features{
		Energy:       float64(f.Energy),
		Valence:      float64(f.Valence),
		Danceability: float64(f.Danceability),
	}
}

// ApplyFeatures overrides energy, valence and social on base with values
// measured by Spotify. Valence and danceability are rescaled from [0, 1]
// to the signed [-1, 1] range. Without features base is returned as is.
func (t Track) ApplyFeatures(base affect.Vector) affect.Vector {
	if t.Features == nil {
		return base
	}
	v := base
	v.Energy = t.Features.Energy
	v.Valence = t.Features.Valence*2 - 1
	v.Social = t.Features.Danceability*2 - 1
	return v.Clamp()
}
