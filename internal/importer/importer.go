// Package importer seeds the catalog from Spotify playlists.
package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/justestif/go-moodmuse/internal/catalog"
	"github.com/justestif/go-moodmuse/internal/hints"
	"github.com/justestif/go-moodmuse/internal/logger"
	"github.com/justestif/go-moodmuse/internal/spotify"
)

// ErrMissingPartition is returned when Import is called without a partition.
var ErrMissingPartition = errors.New("partition is required")

// TrackSource abstracts the Spotify client for testing.
type TrackSource interface {
	PlaylistName(ctx context.Context, playlistID string) (string, error)
	FetchPlaylistTracks(ctx context.Context, playlistID string) ([]spotify.Track, error)
	FetchAudioFeatures(ctx context.Context, tracks []spotify.Track) error
}

// HintSource abstracts the hints service for testing.
type HintSource interface {
	Fetch(ctx context.Context, songs []hints.Song) ([]hints.Result, error)
}

// Service imports playlists into a catalog writer.
type Service struct {
	source     TrackSource
	hints      HintSource
	classifier *catalog.Classifier
	writer     catalog.Writer
	log        *logger.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithHints enables Last.fm hint lookup during import.
func WithHints(h HintSource) Option {
	return func(s *Service) { s.hints = h }
}

// New creates a new import service.
func New(source TrackSource, classifier *catalog.Classifier, writer catalog.Writer, log *logger.Logger, opts ...Option) *Service {
	s := &Service{
		source:     source,
		classifier: classifier,
		writer:     writer,
		log:        log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result summarizes one import.
type Result struct {
	Playlist     string // display name; the ID when the lookup failed
	Partition    string
	Tracks       int
	WithFeatures int
	WithHints    int
	ImportedAt   time.Time
}

// Import fetches a playlist, derives an affect vector for every track and
// upserts the tracks into partition. Audio features and hints are
// optional: when either lookup fails the import continues without them.
func (s *Service) Import(ctx context.Context, playlistID, partition string) (*Result, error) {
	partition = strings.ToLower(strings.TrimSpace(partition))
	if partition == "" {
		return nil, ErrMissingPartition
	}

	tracks, err := s.source.FetchPlaylistTracks(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("fetching playlist: %w", err)
	}
	res := &Result{Playlist: playlistID, Partition: partition, Tracks: len(tracks)}
	if name, err := s.source.PlaylistName(ctx, playlistID); err != nil {
		s.log.Warn("playlist name unavailable", "playlist", playlistID, "error", err)
	} else if name != "" {
		res.Playlist = name
	}
	if len(tracks) == 0 {
		res.ImportedAt = time.Now()
		return res, nil
	}

	songs := make([]hints.Song, len(tracks))
	for i, t := range tracks {
		songs[i] = hints.Song{ID: t.ID, Title: t.Name, Artist: t.Artist}
	}

	// Features write into tracks in place; hints only read songs.
	var hintResults []hints.Result
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.source.FetchAudioFeatures(gctx, tracks); err != nil {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			s.log.Warn("audio features unavailable", "playlist", playlistID, "error", err)
		}
		return nil
	})
	if s.hints != nil {
		g.Go(func() error {
			r, err := s.hints.Fetch(gctx, songs)
			if err != nil {
				return fmt.Errorf("fetching hints: %w", err)
			}
			hintResults = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	hintsByID := make(map[string][]string, len(hintResults))
	for _, r := range hintResults {
		if r.Err != nil {
			s.log.Debug("no hints for song", "song", r.SongID, "error", r.Err)
			continue
		}
		if len(r.Hints) > 0 {
			hintsByID[r.SongID] = r.Hints
		}
	}

	items := make([]catalog.Item, len(tracks))
	for i, t := range tracks {
		items[i] = s.buildItem(t, partition, hintsByID[t.ID])
		if t.Features != nil {
			res.WithFeatures++
		}
		if len(items[i].Hints) > 0 {
			res.WithHints++
		}
	}

	if err := s.writer.UpsertBatch(ctx, items); err != nil {
		return nil, fmt.Errorf("storing songs: %w", err)
	}

	res.ImportedAt = time.Now()
	s.log.Info("playlist imported",
		"playlist", playlistID,
		"name", res.Playlist,
		"partition", partition,
		"tracks", res.Tracks,
		"with_features", res.WithFeatures,
		"with_hints", res.WithHints,
	)
	return res, nil
}

// buildItem blends the archetypes of the track's categories and then
// lets measured audio features override what they cover.
func (s *Service) buildItem(t spotify.Track, partition string, h []string) catalog.Item {
	it := catalog.Item{
		ID:          t.ID,
		Title:       t.Name,
		Attribution: t.Artist,
		Partition:   partition,
		Hints:       h,
	}
	it.Vector = t.ApplyFeatures(catalog.DeriveVector(s.classifier.ClassifyItem(it)))
	return it
}
