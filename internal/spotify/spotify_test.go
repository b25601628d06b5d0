package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/zmb3/spotify/v2"

	"github.com/justestif/go-moodmuse/internal/affect"
	"github.com/justestif/go-moodmuse/internal/logger"
)

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	api := spotify.New(srv.Client(), spotify.WithBaseURL(srv.URL+"/"))
	return New(api, logger.Nop())
}

func trackJSON(id, name string, artists ...string) map[string]any {
	as := make([]map[string]any, len(artists))
	for i, a := range artists {
		as[i] = map[string]any{"name": a}
	}
	return map[string]any{"id": id, "name": name, "artists": as, "type": "track"}
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encoding response: %v", err)
	}
}

func TestConvertTrack(t *testing.T) {
	tests := []struct {
		name           string
		track          spotify.FullTrack
		expectedArtist string
	}{
		{
			name: "single artist",
			track: spotify.FullTrack{SimpleTrack: spotify.SimpleTrack{
				ID: "track123", Name: "Test Song",
				Artists: []spotify.SimpleArtist{{Name: "Artist One"}},
			}},
			expectedArtist: "Artist One",
		},
		{
			name: "multiple artists",
			track: spotify.FullTrack{SimpleTrack: spotify.SimpleTrack{
				ID: "track456", Name: "Collab Track",
				Artists: []spotify.SimpleArtist{{Name: "Artist A"}, {Name: "Artist B"}},
			}},
			expectedArtist: "Artist A, Artist B",
		},
		{
			name: "no artists",
			track: spotify.FullTrack{SimpleTrack: spotify.SimpleTrack{
				ID: "track000", Name: "Unknown Track",
			}},
			expectedArtist: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := convertTrack(&tt.track)
			if got.ID != tt.track.ID.String() || got.Name != tt.track.Name {
				t.Errorf("convertTrack() = %+v", got)
			}
			if got.Artist != tt.expectedArtist {
				t.Errorf("Artist = %q, want %q", got.Artist, tt.expectedArtist)
			}
			if got.Features != nil {
				t.Error("Features should be nil before fetching")
			}
		})
	}
}

func TestFetchPlaylistTracks_Pages(t *testing.T) {
	var srvURL string
	mux := http.NewServeMux()
	mux.HandleFunc("/playlists/pl1/tracks", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("offset") == "2" {
			writeJSON(t, w, map[string]any{
				"items":  []any{map[string]any{"track": trackJSON("t3", "Three", "C")}},
				"offset": 2, "limit": 2, "total": 3,
			})
			return
		}
		writeJSON(t, w, map[string]any{
			"items": []any{
				map[string]any{"track": trackJSON("t1", "One", "A")},
				map[string]any{"is_local": true, "track": trackJSON("", "Local File", "Me")},
			},
			"offset": 0, "limit": 2, "total": 3,
			"next": srvURL + "/playlists/pl1/tracks?offset=2&limit=2",
		})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()
	srvURL = srv.URL
	c := New(spotify.New(srv.Client(), spotify.WithBaseURL(srv.URL+"/")), logger.Nop())

	tracks, err := c.FetchPlaylistTracks(context.Background(), "pl1")
	if err != nil {
		t.Fatalf("FetchPlaylistTracks() error = %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("got %d tracks, want 2 (local file skipped): %+v", len(tracks), tracks)
	}
	if tracks[0].ID != "t1" || tracks[1].ID != "t3" {
		t.Errorf("tracks = %+v", tracks)
	}
}

func TestFetchPlaylistTracks_Error(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":{"status":404,"message":"Not found."}}`)
	}))

	if _, err := c.FetchPlaylistTracks(context.Background(), "missing"); err == nil {
		t.Fatal("FetchPlaylistTracks() expected error")
	}
}

func TestFetchAudioFeatures_Batches(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/audio-features" {
			http.NotFound(w, r)
			return
		}
		calls.Add(1)
		ids := strings.Split(r.URL.Query().Get("ids"), ",")
		if len(ids) > maxTracksPerRequest {
			t.Errorf("batch of %d ids, max %d", len(ids), maxTracksPerRequest)
		}
		features := make([]any, len(ids))
		for i, id := range ids {
			if id == "t-0" {
				continue // no features
			}
			features[i] = map[string]any{"id": id, "energy": 0.8, "valence": 0.25, "danceability": 0.5}
		}
		writeJSON(t, w, map[string]any{"audio_features": features})
	}))

	tracks := make([]Track, 150)
	for i := range tracks {
		tracks[i] = Track{ID: fmt.Sprintf("t-%d", i)}
	}
	if err := c.FetchAudioFeatures(context.Background(), tracks); err != nil {
		t.Fatalf("FetchAudioFeatures() error = %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("API calls = %d, want 2", calls.Load())
	}
	if tracks[0].Features != nil {
		t.Error("t-0 should have no features")
	}
	if f := tracks[149].Features; f == nil || math.Abs(f.Energy-0.8) > 1e-6 {
		t.Errorf("t-149 features = %+v", f)
	}
}

func TestFetchAudioFeatures_Empty(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for empty input")
	}))
	if err := c.FetchAudioFeatures(context.Background(), nil); err != nil {
		t.Errorf("FetchAudioFeatures(nil) error = %v", err)
	}
}

func TestPlaylistName(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"id": "pl1", "name": "Late Night Hindi"})
	}))

	name, err := c.PlaylistName(context.Background(), "pl1")
	if err != nil {
		t.Fatalf("PlaylistName() error = %v", err)
	}
	if name != "Late Night Hindi" {
		t.Errorf("PlaylistName() = %q", name)
	}
}

func TestApplyFeatures(t *testing.T) {
	base := affect.Neutral()

	if got := (Track{}).ApplyFeatures(base); got != base {
		t.Errorf("without features got %+v, want base", got)
	}

	tr := Track{Features: &Features{Energy: 0.9, Valence: 1, Danceability: 0}}
	got := tr.ApplyFeatures(base)
	if got.Energy != 0.9 || got.Valence != 1 || got.Social != -1 {
		t.Errorf("ApplyFeatures() = %+v", got)
	}
	if got.Hope != base.Hope || got.Nostalgia != base.Nostalgia {
		t.Error("dimensions without features must keep base values")
	}
}
