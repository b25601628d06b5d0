// Package session keeps the short-lived state of one listener's visit:
// the analyzed mood, the chosen language and the songs already served.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/justestif/go-moodmuse/internal/mood"
)

// DefaultTTL is how long an idle session lives.
const DefaultTTL = time.Hour

// ErrNotFound is returned when a session does not exist or has expired.
var ErrNotFound = errors.New("session not found or expired")

// Step is where the listener is in the flow.
type Step string

const (
	StepMood       Step = "mood"
	StepLanguage   Step = "language"
	StepProcessing Step = "processing"
	StepResults    Step = "results"
)

// Session is the state of one visit.
type Session struct {
	ID        string       `json:"id"`
	CreatedAt time.Time    `json:"createdAt"`
	ExpiresAt time.Time    `json:"expiresAt"`
	Mood      *mood.Result `json:"mood,omitempty"`
	Partition string       `json:"language,omitempty"`
	SongIDs   []string     `json:"songIds,omitempty"`
	Step      Step         `json:"step"`
}

// Store persists sessions. Get refreshes the expiry of the session it
// returns.
type Store interface {
	Create(ctx context.Context) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	Update(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

func newSession(now time.Time, ttl time.Duration) *Session {
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
		Step:      StepMood,
	}
}

// clone copies s so callers never share slices or the mood with a store.
func clone(s *Session) *Session {
	c := *s
	if s.Mood != nil {
		m := *s.Mood
		m.Signals = append([]mood.Signal(nil), s.Mood.Signals...)
		c.Mood = &m
	}
	c.SongIDs = append([]string(nil), s.SongIDs...)
	return &c
}

// SetMood records an analysis and moves on to language selection.
func (s *Session) SetMood(r mood.Result) {
	s.Mood = &r
	s.Step = StepLanguage
}

// SetPartition records the language choice.
func (s *Session) SetPartition(p string) {
	s.Partition = p
	s.Step = StepProcessing
}

// AddSongs appends served song IDs, skipping ones already recorded, and
// marks the session as having results.
func (s *Session) AddSongs(ids ...string) {
	seen := make(map[string]bool, len(s.SongIDs))
	for _, id := range s.SongIDs {
		seen[id] = true
	}
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			s.SongIDs = append(s.SongIDs, id)
		}
	}
	s.Step = StepResults
}
