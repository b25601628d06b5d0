package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory. Expired sessions are
// dropped lazily on Get and swept whenever a new session is created.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore creates an in-memory store. A non-positive ttl uses
// DefaultTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create starts a new session at StepMood.
func (m *MemoryStore) Create(_ context.Context) (*Session, error) {
	now := m.now()
	s := newSession(now, m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweep(now)
	m.sessions[s.ID] = s
	return clone(s), nil
}

// Get returns a copy of the session and extends its expiry.
func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if now.After(s.ExpiresAt) {
		delete(m.sessions, id)
		return nil, ErrNotFound
	}
	s.ExpiresAt = now.Add(m.ttl)
	return clone(s), nil
}

// Update replaces a live session.
func (m *MemoryStore) Update(_ context.Context, s *Session) error {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.sessions[s.ID]
	if !ok || now.After(cur.ExpiresAt) {
		delete(m.sessions, s.ID)
		return ErrNotFound
	}
	next := clone(s)
	next.CreatedAt = cur.CreatedAt
	next.ExpiresAt = now.Add(m.ttl)
	m.sessions[s.ID] = next
	s.ExpiresAt = next.ExpiresAt
	return nil
}

// Delete removes a session. Deleting an unknown session is not an error.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return nil
}

// Len reports the number of stored sessions, expired or not.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// sweep must be called with mu held.
func (m *MemoryStore) sweep(now time.Time) {
	for id, s := range m.sessions {
		if now.After(s.ExpiresAt) {
			delete(m.sessions, id)
		}
	}
}

var _ Store = (*MemoryStore)(nil)
