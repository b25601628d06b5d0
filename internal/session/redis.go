package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "moodmuse:session:"

// RedisStore keeps sessions as JSON values in Redis with a key TTL.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
	now func() time.Time
}

// NewRedisStore wraps an existing client. A non-positive ttl uses
// DefaultTTL.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{rdb: rdb, ttl: ttl, now: time.Now}
}

// Dial connects to addr and pings it.
func Dial(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return rdb, nil
}

// Create starts a new session at StepMood.
func (r *RedisStore) Create(ctx context.Context) (*Session, error) {
	s := newSession(r.now(), r.ttl)
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding session: %w", err)
	}
	if err := r.rdb.Set(ctx, keyPrefix+s.ID, raw, r.ttl).Err(); err != nil {
		return nil, fmt.Errorf("storing session: %w", err)
	}
	return s, nil
}

// Get loads a session and pushes its key expiry out by the TTL.
func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	key := keyPrefix + id
	raw, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}

	ok, err := r.rdb.Expire(ctx, key, r.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("refreshing session: %w", err)
	}
	if !ok {
		// expired between GET and EXPIRE
		return nil, ErrNotFound
	}
	s.ExpiresAt = r.now().Add(r.ttl)
	return &s, nil
}

// Update overwrites a live session. It never recreates an expired one.
func (r *RedisStore) Update(ctx context.Context, s *Session) error {
	s.ExpiresAt = r.now().Add(r.ttl)
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	ok, err := r.rdb.SetXX(ctx, keyPrefix+s.ID, raw, r.ttl).Result()
	if err != nil {
		return fmt.Errorf("storing session: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// Delete removes a session.
func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.rdb.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
