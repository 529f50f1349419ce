package idcheck

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore tracks outstanding vendor session handles per user so status
// checks can distinguish "pending" from "not started". Handles are
// short-lived bookkeeping, not authoritative profile state.
type SessionStore interface {
	Put(ctx context.Context, userID, handle string) error
	Get(ctx context.Context, userID string) (string, error)
	Delete(ctx context.Context, userID string) error
}

const (
	sessionKeyPrefix  = "idcheck:session:"
	defaultSessionTTL = 24 * time.Hour
)

// RedisSessionStore persists pending handles in Redis with a TTL, so an
// abandoned vendor flow decays back to "not started" on its own.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore builds a Redis-backed session store.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (s *RedisSessionStore) Put(ctx context.Context, userID, handle string) error {
	return s.client.Set(ctx, sessionKeyPrefix+userID, handle, s.ttl).Err()
}

func (s *RedisSessionStore) Get(ctx context.Context, userID string) (string, error) {
	handle, err := s.client.Get(ctx, sessionKeyPrefix+userID).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return handle, err
}

func (s *RedisSessionStore) Delete(ctx context.Context, userID string) error {
	return s.client.Del(ctx, sessionKeyPrefix+userID).Err()
}

type memorySessionStore struct {
	mu      sync.RWMutex
	handles map[string]string
}

// NewMemorySessionStore builds an in-memory session store used in
// development mode and in tests.
func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{handles: make(map[string]string)}
}

func (s *memorySessionStore) Put(_ context.Context, userID, handle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handles[userID] = handle
	return nil
}

func (s *memorySessionStore) Get(_ context.Context, userID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.handles[userID], nil
}

func (s *memorySessionStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.handles, userID)
	return nil
}
