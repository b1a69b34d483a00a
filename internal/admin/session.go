package admin

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore tracks which browser sessions passed the credential check.
type SessionStore interface {
	Create(ctx context.Context, token string, ttl time.Duration) error
	Exists(ctx context.Context, token string) (bool, error)
	Destroy(ctx context.Context, token string) error
}

const sessionKeyPrefix = "grillshine:admin_session:"

// RedisSessionStore keeps session flags in Redis so they survive restarts and
// are shared across instances.
type RedisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore creates a Redis-backed session store.
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	if client == nil {
		panic("admin: redis client required")
	}
	return &RedisSessionStore{client: client}
}

func (s *RedisSessionStore) Create(ctx context.Context, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, sessionKeyPrefix+token, "1", ttl).Err(); err != nil {
		return fmt.Errorf("admin: create session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Exists(ctx context.Context, token string) (bool, error) {
	err := s.client.Get(ctx, sessionKeyPrefix+token).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("admin: check session: %w", err)
	}
	return true, nil
}

func (s *RedisSessionStore) Destroy(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("admin: destroy session: %w", err)
	}
	return nil
}

// MemorySessionStore keeps session flags in process memory. Suitable for a
// single instance without Redis.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]time.Time
	now      func() time.Time
}

// NewMemorySessionStore creates an in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]time.Time),
		now:      time.Now,
	}
}

func (s *MemorySessionStore) Create(ctx context.Context, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = s.now().Add(ttl)
	return nil
}

func (s *MemorySessionStore) Exists(ctx context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	expiry, ok := s.sessions[token]
	if !ok {
		return false, nil
	}
	if s.now().After(expiry) {
		delete(s.sessions, token)
		return false, nil
	}
	return true, nil
}

func (s *MemorySessionStore) Destroy(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

var _ SessionStore = (*RedisSessionStore)(nil)
var _ SessionStore = (*MemorySessionStore)(nil)
