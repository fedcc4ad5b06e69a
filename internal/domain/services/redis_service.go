package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Urbanbaseprops/property-manager/internal/infrastructure/config"
)

const revokedTokenPrefix = "revoked_token:"

// InterfaceSessionStore remembers revoked session tokens until they would have expired
type InterfaceSessionStore interface {
	RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
}

// InterfaceRedisService defines the Redis service interface
type InterfaceRedisService interface {
	InterfaceSessionStore
	Ping(ctx context.Context) error
}

// RedisService handles Redis operations
type RedisService struct {
	Client *redis.Client
}

// NewRedisService creates a new Redis service
func NewRedisService(cfg *config.Config) InterfaceRedisService {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	return &RedisService{
		Client: client,
	}
}

// 1 Ping checks the connection
func (s *RedisService) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx).Err()
}

// 2 RevokeToken marks a token id as signed out for ttl
func (s *RedisService) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.Client.Set(ctx, revokedTokenPrefix+tokenID, 1, ttl).Err()
}

// 3 IsTokenRevoked reports whether a token id was signed out
func (s *RedisService) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := s.Client.Get(ctx, revokedTokenPrefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// MemorySessionStore keeps revoked token ids in process. Used when Redis is disabled
// or unreachable; revocations are lost on restart.
type MemorySessionStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewMemorySessionStore creates an empty in-process store
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

// RevokeToken marks a token id as signed out for ttl
func (m *MemorySessionStore) RevokeToken(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for id, until := range m.revoked {
		if !until.After(now) {
			delete(m.revoked, id)
		}
	}
	m.revoked[tokenID] = now.Add(ttl)
	return nil
}

// IsTokenRevoked reports whether a token id was signed out and has not yet expired
func (m *MemorySessionStore) IsTokenRevoked(_ context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	until, ok := m.revoked[tokenID]
	return ok && until.After(m.now()), nil
}
