package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/foodexpress/delivery-api/internal/core/ports"
)

const defaultSessionTTL = 30 * 24 * time.Hour

// SessionRegistry keeps one session pointer per device.
// Key format: session:<device_id>
type SessionRegistry struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionRegistry wraps client. A non-positive ttl falls back to 30 days.
func NewSessionRegistry(client *redis.Client, ttl time.Duration) *SessionRegistry {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionRegistry{client: client, ttl: ttl}
}

func (r *SessionRegistry) ForDevice(deviceID string) ports.SessionStore {
	return &sessionStore{client: r.client, key: sessionKey(deviceID), ttl: r.ttl}
}

func (r *SessionRegistry) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func sessionKey(deviceID string) string {
	return fmt.Sprintf("session:%s", deviceID)
}

type sessionStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func (s *sessionStore) Save(ctx context.Context, identifier string) error {
	if err := s.client.Set(ctx, s.key, identifier, s.ttl).Err(); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

func (s *sessionStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("session clear: %w", err)
	}
	return nil
}

func (s *sessionStore) Read(ctx context.Context) (string, bool, error) {
	v, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("session read: %w", err)
	}
	return v, true, nil
}
