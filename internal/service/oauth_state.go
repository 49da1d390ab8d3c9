package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/slopengine/slopengine/pkg/database"
)

// OAuthStateService stores one-shot OAuth state values in Redis. A state is
// minted at redirect time and consumed exactly once at callback time; the
// TTL bounds how long a pending login attempt stays valid.
type OAuthStateService struct {
	redis *database.Redis
	ttl   time.Duration
}

// NewOAuthStateService creates a new OAuth state service
func NewOAuthStateService(redis *database.Redis, ttl time.Duration) *OAuthStateService {
	return &OAuthStateService{redis: redis, ttl: ttl}
}

// Issue mints a random state value and stores it with the configured TTL
func (s *OAuthStateService) Issue(ctx context.Context) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	state := base64.RawURLEncoding.EncodeToString(b)

	key := fmt.Sprintf("oauth:state:%s", state)
	if err := s.redis.Client.Set(ctx, key, "1", s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store state: %w", err)
	}

	return state, nil
}

// Consume validates a state value and deletes it so it cannot be replayed
func (s *OAuthStateService) Consume(ctx context.Context, state string) error {
	if state == "" {
		return fmt.Errorf("empty state")
	}

	key := fmt.Sprintf("oauth:state:%s", state)
	deleted, err := s.redis.Client.Del(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to check state: %w", err)
	}
	if deleted == 0 {
		return fmt.Errorf("unknown or expired state")
	}

	return nil
}
