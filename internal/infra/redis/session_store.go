package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"aula-quiz-client/internal/domain"
)

// SessionStore keeps credentials in Redis so shared kiosk and lab
// deployments survive a process restart, the way the browser client kept
// them in localStorage.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) Get(ctx context.Context) (domain.Credentials, error) {
	raw, err := s.client.Get(ctx, credentialsKey).Bytes()
	if err == redis.Nil {
		return domain.Credentials{}, domain.ErrNotAuthenticated
	}
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("get credentials: %w", err)
	}
	var creds domain.Credentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return domain.Credentials{}, fmt.Errorf("decode credentials: %w", err)
	}
	return creds, nil
}

func (s *SessionStore) Set(ctx context.Context, creds domain.Credentials) error {
	raw, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	// No TTL: the token carries its own expiry, which the session package inspects.
	if err := s.client.Set(ctx, credentialsKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("set credentials: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, credentialsKey).Err(); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

const credentialsKey = "aula:credentials"
