package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"aula-quiz-client/internal/domain"
)

// CountdownStore persists remaining seconds in Redis, one key per
// (user, section). The TTL is a safety net for sessions that are never
// resumed; a live engine rewrites the key every second anyway.
type CountdownStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCountdownStore(client *redis.Client, ttl time.Duration) *CountdownStore {
	return &CountdownStore{client: client, ttl: ttl}
}

func (s *CountdownStore) Remaining(ctx context.Context, userID, sectionID int) (int, error) {
	raw, err := s.client.Get(ctx, countdownKey(userID, sectionID)).Result()
	if err == redis.Nil {
		return 0, domain.ErrNoCountdown
	}
	if err != nil {
		return 0, fmt.Errorf("get countdown: %w", err)
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("decode countdown: %w", err)
	}
	return seconds, nil
}

func (s *CountdownStore) Save(ctx context.Context, userID, sectionID, seconds int) error {
	if err := s.client.Set(ctx, countdownKey(userID, sectionID), seconds, s.ttl).Err(); err != nil {
		return fmt.Errorf("save countdown: %w", err)
	}
	return nil
}

func (s *CountdownStore) Clear(ctx context.Context, userID, sectionID int) error {
	if err := s.client.Del(ctx, countdownKey(userID, sectionID)).Err(); err != nil {
		return fmt.Errorf("clear countdown: %w", err)
	}
	return nil
}

func countdownKey(userID, sectionID int) string {
	return fmt.Sprintf("aula:countdown:%d:%d", userID, sectionID)
}
