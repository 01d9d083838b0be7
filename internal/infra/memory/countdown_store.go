package memory

import (
	"context"
	"sync"

	"aula-quiz-client/internal/domain"
)

// countdownKey is the structured key for persisted remaining seconds; one
// entry per (user, section) so multiple sections' timers never interfere.
type countdownKey struct {
	userID    int
	sectionID int
}

// CountdownStore is an in-process implementation of quiz.CountdownStore.
type CountdownStore struct {
	mu     sync.RWMutex
	values map[countdownKey]int
}

func NewCountdownStore() *CountdownStore {
	return &CountdownStore{values: make(map[countdownKey]int)}
}

func (s *CountdownStore) Remaining(_ context.Context, userID, sectionID int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.values[countdownKey{userID, sectionID}]; ok {
		return v, nil
	}
	return 0, domain.ErrNoCountdown
}

func (s *CountdownStore) Save(_ context.Context, userID, sectionID, seconds int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[countdownKey{userID, sectionID}] = seconds
	return nil
}

func (s *CountdownStore) Clear(_ context.Context, userID, sectionID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, countdownKey{userID, sectionID})
	return nil
}
