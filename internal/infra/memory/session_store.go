package memory

import (
	"context"
	"sync"

	"aula-quiz-client/internal/domain"
)

// SessionStore is an in-process implementation of session.Store. Credentials
// live only as long as the process; one-shot CLI runs re-login.
type SessionStore struct {
	mu    sync.RWMutex
	creds domain.Credentials
	set   bool
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

func (s *SessionStore) Get(_ context.Context) (domain.Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.set {
		return domain.Credentials{}, domain.ErrNotAuthenticated
	}
	return s.creds, nil
}

func (s *SessionStore) Set(_ context.Context, creds domain.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = creds
	s.set = true
	return nil
}

func (s *SessionStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = domain.Credentials{}
	s.set = false
	return nil
}
