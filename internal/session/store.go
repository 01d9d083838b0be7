package session

import (
	"context"

	"aula-quiz-client/internal/domain"
)

// Store persists the auth token and user profile across runs.
// It is injected into every collaborator that needs identity; nothing in
// this codebase reads credentials ambiently.
type Store interface {
	Get(ctx context.Context) (domain.Credentials, error)
	Set(ctx context.Context, creds domain.Credentials) error
	Clear(ctx context.Context) error
}

// CurrentUserID resolves the id used for submissions. The stored profile
// wins; when it is absent the token's subject claim is the fallback.
func CurrentUserID(ctx context.Context, store Store) (int, error) {
	creds, err := store.Get(ctx)
	if err != nil {
		return 0, err
	}
	if creds.User.ID != 0 {
		return creds.User.ID, nil
	}
	if id, ok := subjectID(creds.Token); ok {
		return id, nil
	}
	return 0, domain.ErrMissingIdentity
}
