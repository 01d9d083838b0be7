package gateway

import (
	"context"

	"aula-quiz-client/internal/domain"
)

// Login authenticates and persists the returned token and profile in the
// session store. Every later request picks the token up automatically.
func (c *Client) Login(ctx context.Context, username, password string) (domain.Credentials, error) {
	body := map[string]string{"username": username, "password": password}
	var creds domain.Credentials
	if err := c.post(ctx, "/auth/login", body, &creds); err != nil {
		return domain.Credentials{}, err
	}
	if err := c.session.Set(ctx, creds); err != nil {
		return domain.Credentials{}, err
	}
	return creds, nil
}

// Register creates a new account. The user still logs in afterwards.
func (c *Client) Register(ctx context.Context, email, username, password string) error {
	body := map[string]string{"email": email, "username": username, "password": password}
	return c.post(ctx, "/auth/register", body, nil)
}

// Logout drops the stored credentials. Token issuance and revocation are the
// server's business; locally there is nothing else to clean up.
func (c *Client) Logout(ctx context.Context) error {
	return c.session.Clear(ctx)
}
