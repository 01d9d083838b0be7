package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"aula-quiz-client/internal/domain"
	"aula-quiz-client/internal/gateway"
	"aula-quiz-client/internal/session"
)

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login [username]",
		Short: "Authenticate against the platform",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildDeps(configPath)
			if err != nil {
				return err
			}
			username := ""
			if len(args) == 1 {
				username = args[0]
			}
			creds, err := promptLogin(cmd.Context(), d.client, username)
			if err != nil {
				return err
			}
			fmt.Printf("Logged in as %s (%s)\n", creds.User.Username, creds.User.Role)
			return nil
		},
	}
}

func newRegisterCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Create a new account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildDeps(configPath)
			if err != nil {
				return err
			}
			password, err := readPassword("Password: ")
			if err != nil {
				return err
			}
			confirm, err := readPassword("Confirm password: ")
			if err != nil {
				return err
			}
			if password != confirm {
				return errors.New("passwords do not match")
			}
			if err := d.client.Register(cmd.Context(), email, args[0], password); err != nil {
				return err
			}
			fmt.Println("Account created; log in with `aula login`.")
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildDeps(configPath)
			if err != nil {
				return err
			}
			if err := d.client.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildDeps(configPath)
			if err != nil {
				return err
			}
			creds, err := d.sessions.Get(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%s (%s), user id %d\n", creds.User.Username, creds.User.Role, creds.User.ID)
			if session.TokenExpired(creds.Token, time.Now()) {
				fmt.Println("warning: stored token is expired; log in again")
			}
			return nil
		},
	}
}

// ensureLogin returns the current user id, prompting for credentials when
// the store is empty or the token has expired.
func ensureLogin(ctx context.Context, d *deps) (int, error) {
	creds, err := d.sessions.Get(ctx)
	if err == nil && !session.TokenExpired(creds.Token, time.Now()) {
		return session.CurrentUserID(ctx, d.sessions)
	}
	if err != nil && !errors.Is(err, domain.ErrNotAuthenticated) {
		return 0, err
	}
	if _, err := promptLogin(ctx, d.client, ""); err != nil {
		return 0, err
	}
	return session.CurrentUserID(ctx, d.sessions)
}

func promptLogin(ctx context.Context, client *gateway.Client, username string) (domain.Credentials, error) {
	if username == "" {
		fmt.Print("Username: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return domain.Credentials{}, err
		}
		username = strings.TrimSpace(line)
	}
	password, err := readPassword("Password: ")
	if err != nil {
		return domain.Credentials{}, err
	}
	return client.Login(ctx, username, password)
}

func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}
