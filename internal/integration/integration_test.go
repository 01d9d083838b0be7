package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"aula-quiz-client/internal/domain"
	"aula-quiz-client/internal/gateway"
	infraredis "aula-quiz-client/internal/infra/redis"
	"aula-quiz-client/internal/quiz"
)

// apiBackend fakes the remote learning platform: login plus answer intake.
type apiBackend struct {
	mu          sync.Mutex
	submissions [][]domain.Answer
}

func (b *apiBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(domain.Credentials{
			Token: "integration-token",
			User:  domain.User{ID: 7, Username: "alice"},
		})
	})
	mux.HandleFunc("/user_answer/SaveUserAnswer", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer integration-token" {
			http.Error(w, `{"message":"unauthorized"}`, http.StatusUnauthorized)
			return
		}
		var payload struct {
			Answers []domain.Answer `json:"answers"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, `{"message":"bad payload"}`, http.StatusBadRequest)
			return
		}
		b.mu.Lock()
		b.submissions = append(b.submissions, payload.Answers)
		b.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
	})
	return mux
}

func (b *apiBackend) submissionCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.submissions)
}

func TestQuizSessionEndToEnd(t *testing.T) {
	ctx := context.Background()

	redisClient, cleanup := startRedis(t, ctx)
	defer cleanup()

	backend := &apiBackend{}
	server := httptest.NewServer(backend.handler())
	defer server.Close()

	sessions := infraredis.NewSessionStore(redisClient)
	countdowns := infraredis.NewCountdownStore(redisClient, time.Hour)
	client := gateway.New(server.URL, 5*time.Second, sessions)

	if _, err := client.Login(ctx, "alice", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	creds, err := sessions.Get(ctx)
	if err != nil {
		t.Fatalf("credentials not persisted: %v", err)
	}
	if creds.User.ID != 7 {
		t.Fatalf("expected user 7, got %d", creds.User.ID)
	}

	section := domain.Section{ID: 3, CourseID: 1, Name: "Timed section", TotalTime: 1}

	// Pre-seed a nearly expired countdown so the session resumes it and
	// runs out within a few ticks.
	if err := countdowns.Save(ctx, creds.User.ID, section.ID, 3); err != nil {
		t.Fatalf("seed countdown: %v", err)
	}

	collector := quiz.NewCollector()
	engine := quiz.NewEngine(section, creds.User.ID, countdowns, client, collector,
		quiz.WithTickInterval(10*time.Millisecond))
	if err := engine.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer engine.Stop()

	if got := engine.Remaining(); got != 3 {
		t.Fatalf("expected resumed countdown of 3, got %d", got)
	}

	engine.Select(10, 21)
	engine.Select(11, 24)

	deadline := time.After(2 * time.Second)
	for engine.State() != quiz.StateTerminated {
		select {
		case <-deadline:
			t.Fatalf("session never terminated, state=%v", engine.State())
		case <-time.After(10 * time.Millisecond):
		}
	}

	if got := backend.submissionCount(); got != 1 {
		t.Fatalf("expected exactly one submission, got %d", got)
	}
	backend.mu.Lock()
	answers := backend.submissions[0]
	backend.mu.Unlock()
	if len(answers) != 2 {
		t.Fatalf("expected 2 answers, got %d", len(answers))
	}
	for _, a := range answers {
		if a.UserID != 7 {
			t.Fatalf("expected answers for user 7, got %+v", a)
		}
	}

	if _, err := countdowns.Remaining(ctx, creds.User.ID, section.ID); err != domain.ErrNoCountdown {
		t.Fatalf("expected countdown cleared after expiry, got err=%v", err)
	}

	// Submitting again must be rejected without another network call.
	if err := engine.Submit(ctx); err != domain.ErrSessionTerminated {
		t.Fatalf("expected ErrSessionTerminated, got %v", err)
	}
	if got := backend.submissionCount(); got != 1 {
		t.Fatalf("submission repeated, got %d", got)
	}
}

func TestCountdownSurvivesRestart(t *testing.T) {
	ctx := context.Background()

	redisClient, cleanup := startRedis(t, ctx)
	defer cleanup()

	countdowns := infraredis.NewCountdownStore(redisClient, time.Hour)
	if err := countdowns.Save(ctx, 7, 3, 95); err != nil {
		t.Fatalf("save: %v", err)
	}

	// A fresh store over the same redis sees the value, like a new process would.
	reopened := infraredis.NewCountdownStore(goredis.NewClient(&goredis.Options{
		Addr: redisClient.Options().Addr,
	}), time.Hour)
	got, err := reopened.Remaining(ctx, 7, 3)
	if err != nil {
		t.Fatalf("remaining: %v", err)
	}
	if got != 95 {
		t.Fatalf("expected 95 seconds, got %d", got)
	}
}

func startRedis(t *testing.T, ctx context.Context) (*goredis.Client, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	client := goredis.NewClient(&goredis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	return client, func() {
		_ = client.Close()
		_ = container.Terminate(ctx)
	}
}
