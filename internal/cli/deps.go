package cli

import (
	"os"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"aula-quiz-client/internal/config"
	"aula-quiz-client/internal/gateway"
	"aula-quiz-client/internal/infra/memory"
	redisinfra "aula-quiz-client/internal/infra/redis"
	"aula-quiz-client/internal/quiz"
	"aula-quiz-client/internal/session"
)

const defaultBaseURL = "http://localhost:4000"

// deps wires the client stack from config. With a redis address configured,
// credentials and countdowns survive across runs (shared kiosk setups);
// without one they live for the process only and commands prompt for login.
type deps struct {
	cfg        config.Config
	sessions   session.Store
	countdowns quiz.CountdownStore
	client     *gateway.Client
	catalog    *memory.CatalogCache
}

func buildDeps(path string) (*deps, error) {
	cfg, err := config.Load(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		cfg = config.Config{}
	}

	baseURL := cfg.API.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := config.TTLDuration(cfg.API.Timeout, 15*time.Second)
	countdownTTL := config.TTLDuration(cfg.Countdown.TTL, 24*time.Hour)
	cacheTTL := config.TTLDuration(cfg.Cache.TTL, 5*time.Minute)

	var (
		sessions   session.Store
		countdowns quiz.CountdownStore
	)
	if cfg.Redis.Addr != "" {
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		sessions = redisinfra.NewSessionStore(client)
		countdowns = redisinfra.NewCountdownStore(client, countdownTTL)
	} else {
		sessions = memory.NewSessionStore()
		countdowns = memory.NewCountdownStore()
	}

	client := gateway.New(baseURL, timeout, sessions)
	return &deps{
		cfg:        cfg,
		sessions:   sessions,
		countdowns: countdowns,
		client:     client,
		catalog:    memory.NewCatalogCache(client, cacheTTL),
	}, nil
}
