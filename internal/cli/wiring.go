package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/config"
	"trivia-quiz/internal/infra/firestore"
	"trivia-quiz/internal/infra/memory"
	"trivia-quiz/internal/infra/postgres"
	redisinfra "trivia-quiz/internal/infra/redis"
	"trivia-quiz/internal/opentdb"
)

// buildService wires the quiz use cases from config. The returned func releases clients.
// A leaderboard backend that cannot be reached leaves the service running with scores offline.
func buildService(ctx context.Context, cfg config.Config, log *zap.Logger) (*app.QuizService, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	provider := opentdb.NewClient(cfg.OpenTDB.BaseURL, config.TTLDuration(cfg.OpenTDB.Timeout, 10*time.Second))

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		closers = append(closers, func() { _ = redisClient.Close() })
		if err := redisClient.Ping(ctx).Err(); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("connect redis %s: %w", cfg.Redis.Addr, err)
		}
	}

	categoriesTTL := config.TTLDuration(cfg.Categories.TTL, time.Hour)
	var categories app.CategoryCatalog
	var store app.SessionRepository
	if redisClient != nil {
		categories = redisinfra.NewCategoryCache(redisClient, provider, categoriesTTL)
		store = redisinfra.NewSessionStore(redisClient, config.TTLDuration(cfg.Redis.TTL, 30*time.Minute))
	} else {
		categories = memory.NewCategoryCache(provider, categoriesTTL)
		store = memory.NewSessionStore()
	}

	var leaderboard app.Leaderboard
	switch cfg.Leaderboard.Backend {
	case config.BackendMemory:
		leaderboard = memory.NewLeaderboard()
	case config.BackendRedis:
		leaderboard = redisinfra.NewLeaderboard(redisClient)
	case config.BackendPostgres:
		if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
			log.Warn("postgres migrations failed, leaderboard offline", zap.Error(err))
			break
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			log.Warn("postgres unavailable, leaderboard offline", zap.Error(err))
			break
		}
		closers = append(closers, pool.Close)
		leaderboard = postgres.NewLeaderboard(pool)
	case config.BackendFirestore:
		client, err := firestore.Connect(ctx, cfg.Firestore.ProjectID, cfg.Firestore.CredentialsFile)
		if err != nil {
			log.Warn("firestore unavailable, leaderboard offline", zap.Error(err))
			break
		}
		closers = append(closers, func() { _ = client.Close() })
		leaderboard = firestore.NewLeaderboard(client, cfg.Firestore.Collection)
	}

	log.Info("quiz service wired",
		zap.String("leaderboard", cfg.Leaderboard.Backend),
		zap.Bool("leaderboard_online", leaderboard != nil),
		zap.Bool("redis", redisClient != nil),
	)
	return app.NewQuizService(store, provider, categories, leaderboard, log), cleanup, nil
}
