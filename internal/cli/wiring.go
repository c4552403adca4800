package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"playstyle-quiz-service/internal/app"
	"playstyle-quiz-service/internal/catalog"
	"playstyle-quiz-service/internal/config"
	"playstyle-quiz-service/internal/infra/memory"
	pgloader "playstyle-quiz-service/internal/infra/postgres"
	redisstore "playstyle-quiz-service/internal/infra/redis"
	"playstyle-quiz-service/internal/infra/resilient"
	"playstyle-quiz-service/internal/infra/sqlite"
)

// deps holds the process-wide backends chosen from config.
type deps struct {
	redis   *redis.Client
	pool    *pgxpool.Pool
	sqlite  *sqlite.BankStore
	banks   app.BankRepository
	store   app.SessionRepository
	backend app.StatsBackend
}

func (d *deps) Close() {
	if d.redis != nil {
		_ = d.redis.Close()
	}
	if d.pool != nil {
		d.pool.Close()
	}
	if d.sqlite != nil {
		_ = d.sqlite.Close()
	}
}

func newRedisClient(cfg config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

// newStatsBackend picks Redis when configured and guards it with a circuit
// breaker; otherwise statistics live in process memory.
func newStatsBackend(client *redis.Client, log logrus.FieldLogger) app.StatsBackend {
	if client == nil {
		log.Warn("redis not configured, statistics are kept in memory")
		return memory.NewStatsBackend()
	}
	return resilient.NewStatsBackend(redisstore.NewStatsBackend(client), resilient.DefaultBreakerConfig(), log)
}

func buildDeps(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (*deps, error) {
	d := &deps{redis: newRedisClient(cfg)}

	var loader memory.BankLoader = memory.NewStaticBankLoader(catalog.DefaultBank())
	switch {
	case cfg.Postgres.URL != "":
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		d.pool = pool
		loader = pgloader.NewBankLoader(pool)
	case cfg.SQLite.Path != "":
		store, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		if err := store.SeedBank(ctx, catalog.DefaultBank()); err != nil {
			_ = store.Close()
			d.Close()
			return nil, fmt.Errorf("seed sqlite: %w", err)
		}
		d.sqlite = store
		loader = store
	}

	bankTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	sessionTTL := config.TTLDuration(cfg.Quiz.SessionTTL, 2*time.Hour)
	if d.redis != nil {
		d.banks = redisstore.NewBankRepository(d.redis, loader, bankTTL, log)
		d.store = redisstore.NewSessionStore(d.redis, sessionTTL)
	} else {
		d.banks = memory.NewBankRepository(loader, bankTTL)
		d.store = memory.NewSessionStore(sessionTTL)
	}
	d.backend = newStatsBackend(d.redis, log)
	return d, nil
}

func statsOptions(cfg config.Config) app.StatsOptions {
	return app.StatsOptions{
		RecentLimit:     cfg.Stats.RecentLimit,
		CompletionLimit: cfg.Stats.CompletionLimit,
		DashboardRecent: cfg.Stats.DashboardRecent,
		IdempotencyTTL:  config.TTLDuration(cfg.Stats.IdempotencyTTL, 24*time.Hour),
	}
}
