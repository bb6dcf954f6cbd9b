package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/pms-backend/config"
	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/repository"
	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/service"
	"github.com/GoSim-25-26J-441/pms-backend/internal/storage/postgres"
)

// Stores holds the opened backends. Close releases whichever were opened.
type Stores struct {
	SQL    *sql.DB
	Pool   *pgxpool.Pool
	Redis  *redis.Client
	Repo   service.Repository
	Drafts service.DraftStore
}

// OpenPostgres opens the record repository and the pgx pool. Drafts go to
// Redis when REDIS_ADDR is set and stay in memory otherwise.
func OpenPostgres(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Stores, error) {
	s := &Stores{}
	db, err := postgres.NewConnection(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}
	s.SQL = db
	s.Repo = repository.NewPostgres(db)

	pool, err := postgres.OpenPool(ctx, &cfg.Database)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.Pool = pool

	if err := s.openDrafts(ctx, cfg, log); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// OpenMemory builds in-process stores with no external services.
func OpenMemory() *Stores {
	return &Stores{
		Repo:   repository.NewMemoryStore(),
		Drafts: repository.NewMemoryDraftStore(),
	}
}

func (s *Stores) openDrafts(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	if cfg.Redis.Addr == "" {
		log.Info("REDIS_ADDR not set, keeping drafts in memory")
		s.Drafts = repository.NewMemoryDraftStore()
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return fmt.Errorf("redis ping: %w", err)
	}
	s.Redis = client
	s.Drafts = repository.NewDraftRepository(client, cfg.Redis.DraftTTL)
	return nil
}

func (s *Stores) Close() {
	if s.Redis != nil {
		_ = s.Redis.Close()
	}
	if s.Pool != nil {
		s.Pool.Close()
	}
	if s.SQL != nil {
		_ = s.SQL.Close()
	}
}
