package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/domain"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func TestDraftRepository(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewDraftRepository(client, time.Hour)
	ctx := context.Background()

	t.Run("missing draft loads empty", func(t *testing.T) {
		d, err := repo.Load(ctx, 1)
		require.NoError(t, err)
		assert.True(t, d.Empty())
		assert.Equal(t, int64(1), d.ProjectNumber)
	})

	t.Run("save then load", func(t *testing.T) {
		err := repo.Save(ctx, &domain.Draft{ProjectNumber: 1, Entries: map[string]string{"erf": "12", "address": "1 Main Rd"}})
		require.NoError(t, err)
		assert.True(t, mr.Exists("pms:draft:project:1"))
		assert.Equal(t, time.Hour, mr.TTL("pms:draft:project:1"))

		d, err := repo.Load(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "12", d.Entries["erf"])
		assert.False(t, d.UpdatedAt.IsZero())
	})

	t.Run("empty save deletes", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, &domain.Draft{ProjectNumber: 1}))
		assert.False(t, mr.Exists("pms:draft:project:1"))
	})

	t.Run("expired draft is gone", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, &domain.Draft{ProjectNumber: 2, Entries: map[string]string{"erf": "1"}}))
		mr.FastForward(2 * time.Hour)
		d, err := repo.Load(ctx, 2)
		require.NoError(t, err)
		assert.True(t, d.Empty())
	})

	t.Run("redis down surfaces an error", func(t *testing.T) {
		mr.Close()
		_, err := repo.Load(ctx, 3)
		assert.Error(t, err)
	})
}

func TestMemoryDraftStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryDraftStore()

	entries := map[string]string{"name": "X"}
	require.NoError(t, s.Save(ctx, &domain.Draft{ProjectNumber: 4, Entries: entries}))
	entries["name"] = "mutated"

	d, err := s.Load(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "X", d.Entries["name"])

	require.NoError(t, s.Delete(ctx, 4))
	d, _ = s.Load(ctx, 4)
	assert.True(t, d.Empty())
}
