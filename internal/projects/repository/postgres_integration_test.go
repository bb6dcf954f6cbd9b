package repository_test

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/pms-backend/config"
	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/domain"
	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/repository"
	"github.com/GoSim-25-26J-441/pms-backend/internal/storage/postgres"
)

// setupTestPostgres migrates a scratch database and empties it.
// Skips unless TEST_DB_DSN is set.
func setupTestPostgres(t *testing.T) *sql.DB {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set, skipping PostgreSQL integration test")
	}
	ctx := context.Background()
	cfg := &config.DatabaseConfig{DSN: dsn}

	pool, err := postgres.OpenPool(ctx, cfg)
	require.NoError(t, err)
	defer pool.Close()
	require.NoError(t, postgres.Migrate(ctx, pool))

	db, err := postgres.NewConnection(ctx, cfg)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `TRUNCATE projects, persons RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPostgres_RoundTrip(t *testing.T) {
	db := setupTestPostgres(t)
	repo := repository.NewPostgres(db)
	ctx := context.Background()

	jane, err := repo.InsertPerson(ctx, "Jane", "Smith", "1 Main Rd", "jane@example.com")
	require.NoError(t, err)
	ann, err := repo.InsertPerson(ctx, "Ann", "Smithson", "2 Main Rd", "ann@example.com")
	require.NoError(t, err)

	_, err = repo.InsertProject(ctx, "Orphan", domain.TypeHouse, 9999)
	assert.ErrorIs(t, err, domain.ErrPersonNotFound)

	n, err := repo.InsertProject(ctx, "Sale: 50% off building", domain.TypeShop, jane)
	require.NoError(t, err)
	_, err = repo.InsertProject(ctx, "500 offices", domain.TypeOfficeBuilding, jane)
	require.NoError(t, err)

	hits, err := repo.SearchProjects(ctx, domain.SearchByName, domain.MatchContains, "50% off")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, n, hits[0].Number)

	modified, err := repo.UpdateProjectFields(ctx, n, map[domain.ProjectField]any{
		domain.FieldAddress:   "12 Main Rd",
		domain.FieldERF:       int64(4521),
		domain.FieldTotalFee:  decimal.RequireFromString("1500.50"),
		domain.FieldArchitect: ann,
		domain.FieldType:      domain.TypeHotel,
	})
	require.NoError(t, err)
	assert.True(t, modified)

	_, err = repo.UpdateProjectFields(ctx, n, map[domain.ProjectField]any{domain.FieldEngineer: int64(9999)})
	assert.ErrorIs(t, err, domain.ErrPersonNotFound)

	p, err := repo.FetchProjectByID(ctx, n)
	require.NoError(t, err)
	assert.Equal(t, domain.TypeHotel, p.Type)
	assert.Equal(t, "1500.50", p.TotalFee.StringFixed(2))
	require.NotNil(t, p.ArchitectID)
	assert.Equal(t, ann, *p.ArchitectID)

	people, err := repo.SearchPersons(ctx, "Smith")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(people), 2)
	assert.Equal(t, jane, people[0].ID)

	mine, err := repo.ListProjects(ctx, domain.ProjectFilter{Scope: domain.ScopeByPerson, PersonID: ann})
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}
