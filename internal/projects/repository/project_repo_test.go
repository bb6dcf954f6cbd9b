package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/domain"
)

var projectCols = []string{
	"number", "name", "address", "erf", "total_fee", "total_paid", "deadline",
	"type_id", "status_id", "customer_id", "architect_id", "engineer_id", "project_manager_id",
}

func setupProjectRepo(t *testing.T) (*ProjectRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return NewProjectRepository(db), mock, db
}

func TestProjectRepository_FetchProjectByID(t *testing.T) {
	repo, mock, db := setupProjectRepo(t)
	defer db.Close()
	ctx := context.Background()

	t.Run("scans nullable columns", func(t *testing.T) {
		deadline := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
		mock.ExpectQuery(`SELECT .+ FROM projects\s+WHERE number = \$1`).
			WithArgs(int64(42)).
			WillReturnRows(sqlmock.NewRows(projectCols).
				AddRow(int64(42), "House Smith", "1 Main Rd", int64(1234), "1500.00", "0.00", deadline,
					int64(1), int64(3), int64(7), int64(8), nil, nil))

		p, err := repo.FetchProjectByID(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, int64(42), p.Number)
		assert.Equal(t, "1 Main Rd", p.Address)
		assert.Equal(t, int64(1234), p.ERF)
		assert.True(t, p.TotalFee.Equal(decimal.NewFromInt(1500)))
		assert.True(t, p.TotalPaid.IsZero())
		require.NotNil(t, p.Deadline)
		assert.True(t, deadline.Equal(*p.Deadline))
		assert.Equal(t, domain.TypeHouse, p.Type)
		assert.Equal(t, domain.StatusConcept, p.Status)
		require.NotNil(t, p.ArchitectID)
		assert.Equal(t, int64(8), *p.ArchitectID)
		assert.Nil(t, p.EngineerID)
		assert.Nil(t, p.ProjectManagerID)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row is ErrProjectNotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM projects`).
			WithArgs(int64(9)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FetchProjectByID(ctx, 9)
		assert.ErrorIs(t, err, domain.ErrProjectNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProjectRepository_SearchProjects(t *testing.T) {
	repo, mock, db := setupProjectRepo(t)
	defer db.Close()
	ctx := context.Background()

	t.Run("exact match binds the raw term", func(t *testing.T) {
		mock.ExpectQuery(`WHERE name = \$1\s+ORDER BY number`).
			WithArgs("50%_off").
			WillReturnRows(sqlmock.NewRows(projectCols))

		out, err := repo.SearchProjects(ctx, domain.SearchByName, domain.MatchExact, "50%_off")
		require.NoError(t, err)
		assert.Empty(t, out)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("contains escapes wildcards", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`WHERE address LIKE $1 ESCAPE '!'`)).
			WithArgs(`%50!%!_off%`).
			WillReturnRows(sqlmock.NewRows(projectCols).
				AddRow(int64(1), "Shop", "50%_off plaza", nil, "0", "0", nil,
					int64(3), int64(1), int64(2), nil, nil, nil))

		out, err := repo.SearchProjects(ctx, domain.SearchByAddress, domain.MatchContains, "50%_off")
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, domain.TypeShop, out[0].Type)
		assert.Equal(t, int64(0), out[0].ERF)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects unknown field", func(t *testing.T) {
		_, err := repo.SearchProjects(ctx, domain.SearchField("customer"), domain.MatchExact, "x")
		assert.Error(t, err)
	})
}

func TestProjectRepository_ListProjects(t *testing.T) {
	repo, mock, db := setupProjectRepo(t)
	defer db.Close()
	ctx := context.Background()
	today := time.Date(2024, 5, 10, 15, 30, 0, 0, time.UTC)
	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE status_id < $1 AND (deadline IS NULL OR deadline > $2)`)).
		WithArgs(7, day).
		WillReturnRows(sqlmock.NewRows(projectCols))
	_, err := repo.ListProjects(ctx, domain.ProjectFilter{Scope: domain.ScopeCurrent, Today: today})
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE status_id < $1 AND deadline < $2`)).
		WithArgs(7, day).
		WillReturnRows(sqlmock.NewRows(projectCols))
	_, err = repo.ListProjects(ctx, domain.ProjectFilter{Scope: domain.ScopeOverdue, Today: today})
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE $1 IN (customer_id, architect_id, engineer_id, project_manager_id)`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(projectCols))
	_, err = repo.ListProjects(ctx, domain.ProjectFilter{Scope: domain.ScopeByPerson, PersonID: 5})
	require.NoError(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_InsertProject(t *testing.T) {
	repo, mock, db := setupProjectRepo(t)
	defer db.Close()
	ctx := context.Background()

	t.Run("returns the new number", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO projects`).
			WithArgs("House Smith", 1, 1, int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"number"}).AddRow(int64(11)))

		n, err := repo.InsertProject(ctx, "House Smith", domain.TypeHouse, 3)
		require.NoError(t, err)
		assert.Equal(t, int64(11), n)
	})

	t.Run("missing customer maps to ErrPersonNotFound", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO projects`).
			WithArgs("House Smith", 1, 1, int64(99)).
			WillReturnError(&pq.Error{Code: "23503", Constraint: "projects_customer_id_fkey"})

		_, err := repo.InsertProject(ctx, "House Smith", domain.TypeHouse, 99)
		assert.ErrorIs(t, err, domain.ErrPersonNotFound)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_UpdateProjectFields(t *testing.T) {
	repo, mock, db := setupProjectRepo(t)
	defer db.Close()
	ctx := context.Background()

	t.Run("single statement in field order", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(
			`UPDATE projects SET name = $1, erf = $2, total_fee = $3, architect_id = $4, type_id = $5 WHERE number = $6;`)).
			WithArgs("Renamed", int64(77), sqlmock.AnyArg(), int64(4), int64(6), int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		modified, err := repo.UpdateProjectFields(ctx, 42, map[domain.ProjectField]any{
			domain.FieldType:      domain.TypeHotel,
			domain.FieldArchitect: int64(4),
			domain.FieldTotalFee:  decimal.RequireFromString("1500.00"),
			domain.FieldName:      "Renamed",
			domain.FieldERF:       int64(77),
		})
		require.NoError(t, err)
		assert.True(t, modified)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no matching row", func(t *testing.T) {
		mock.ExpectExec(`UPDATE projects SET address = \$1 WHERE number = \$2`).
			WithArgs("1 Main Rd", int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		modified, err := repo.UpdateProjectFields(ctx, 5, map[domain.ProjectField]any{domain.FieldAddress: "1 Main Rd"})
		require.NoError(t, err)
		assert.False(t, modified)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty change-set issues no statement", func(t *testing.T) {
		modified, err := repo.UpdateProjectFields(ctx, 5, nil)
		require.NoError(t, err)
		assert.False(t, modified)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown role person", func(t *testing.T) {
		mock.ExpectExec(`UPDATE projects SET engineer_id = \$1`).
			WithArgs(int64(404), int64(5)).
			WillReturnError(&pq.Error{Code: "23503"})

		_, err := repo.UpdateProjectFields(ctx, 5, map[domain.ProjectField]any{domain.FieldEngineer: int64(404)})
		assert.ErrorIs(t, err, domain.ErrPersonNotFound)
	})

	t.Run("check violation is a validation error", func(t *testing.T) {
		mock.ExpectExec(`UPDATE projects SET erf = \$1`).
			WillReturnError(&pq.Error{Code: "23514", Constraint: "projects_erf_check", Message: "violates check"})

		_, err := repo.UpdateProjectFields(ctx, 5, map[domain.ProjectField]any{domain.FieldERF: int64(1)})
		var ve *domain.ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, "projects_erf_check", ve.Field)
	})
}

func TestProjectRepository_StatusAndDelete(t *testing.T) {
	repo, mock, db := setupProjectRepo(t)
	defer db.Close()
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE projects SET status_id = $1 WHERE number = $2;`)).
		WithArgs(2, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	modified, err := repo.UpdateProjectStatus(ctx, 3, 2)
	require.NoError(t, err)
	assert.True(t, modified)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM projects WHERE number = $1;`)).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	modified, err = repo.DeleteProject(ctx, 3)
	require.NoError(t, err)
	assert.False(t, modified)

	require.NoError(t, mock.ExpectationsWereMet())
}
