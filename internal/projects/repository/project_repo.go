package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/domain"
)

const (
	pqForeignKeyViolation = "23503"
	pqCheckViolation      = "23514"
)

const projectColumns = `number, name, address, erf, total_fee, total_paid, deadline,
       type_id, status_id, customer_id, architect_id, engineer_id, project_manager_id`

var projectFieldColumns = map[domain.ProjectField]string{
	domain.FieldName:           "name",
	domain.FieldAddress:        "address",
	domain.FieldERF:            "erf",
	domain.FieldTotalFee:       "total_fee",
	domain.FieldTotalPaid:      "total_paid",
	domain.FieldDeadline:       "deadline",
	domain.FieldCustomer:       "customer_id",
	domain.FieldArchitect:      "architect_id",
	domain.FieldProjectManager: "project_manager_id",
	domain.FieldEngineer:       "engineer_id",
	domain.FieldType:           "type_id",
}

var searchColumns = map[domain.SearchField]string{
	domain.SearchByName:    "name",
	domain.SearchByAddress: "address",
}

// ProjectRepository provides persistence operations for projects
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(s rowScanner) (domain.Project, error) {
	var (
		p                            domain.Project
		address                      sql.NullString
		erf                          sql.NullInt64
		deadline                     sql.NullTime
		typeID, statusID             int
		architect, engineer, manager sql.NullInt64
	)
	err := s.Scan(&p.Number, &p.Name, &address, &erf, &p.TotalFee, &p.TotalPaid, &deadline,
		&typeID, &statusID, &p.CustomerID, &architect, &engineer, &manager)
	if err != nil {
		return p, err
	}

	p.Address = address.String
	p.ERF = erf.Int64
	if deadline.Valid {
		d := domain.DateOf(deadline.Time)
		p.Deadline = &d
	}
	if p.Type, err = domain.ProjectTypeFromID(typeID); err != nil {
		return p, err
	}
	if p.Status, err = domain.StatusFromRank(statusID); err != nil {
		return p, err
	}
	p.ArchitectID = nullID(architect)
	p.EngineerID = nullID(engineer)
	p.ProjectManagerID = nullID(manager)
	return p, nil
}

func nullID(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

func (r *ProjectRepository) queryProjects(ctx context.Context, q string, args ...any) ([]domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchProjectByID returns domain.ErrProjectNotFound when no row has that number.
func (r *ProjectRepository) FetchProjectByID(ctx context.Context, number int64) (*domain.Project, error) {
	q := `SELECT ` + projectColumns + `
FROM projects
WHERE number = $1;`
	p, err := scanProject(r.db.QueryRowContext(ctx, q, number))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	return &p, nil
}

// SearchProjects runs one tier of a project search.
func (r *ProjectRepository) SearchProjects(ctx context.Context, field domain.SearchField, mode domain.MatchMode, term string) ([]domain.Project, error) {
	col, ok := searchColumns[field]
	if !ok {
		return nil, fmt.Errorf("unsupported search field %q", field)
	}

	var q string
	var arg string
	switch mode {
	case domain.MatchExact:
		q = fmt.Sprintf(`SELECT %s
FROM projects
WHERE %s = $1
ORDER BY number;`, projectColumns, col)
		arg = term
	case domain.MatchContains:
		q = fmt.Sprintf(`SELECT %s
FROM projects
WHERE %s LIKE $1 ESCAPE '%s'
ORDER BY number;`, projectColumns, col, LikeEscapeChar)
		arg = containsPattern(term)
	default:
		return nil, fmt.Errorf("unsupported match mode %d", mode)
	}
	return r.queryProjects(ctx, q, arg)
}

// ListProjects returns the projects selected by filter, ordered by number.
func (r *ProjectRepository) ListProjects(ctx context.Context, filter domain.ProjectFilter) ([]domain.Project, error) {
	base := `SELECT ` + projectColumns + `
FROM projects`
	final := domain.StatusFinal.Rank()

	switch filter.Scope {
	case domain.ScopeAll:
		return r.queryProjects(ctx, base+`
ORDER BY number;`)
	case domain.ScopeCurrent:
		return r.queryProjects(ctx, base+`
WHERE status_id < $1 AND (deadline IS NULL OR deadline > $2)
ORDER BY number;`, final, domain.DateOf(filter.Today))
	case domain.ScopeOverdue:
		return r.queryProjects(ctx, base+`
WHERE status_id < $1 AND deadline < $2
ORDER BY number;`, final, domain.DateOf(filter.Today))
	case domain.ScopeByPerson:
		return r.queryProjects(ctx, base+`
WHERE $1 IN (customer_id, architect_id, engineer_id, project_manager_id)
ORDER BY number;`, filter.PersonID)
	}
	return nil, fmt.Errorf("unsupported list scope %d", filter.Scope)
}

// InsertProject creates a project in the Captured stage and returns its number.
func (r *ProjectRepository) InsertProject(ctx context.Context, name string, t domain.ProjectType, customerID int64) (int64, error) {
	const q = `
INSERT INTO projects (name, type_id, status_id, customer_id)
VALUES ($1, $2, $3, $4)
RETURNING number;
`
	var number int64
	err := r.db.QueryRowContext(ctx, q, name, t.ID(), domain.StatusCaptured.Rank(), customerID).Scan(&number)
	if err != nil {
		return 0, mapWriteErr(err)
	}
	return number, nil
}

// UpdateProjectFields applies every entry of fields in one UPDATE statement.
// Columns are written in domain.ProjectFields order so the statement text is stable.
func (r *ProjectRepository) UpdateProjectFields(ctx context.Context, number int64, fields map[domain.ProjectField]any) (bool, error) {
	if len(fields) == 0 {
		return false, nil
	}

	sets := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+1)
	for _, f := range domain.ProjectFields() {
		v, ok := fields[f]
		if !ok {
			continue
		}
		args = append(args, columnValue(v))
		sets = append(sets, fmt.Sprintf("%s = $%d", projectFieldColumns[f], len(args)))
	}
	if len(sets) != len(fields) {
		return false, fmt.Errorf("update contains unknown project fields")
	}
	args = append(args, number)

	q := fmt.Sprintf(`UPDATE projects SET %s WHERE number = $%d;`, strings.Join(sets, ", "), len(args))
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return false, mapWriteErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func columnValue(v any) any {
	if t, ok := v.(domain.ProjectType); ok {
		return int64(t.ID())
	}
	return v
}

func (r *ProjectRepository) UpdateProjectStatus(ctx context.Context, number int64, rank int) (bool, error) {
	const q = `UPDATE projects SET status_id = $1 WHERE number = $2;`
	res, err := r.db.ExecContext(ctx, q, rank, number)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteProject removes the row; there is no soft delete.
func (r *ProjectRepository) DeleteProject(ctx context.Context, number int64) (bool, error) {
	const q = `DELETE FROM projects WHERE number = $1;`
	res, err := r.db.ExecContext(ctx, q, number)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// mapWriteErr turns a role foreign-key violation into domain.ErrPersonNotFound.
func mapWriteErr(err error) error {
	var pgErr *pq.Error
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pqForeignKeyViolation:
			return domain.ErrPersonNotFound
		case pqCheckViolation:
			return domain.NewValidationError(pgErr.Constraint, domain.CodeOutOfRange, pgErr.Message)
		}
	}
	return err
}
