package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/domain"
)

var personFieldColumns = map[domain.PersonField]string{
	domain.PersonFirstName: "first_name",
	domain.PersonSurname:   "surname",
	domain.PersonEmail:     "email",
	domain.PersonAddress:   "address",
}

// PersonRepository provides persistence operations for people.
type PersonRepository struct {
	db *sql.DB
}

func NewPersonRepository(db *sql.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

func (r *PersonRepository) FetchPersonByID(ctx context.Context, id int64) (*domain.Person, error) {
	const q = `
SELECT id, first_name, surname, email, address
FROM persons
WHERE id = $1;
`
	var p domain.Person
	err := r.db.QueryRowContext(ctx, q, id).Scan(&p.ID, &p.FirstName, &p.Surname, &p.Email, &p.Address)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPersonNotFound
		}
		return nil, err
	}
	return &p, nil
}

// SearchPersons unions four tiers in a fixed order: first name exact, surname
// exact, first name contains, surname contains. A person matching several tiers
// appears once per tier.
func (r *PersonRepository) SearchPersons(ctx context.Context, term string) ([]domain.Person, error) {
	q := fmt.Sprintf(`
SELECT id, first_name, surname, email, address, 1 AS tier FROM persons WHERE first_name = $1
UNION ALL
SELECT id, first_name, surname, email, address, 2 AS tier FROM persons WHERE surname = $1
UNION ALL
SELECT id, first_name, surname, email, address, 3 AS tier FROM persons WHERE first_name LIKE $2 ESCAPE '%[1]s'
UNION ALL
SELECT id, first_name, surname, email, address, 4 AS tier FROM persons WHERE surname LIKE $2 ESCAPE '%[1]s'
ORDER BY tier, id;
`, LikeEscapeChar)

	rows, err := r.db.QueryContext(ctx, q, term, containsPattern(term))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Person, 0, 8)
	for rows.Next() {
		var (
			p    domain.Person
			tier int
		)
		if err := rows.Scan(&p.ID, &p.FirstName, &p.Surname, &p.Email, &p.Address, &tier); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PersonRepository) ListPersons(ctx context.Context) ([]domain.Person, error) {
	const q = `
SELECT id, first_name, surname, email, address
FROM persons
ORDER BY id;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Person
	for rows.Next() {
		var p domain.Person
		if err := rows.Scan(&p.ID, &p.FirstName, &p.Surname, &p.Email, &p.Address); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PersonRepository) InsertPerson(ctx context.Context, firstName, surname, address, email string) (int64, error) {
	const q = `
INSERT INTO persons (first_name, surname, address, email)
VALUES ($1, $2, $3, $4)
RETURNING id;
`
	var id int64
	if err := r.db.QueryRowContext(ctx, q, firstName, surname, address, email).Scan(&id); err != nil {
		return 0, mapWriteErr(err)
	}
	return id, nil
}

func (r *PersonRepository) UpdatePersonField(ctx context.Context, id int64, field domain.PersonField, value string) (bool, error) {
	return r.UpdatePersonFields(ctx, id, map[domain.PersonField]string{field: value})
}

// UpdatePersonFields writes all entries in one UPDATE statement.
func (r *PersonRepository) UpdatePersonFields(ctx context.Context, id int64, fields map[domain.PersonField]string) (bool, error) {
	if len(fields) == 0 {
		return false, nil
	}

	sets := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+1)
	for _, f := range domain.PersonFields() {
		v, ok := fields[f]
		if !ok {
			continue
		}
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", personFieldColumns[f], len(args)))
	}
	if len(sets) != len(fields) {
		return false, fmt.Errorf("update contains unknown person fields")
	}
	args = append(args, id)

	q := fmt.Sprintf(`UPDATE persons SET %s WHERE id = $%d;`, strings.Join(sets, ", "), len(args))
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
