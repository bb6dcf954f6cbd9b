package service

import (
	"context"

	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/domain"
)

// ProjectStore is the project half of the record repository.
type ProjectStore interface {
	FetchProjectByID(ctx context.Context, number int64) (*domain.Project, error)
	SearchProjects(ctx context.Context, field domain.SearchField, mode domain.MatchMode, term string) ([]domain.Project, error)
	ListProjects(ctx context.Context, filter domain.ProjectFilter) ([]domain.Project, error)
	InsertProject(ctx context.Context, name string, t domain.ProjectType, customerID int64) (int64, error)
	// UpdateProjectFields writes every entry in one call. modified is false when
	// no row matched the number.
	UpdateProjectFields(ctx context.Context, number int64, fields map[domain.ProjectField]any) (modified bool, err error)
	UpdateProjectStatus(ctx context.Context, number int64, rank int) (modified bool, err error)
	DeleteProject(ctx context.Context, number int64) (modified bool, err error)
}

// PersonStore is the person half of the record repository.
type PersonStore interface {
	FetchPersonByID(ctx context.Context, id int64) (*domain.Person, error)
	SearchPersons(ctx context.Context, term string) ([]domain.Person, error)
	ListPersons(ctx context.Context) ([]domain.Person, error)
	InsertPerson(ctx context.Context, firstName, surname, address, email string) (int64, error)
	UpdatePersonField(ctx context.Context, id int64, field domain.PersonField, value string) (modified bool, err error)
	UpdatePersonFields(ctx context.Context, id int64, fields map[domain.PersonField]string) (modified bool, err error)
}

// Repository is everything the core needs from durable storage.
type Repository interface {
	ProjectStore
	PersonStore
}

// DraftStore parks pending change-sets between stateless requests.
type DraftStore interface {
	Save(ctx context.Context, d *domain.Draft) error
	Load(ctx context.Context, number int64) (*domain.Draft, error)
	Delete(ctx context.Context, number int64) error
}
