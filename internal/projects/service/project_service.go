package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/domain"
)

// NewProjectInput carries the fields a project is created with.
type NewProjectInput struct {
	Name       string             `json:"name"`
	Type       domain.ProjectType `json:"type"`
	CustomerID int64              `json:"customer_id"`
}

// ProjectService handles project-related business logic
type ProjectService struct {
	repo     Repository
	gate     *StageGate
	resolver *Resolver
	log      *zap.Logger
	now      func() time.Time
}

// NewProjectService creates a new project service
func NewProjectService(repo Repository, log *zap.Logger) *ProjectService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProjectService{
		repo:     repo,
		gate:     NewStageGate(repo, log),
		resolver: NewResolver(repo),
		log:      log,
		now:      time.Now,
	}
}

// WithClock overrides the time source used for current/overdue listings.
func (s *ProjectService) WithClock(now func() time.Time) *ProjectService {
	s.now = now
	return s
}

// Today is the current date according to the service clock.
func (s *ProjectService) Today() time.Time { return domain.DateOf(s.now()) }

// Search runs the tiered resolver over project names or addresses.
func (s *ProjectService) Search(ctx context.Context, q Query) ([]domain.Project, error) {
	return s.resolver.SearchProjects(ctx, q)
}

// Create inserts a project in the Captured stage. A blank name defaults to
// "<type> <customer surname>".
func (s *ProjectService) Create(ctx context.Context, in NewProjectInput) (*domain.Project, error) {
	if !in.Type.Valid() {
		return nil, domain.NewValidationError(string(domain.FieldType), domain.CodeInvalidEnum, "unknown project type")
	}
	if in.CustomerID <= 0 {
		return nil, domain.NewValidationError(string(domain.FieldCustomer), domain.CodeRequired, "customer is required")
	}
	customer, err := s.repo.FetchPersonByID(ctx, in.CustomerID)
	if err != nil {
		return nil, domain.WrapPersistence("fetch customer", err)
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = in.Type.String() + " " + customer.Surname
	}
	v, err := domain.NormalizeProjectValue(domain.FieldName, name)
	if err != nil {
		return nil, err
	}

	number, err := s.repo.InsertProject(ctx, v.(string), in.Type, customer.ID)
	if err != nil {
		return nil, domain.WrapPersistence("insert project", err)
	}
	s.log.Info("project created", zap.Int64("project", number), zap.String("name", v.(string)))
	return s.Get(ctx, number)
}

// Get returns the stored project.
func (s *ProjectService) Get(ctx context.Context, number int64) (*domain.Project, error) {
	p, err := s.repo.FetchProjectByID(ctx, number)
	if err != nil {
		return nil, domain.WrapPersistence("fetch project", err)
	}
	return p, nil
}

// Delete hard-deletes a project
func (s *ProjectService) Delete(ctx context.Context, number int64) error {
	modified, err := s.repo.DeleteProject(ctx, number)
	if err != nil {
		return domain.WrapPersistence("delete project", err)
	}
	if !modified {
		return domain.ErrProjectNotFound
	}
	s.log.Info("project deleted", zap.Int64("project", number))
	return nil
}

func (s *ProjectService) list(ctx context.Context, f domain.ProjectFilter) ([]domain.Project, error) {
	f.Today = s.now()
	out, err := s.repo.ListProjects(ctx, f)
	if err != nil {
		return nil, domain.WrapPersistence("list projects", err)
	}
	if out == nil {
		out = []domain.Project{}
	}
	return out, nil
}

// ListCurrent returns unfinished projects whose deadline is unset or still ahead.
func (s *ProjectService) ListCurrent(ctx context.Context) ([]domain.Project, error) {
	return s.list(ctx, domain.ProjectFilter{Scope: domain.ScopeCurrent})
}

// ListOverdue returns unfinished projects whose deadline has passed.
func (s *ProjectService) ListOverdue(ctx context.Context) ([]domain.Project, error) {
	return s.list(ctx, domain.ProjectFilter{Scope: domain.ScopeOverdue})
}

// ListByPerson returns projects where the person holds any role.
func (s *ProjectService) ListByPerson(ctx context.Context, personID int64) ([]domain.Project, error) {
	if _, err := s.repo.FetchPersonByID(ctx, personID); err != nil {
		return nil, domain.WrapPersistence("fetch person", err)
	}
	return s.list(ctx, domain.ProjectFilter{Scope: domain.ScopeByPerson, PersonID: personID})
}

// Roles fetches the people currently assigned to p.
func (s *ProjectService) Roles(ctx context.Context, p *domain.Project) (domain.Roles, error) {
	var roles domain.Roles
	fetch := func(id *int64) (*domain.Person, error) {
		if id == nil {
			return nil, nil
		}
		person, err := s.repo.FetchPersonByID(ctx, *id)
		if err != nil {
			return nil, domain.WrapPersistence("fetch person", err)
		}
		return person, nil
	}

	var err error
	customer := p.CustomerID
	if roles.Customer, err = fetch(&customer); err != nil {
		return roles, err
	}
	if roles.Architect, err = fetch(p.ArchitectID); err != nil {
		return roles, err
	}
	if roles.Engineer, err = fetch(p.EngineerID); err != nil {
		return roles, err
	}
	if roles.ProjectManager, err = fetch(p.ProjectManagerID); err != nil {
		return roles, err
	}
	return roles, nil
}

// Advance fetches the project and runs it through the stage gate.
func (s *ProjectService) Advance(ctx context.Context, number int64) (*domain.Project, AdvanceResult, error) {
	p, err := s.Get(ctx, number)
	if err != nil {
		return nil, AdvanceResult{}, err
	}
	res, err := s.gate.Advance(ctx, p)
	if err != nil {
		return nil, res, err
	}
	return p, res, nil
}

// Gate exposes the stage gate for callers that already hold a snapshot.
func (s *ProjectService) Gate() *StageGate { return s.gate }

// Editor opens a change-set against the current stored project.
func (s *ProjectService) Editor(ctx context.Context, number int64) (*ProjectEditor, error) {
	p, err := s.Get(ctx, number)
	if err != nil {
		return nil, err
	}
	return NewProjectEditor(s.repo, *p, s.log), nil
}
