package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/domain"
)

// MemoryStore keeps projects and people in process memory. It mirrors the
// PostgreSQL repository closely enough to back tests and the CLI's
// --store memory mode: substring search is literal, role ids must reference
// existing people and results are ordered by id.
type MemoryStore struct {
	mu          sync.RWMutex
	projects    map[int64]domain.Project
	persons     map[int64]domain.Person
	nextProject int64
	nextPerson  int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		projects: make(map[int64]domain.Project),
		persons:  make(map[int64]domain.Person),
	}
}

func cloneProject(p domain.Project) domain.Project {
	cp := p
	if p.Deadline != nil {
		d := *p.Deadline
		cp.Deadline = &d
	}
	cp.ArchitectID = cloneID(p.ArchitectID)
	cp.EngineerID = cloneID(p.EngineerID)
	cp.ProjectManagerID = cloneID(p.ProjectManagerID)
	return cp
}

func cloneID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func (s *MemoryStore) sortedProjects(keep func(domain.Project) bool) []domain.Project {
	out := make([]domain.Project, 0, len(s.projects))
	for _, p := range s.projects {
		if keep(p) {
			out = append(out, cloneProject(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

func (s *MemoryStore) FetchProjectByID(_ context.Context, number int64) (*domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[number]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	cp := cloneProject(p)
	return &cp, nil
}

func (s *MemoryStore) SearchProjects(_ context.Context, field domain.SearchField, mode domain.MatchMode, term string) ([]domain.Project, error) {
	if !field.Valid() {
		return nil, fmt.Errorf("unsupported search field %q", field)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	value := func(p domain.Project) string {
		if field == domain.SearchByAddress {
			return p.Address
		}
		return p.Name
	}
	return s.sortedProjects(func(p domain.Project) bool {
		return matches(value(p), mode, term)
	}), nil
}

func matches(value string, mode domain.MatchMode, term string) bool {
	if mode == domain.MatchContains {
		return strings.Contains(value, term)
	}
	return value == term
}

func (s *MemoryStore) ListProjects(_ context.Context, filter domain.ProjectFilter) ([]domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	today := domain.DateOf(filter.Today)
	switch filter.Scope {
	case domain.ScopeAll:
		return s.sortedProjects(func(domain.Project) bool { return true }), nil
	case domain.ScopeCurrent:
		return s.sortedProjects(func(p domain.Project) bool {
			return !p.Status.IsFinal() && (p.Deadline == nil || p.Deadline.After(today))
		}), nil
	case domain.ScopeOverdue:
		return s.sortedProjects(func(p domain.Project) bool {
			return p.Overdue(today)
		}), nil
	case domain.ScopeByPerson:
		id := filter.PersonID
		return s.sortedProjects(func(p domain.Project) bool {
			return p.CustomerID == id || eqID(p.ArchitectID, id) || eqID(p.EngineerID, id) || eqID(p.ProjectManagerID, id)
		}), nil
	}
	return nil, fmt.Errorf("unsupported list scope %d", filter.Scope)
}

func eqID(p *int64, id int64) bool { return p != nil && *p == id }

func (s *MemoryStore) InsertProject(_ context.Context, name string, t domain.ProjectType, customerID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.persons[customerID]; !ok {
		return 0, domain.ErrPersonNotFound
	}
	s.nextProject++
	p := domain.NewProject(name, t, customerID)
	p.Number = s.nextProject
	s.projects[p.Number] = *p
	return p.Number, nil
}

func (s *MemoryStore) UpdateProjectFields(_ context.Context, number int64, fields map[domain.ProjectField]any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[number]
	if !ok || len(fields) == 0 {
		return false, nil
	}
	for f, v := range fields {
		if !f.Valid() {
			return false, fmt.Errorf("unknown project field %q", f)
		}
		if f.IsRole() {
			if _, ok := s.persons[v.(int64)]; !ok {
				return false, domain.ErrPersonNotFound
			}
		}
	}
	p = cloneProject(p)
	for f, v := range fields {
		p.SetField(f, v)
	}
	s.projects[number] = p
	return true, nil
}

func (s *MemoryStore) UpdateProjectStatus(_ context.Context, number int64, rank int) (bool, error) {
	status, err := domain.StatusFromRank(rank)
	if err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[number]
	if !ok {
		return false, nil
	}
	p.Status = status
	s.projects[number] = p
	return true, nil
}

func (s *MemoryStore) DeleteProject(_ context.Context, number int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[number]; !ok {
		return false, nil
	}
	delete(s.projects, number)
	return true, nil
}

func (s *MemoryStore) FetchPersonByID(_ context.Context, id int64) (*domain.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.persons[id]
	if !ok {
		return nil, domain.ErrPersonNotFound
	}
	return &p, nil
}

func (s *MemoryStore) sortedPersons(keep func(domain.Person) bool) []domain.Person {
	out := make([]domain.Person, 0, len(s.persons))
	for _, p := range s.persons {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *MemoryStore) SearchPersons(_ context.Context, term string) ([]domain.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Person
	out = append(out, s.sortedPersons(func(p domain.Person) bool { return p.FirstName == term })...)
	out = append(out, s.sortedPersons(func(p domain.Person) bool { return p.Surname == term })...)
	out = append(out, s.sortedPersons(func(p domain.Person) bool { return strings.Contains(p.FirstName, term) })...)
	out = append(out, s.sortedPersons(func(p domain.Person) bool { return strings.Contains(p.Surname, term) })...)
	return out, nil
}

func (s *MemoryStore) ListPersons(_ context.Context) ([]domain.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedPersons(func(domain.Person) bool { return true }), nil
}

func (s *MemoryStore) InsertPerson(_ context.Context, firstName, surname, address, email string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextPerson++
	p := domain.Person{
		ID:        s.nextPerson,
		FirstName: firstName,
		Surname:   surname,
		Email:     email,
		Address:   address,
	}
	s.persons[p.ID] = p
	return p.ID, nil
}

func (s *MemoryStore) UpdatePersonField(ctx context.Context, id int64, field domain.PersonField, value string) (bool, error) {
	return s.UpdatePersonFields(ctx, id, map[domain.PersonField]string{field: value})
}

func (s *MemoryStore) UpdatePersonFields(_ context.Context, id int64, fields map[domain.PersonField]string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.persons[id]
	if !ok || len(fields) == 0 {
		return false, nil
	}
	for f, v := range fields {
		if !f.Valid() {
			return false, fmt.Errorf("unknown person field %q", f)
		}
		p.SetField(f, v)
	}
	s.persons[id] = p
	return true, nil
}
