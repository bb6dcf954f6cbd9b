package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/domain"
)

// PersonService handles person lookup, find-or-create and edits.
type PersonService struct {
	repo       Repository
	resolver   *Resolver
	reconciler *Reconciler
	log        *zap.Logger
}

func NewPersonService(repo Repository, log *zap.Logger) *PersonService {
	if log == nil {
		log = zap.NewNop()
	}
	return &PersonService{
		repo:       repo,
		resolver:   NewResolver(repo),
		reconciler: NewReconciler(repo, log),
		log:        log,
	}
}

func (s *PersonService) Search(ctx context.Context, term string, all bool) ([]domain.Person, error) {
	return s.resolver.SearchPeople(ctx, Query{Term: term, AllOnEmpty: all})
}

func (s *PersonService) Get(ctx context.Context, id int64) (*domain.Person, error) {
	p, err := s.repo.FetchPersonByID(ctx, id)
	if err != nil {
		return nil, domain.WrapPersistence("fetch person", err)
	}
	return p, nil
}

// FindOrCreate runs the reconciler for term.
func (s *PersonService) FindOrCreate(ctx context.Context, term string, sel Selector, collect DetailsCollector) (Resolution, error) {
	return s.reconciler.Resolve(ctx, term, sel, collect)
}

// Update stages every entry of changes and commits them together. Nothing is
// written if any entry fails validation.
func (s *PersonService) Update(ctx context.Context, id int64, changes map[string]string) (*domain.Person, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	editor := NewPersonEditor(s.repo, *p, s.log)

	keys := make([]string, 0, len(changes))
	for k := range changes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		f, err := domain.ParsePersonField(k)
		if err != nil {
			return nil, err
		}
		if err := editor.Propose(f, changes[k]); err != nil {
			return nil, err
		}
	}
	return editor.Commit(ctx)
}
