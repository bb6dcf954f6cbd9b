package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/pms-backend/internal/metrics"
	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/domain"
)

// NoSelection is returned by a Selector to reject every candidate.
const NoSelection = -1

// ErrReconcileAborted is returned when the operator backs out of find-or-create.
var ErrReconcileAborted = errors.New("person reconciliation aborted")

// Selector picks one candidate by index, or NoSelection to create a new person.
type Selector interface {
	Select(ctx context.Context, term string, candidates []domain.Person) (int, error)
}

// DetailsCollector gathers the fields of a person about to be created.
type DetailsCollector interface {
	Collect(ctx context.Context, term string) (PersonDetails, error)
}

// SelectorFunc adapts a function to Selector.
type SelectorFunc func(ctx context.Context, term string, candidates []domain.Person) (int, error)

func (f SelectorFunc) Select(ctx context.Context, term string, candidates []domain.Person) (int, error) {
	return f(ctx, term, candidates)
}

// CollectorFunc adapts a function to DetailsCollector.
type CollectorFunc func(ctx context.Context, term string) (PersonDetails, error)

func (f CollectorFunc) Collect(ctx context.Context, term string) (PersonDetails, error) {
	return f(ctx, term)
}

// PersonDetails completes a new person around the search term. TermIsSurname
// says which name part the term was; OtherName fills the other one.
type PersonDetails struct {
	TermIsSurname bool   `json:"term_is_surname"`
	OtherName     string `json:"other_name"`
	Email         string `json:"email"`
	Address       string `json:"address"`
}

// Resolution is the outcome of a find-or-create.
type Resolution struct {
	Person     domain.Person   `json:"person"`
	Created    bool            `json:"created"`
	Candidates []domain.Person `json:"candidates,omitempty"`
}

// Reconciler turns free-text names into stored people.
type Reconciler struct {
	resolver *Resolver
	repo     PersonStore
	log      *zap.Logger
	metrics  *metrics.Metrics
}

func NewReconciler(repo Repository, log *zap.Logger) *Reconciler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reconciler{
		resolver: NewResolver(repo),
		repo:     repo,
		log:      log,
		metrics:  metrics.Default(),
	}
}

// Resolve searches people for term and lets sel choose one. When nothing is
// found or sel declines, collect supplies the remaining fields and a new person
// is inserted. A selected person is returned as stored, with no merging.
func (r *Reconciler) Resolve(ctx context.Context, term string, sel Selector, collect DetailsCollector) (Resolution, error) {
	found, err := r.resolver.SearchPeople(ctx, Query{Term: term})
	if err != nil {
		return Resolution{}, err
	}
	candidates := distinctPeople(found)

	if len(candidates) > 0 {
		idx, err := sel.Select(ctx, term, candidates)
		if err != nil {
			return Resolution{}, err
		}
		if idx != NoSelection {
			if idx < 0 || idx >= len(candidates) {
				v := strconv.Itoa(idx)
				return Resolution{}, &domain.ValidationError{
					Field:         "selection",
					Code:          domain.CodeOutOfRange,
					Reason:        fmt.Sprintf("choose 0..%d or create new", len(candidates)-1),
					RejectedValue: &v,
				}
			}
			return Resolution{Person: candidates[idx], Candidates: candidates}, nil
		}
	}

	details, err := collect.Collect(ctx, term)
	if err != nil {
		return Resolution{}, err
	}
	p, err := BuildPerson(term, details)
	if err != nil {
		return Resolution{}, err
	}

	id, err := r.repo.InsertPerson(ctx, p.FirstName, p.Surname, p.Address, p.Email)
	if err != nil {
		return Resolution{}, domain.WrapPersistence("insert person", err)
	}
	p.ID = id
	r.metrics.PersonsCreated.Inc()
	r.log.Info("person created", zap.Int64("person", id), zap.String("name", p.FullName()))
	return Resolution{Person: p, Created: true, Candidates: candidates}, nil
}

// BuildPerson validates details around term and returns an unsaved person.
func BuildPerson(term string, d PersonDetails) (domain.Person, error) {
	first, surname := d.OtherName, term
	if !d.TermIsSurname {
		first, surname = term, d.OtherName
	}

	var p domain.Person
	for _, kv := range []struct {
		field domain.PersonField
		value string
	}{
		{domain.PersonFirstName, first},
		{domain.PersonSurname, surname},
		{domain.PersonEmail, d.Email},
		{domain.PersonAddress, d.Address},
	} {
		v, err := domain.NormalizePersonValue(kv.field, kv.value)
		if err != nil {
			return domain.Person{}, err
		}
		p.SetField(kv.field, v)
	}
	return p, nil
}

// distinctPeople keeps the first occurrence of each id so a person matched by
// several tiers is offered once, at its best rank.
func distinctPeople(in []domain.Person) []domain.Person {
	seen := make(map[int64]struct{}, len(in))
	out := make([]domain.Person, 0, len(in))
	for _, p := range in {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}
