package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/GoSim-25-26J-441/pms-backend/internal/metrics"
	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/domain"
)

// Query is a free-text search request. AllOnEmpty makes a blank term return
// every record instead of nothing.
type Query struct {
	Field      domain.SearchField
	Term       string
	AllOnEmpty bool
}

func (q Query) blank() bool { return strings.TrimSpace(q.Term) == "" }

// Resolver turns search terms into candidate lists for manual selection.
type Resolver struct {
	repo    Repository
	metrics *metrics.Metrics
}

func NewResolver(repo Repository) *Resolver {
	return &Resolver{repo: repo, metrics: metrics.Default()}
}

// SearchProjects returns exact matches followed by substring matches. A
// project matching both tiers appears twice.
func (r *Resolver) SearchProjects(ctx context.Context, q Query) ([]domain.Project, error) {
	if !q.Field.Valid() {
		v := string(q.Field)
		return nil, &domain.ValidationError{
			Field:         "field",
			Code:          domain.CodeInvalidEnum,
			Reason:        "search field must be name or address",
			RejectedValue: &v,
		}
	}
	if q.blank() {
		if !q.AllOnEmpty {
			return []domain.Project{}, nil
		}
		all, err := r.repo.ListProjects(ctx, domain.ProjectFilter{Scope: domain.ScopeAll})
		return all, domain.WrapPersistence("list projects", err)
	}

	exact, err := r.repo.SearchProjects(ctx, q.Field, domain.MatchExact, q.Term)
	if err != nil {
		return nil, domain.WrapPersistence("search projects exact", err)
	}
	fuzzy, err := r.repo.SearchProjects(ctx, q.Field, domain.MatchContains, q.Term)
	if err != nil {
		return nil, domain.WrapPersistence("search projects contains", err)
	}

	target := fmt.Sprintf("project_%s", q.Field)
	r.metrics.SearchResults.WithLabelValues(target, "exact").Add(float64(len(exact)))
	r.metrics.SearchResults.WithLabelValues(target, "contains").Add(float64(len(fuzzy)))

	out := make([]domain.Project, 0, len(exact)+len(fuzzy))
	out = append(out, exact...)
	return append(out, fuzzy...), nil
}

// SearchPeople matches the term against first name or surname. The repository
// orders results first-name exact, surname exact, then the two substring tiers.
func (r *Resolver) SearchPeople(ctx context.Context, q Query) ([]domain.Person, error) {
	if q.blank() {
		if !q.AllOnEmpty {
			return []domain.Person{}, nil
		}
		all, err := r.repo.ListPersons(ctx)
		return all, domain.WrapPersistence("list persons", err)
	}

	people, err := r.repo.SearchPersons(ctx, q.Term)
	if err != nil {
		return nil, domain.WrapPersistence("search persons", err)
	}
	r.metrics.SearchResults.WithLabelValues("person", "all").Add(float64(len(people)))
	if people == nil {
		people = []domain.Person{}
	}
	return people, nil
}
