package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/pms-backend/internal/metrics"
	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/domain"
)

// PersonEditor is the person counterpart of ProjectEditor.
type PersonEditor struct {
	repo     PersonStore
	baseline domain.Person
	changes  changeSet[domain.PersonField, string]
	log      *zap.Logger
	metrics  *metrics.Metrics
}

func NewPersonEditor(repo PersonStore, p domain.Person, log *zap.Logger) *PersonEditor {
	if log == nil {
		log = zap.NewNop()
	}
	return &PersonEditor{
		repo:     repo,
		baseline: p,
		changes:  newChangeSet[domain.PersonField, string](),
		log:      log,
		metrics:  metrics.Default(),
	}
}

func (e *PersonEditor) Person() domain.Person { return e.baseline }

func (e *PersonEditor) Propose(field domain.PersonField, value string) error {
	v, err := domain.NormalizePersonValue(field, value)
	if err != nil {
		return err
	}
	e.changes.propose(field, v, e.baseline.FieldValue(field), func(a, b string) bool { return a == b })
	return nil
}

func (e *PersonEditor) HasPendingChanges() bool { return len(e.changes.pending) > 0 }

func (e *PersonEditor) Pending() map[domain.PersonField]string { return e.changes.snapshot() }

func (e *PersonEditor) Discard() { e.changes.clear() }

// Commit writes pending entries with one UpdatePersonFields call.
func (e *PersonEditor) Commit(ctx context.Context) (*domain.Person, error) {
	if !e.HasPendingChanges() {
		e.metrics.ChangeSetCommit.WithLabelValues("person", "noop").Inc()
		p := e.baseline
		return &p, nil
	}

	fields := e.changes.snapshot()
	modified, err := e.repo.UpdatePersonFields(ctx, e.baseline.ID, fields)
	if err == nil && !modified {
		err = domain.ErrPersonNotFound
	}
	if err != nil {
		e.metrics.ChangeSetCommit.WithLabelValues("person", "error").Inc()
		e.log.Warn("person commit failed", zap.Int64("person", e.baseline.ID), zap.Error(err))
		return nil, domain.WrapPersistence("update person fields", err)
	}

	fresh, err := e.repo.FetchPersonByID(ctx, e.baseline.ID)
	if err != nil {
		e.metrics.ChangeSetCommit.WithLabelValues("person", "error").Inc()
		return nil, domain.WrapPersistence("fetch person", err)
	}
	e.baseline = *fresh
	e.changes.clear()
	e.metrics.ChangeSetCommit.WithLabelValues("person", "committed").Inc()
	return fresh, nil
}
