package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/pms-backend/internal/metrics"
	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/domain"
)

// changeSet holds net differences from a baseline. Setting a field back to
// its baseline value drops the entry.
type changeSet[F comparable, V any] struct {
	pending map[F]V
}

func newChangeSet[F comparable, V any]() changeSet[F, V] {
	return changeSet[F, V]{pending: make(map[F]V)}
}

func (c *changeSet[F, V]) propose(field F, value, baseline V, equal func(a, b V) bool) {
	if equal(value, baseline) {
		delete(c.pending, field)
		return
	}
	c.pending[field] = value
}

func (c *changeSet[F, V]) snapshot() map[F]V {
	out := make(map[F]V, len(c.pending))
	for k, v := range c.pending {
		out[k] = v
	}
	return out
}

func (c *changeSet[F, V]) clear() { c.pending = make(map[F]V) }

// ProjectEditor stages edits against one project snapshot and writes them with
// a single repository call.
type ProjectEditor struct {
	repo     ProjectStore
	baseline domain.Project
	changes  changeSet[domain.ProjectField, any]
	log      *zap.Logger
	metrics  *metrics.Metrics
}

func NewProjectEditor(repo ProjectStore, p domain.Project, log *zap.Logger) *ProjectEditor {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProjectEditor{
		repo:     repo,
		baseline: p,
		changes:  newChangeSet[domain.ProjectField, any](),
		log:      log,
		metrics:  metrics.Default(),
	}
}

// Project returns the last committed snapshot.
func (e *ProjectEditor) Project() domain.Project { return e.baseline }

// Propose validates value for field and stages it. Invalid values never enter
// the pending set.
func (e *ProjectEditor) Propose(field domain.ProjectField, value any) error {
	v, err := domain.NormalizeProjectValue(field, value)
	if err != nil {
		return err
	}
	e.stage(field, v)
	return nil
}

// ProposeText parses operator text for field and stages the result.
func (e *ProjectEditor) ProposeText(field domain.ProjectField, text string) error {
	v, err := domain.ParseProjectValue(field, text)
	if err != nil {
		return err
	}
	e.stage(field, v)
	return nil
}

func (e *ProjectEditor) stage(field domain.ProjectField, v any) {
	e.changes.propose(field, v, e.baseline.FieldValue(field), func(a, b any) bool {
		return domain.ProjectValuesEqual(field, a, b)
	})
}

func (e *ProjectEditor) HasPendingChanges() bool { return len(e.changes.pending) > 0 }

// Pending returns a copy of the staged canonical values.
func (e *ProjectEditor) Pending() map[domain.ProjectField]any { return e.changes.snapshot() }

// PendingText renders the staged values as text accepted by ProposeText.
func (e *ProjectEditor) PendingText() map[string]string {
	out := make(map[string]string, len(e.changes.pending))
	for f, v := range e.changes.pending {
		out[string(f)] = domain.FormatProjectValue(f, v)
	}
	return out
}

func (e *ProjectEditor) Discard() { e.changes.clear() }

// Warnings flags suspicious but accepted combinations in the would-be state.
// Total paid above total fee is reported here and not rejected.
func (e *ProjectEditor) Warnings() []string {
	preview := e.baseline
	for f, v := range e.changes.pending {
		switch f {
		case domain.FieldTotalFee, domain.FieldTotalPaid:
			preview.SetField(f, v)
		}
	}
	var out []string
	if preview.TotalPaid.GreaterThan(preview.TotalFee) {
		out = append(out, "total paid ("+preview.TotalPaid.StringFixed(2)+") exceeds total fee ("+preview.TotalFee.StringFixed(2)+")")
	}
	return out
}

// Commit writes all pending entries in one UpdateProjectFields call and
// re-fetches the project. With nothing pending it returns the baseline without
// touching the repository. On failure the pending set is kept.
func (e *ProjectEditor) Commit(ctx context.Context) (*domain.Project, error) {
	if !e.HasPendingChanges() {
		e.metrics.ChangeSetCommit.WithLabelValues("project", "noop").Inc()
		p := e.baseline
		return &p, nil
	}

	fields := e.changes.snapshot()
	modified, err := e.repo.UpdateProjectFields(ctx, e.baseline.Number, fields)
	if err == nil && !modified {
		err = domain.ErrProjectNotFound
	}
	if err != nil {
		e.metrics.ChangeSetCommit.WithLabelValues("project", "error").Inc()
		e.log.Warn("project commit failed", zap.Int64("project", e.baseline.Number), zap.Error(err))
		return nil, domain.WrapPersistence("update project fields", err)
	}

	fresh, err := e.repo.FetchProjectByID(ctx, e.baseline.Number)
	if err != nil {
		e.metrics.ChangeSetCommit.WithLabelValues("project", "error").Inc()
		return nil, domain.WrapPersistence("fetch project", err)
	}

	e.baseline = *fresh
	e.changes.clear()
	e.metrics.ChangeSetCommit.WithLabelValues("project", "committed").Inc()
	e.log.Info("project committed", zap.Int64("project", fresh.Number), zap.Int("fields", len(fields)))
	return fresh, nil
}
