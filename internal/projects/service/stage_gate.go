package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/pms-backend/internal/metrics"
	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/domain"
)

// guard returns "" when the project may leave its current stage, otherwise the unmet precondition.
type guard func(p *domain.Project) string

var stageGuards = map[domain.ProjectStatus]guard{
	domain.StatusCaptured: func(p *domain.Project) string {
		switch {
		case !p.HasAddress() && p.ERF <= 0:
			return "address and ERF number are required"
		case !p.HasAddress():
			return "address is required"
		case p.ERF <= 0:
			return "ERF number is required"
		}
		return ""
	},
	domain.StatusLogged: func(p *domain.Project) string {
		if p.ArchitectID == nil {
			return "architect must be assigned"
		}
		return ""
	},
	domain.StatusConcept: func(p *domain.Project) string {
		if p.EngineerID == nil {
			return "engineer must be assigned"
		}
		return ""
	},
	domain.StatusPreFeasibility: func(p *domain.Project) string {
		if p.ProjectManagerID == nil {
			return "project manager must be assigned"
		}
		return ""
	},
	domain.StatusBankable: func(p *domain.Project) string {
		if !p.TotalFee.IsPositive() {
			return "total fee must be greater than zero"
		}
		return ""
	},
	domain.StatusConstruction: func(p *domain.Project) string {
		if !p.TotalPaid.IsPositive() {
			return "total paid must be greater than zero"
		}
		return ""
	},
}

// AdvanceResult reports what an advance attempt did. A blocked advance is a
// normal outcome carried in Reason, not an error.
type AdvanceResult struct {
	Advanced bool                 `json:"advanced"`
	Terminal bool                 `json:"terminal,omitempty"`
	From     domain.ProjectStatus `json:"from"`
	To       domain.ProjectStatus `json:"to"`
	Reason   string               `json:"reason,omitempty"`
}

// StageGate moves projects one stage forward when the stage's precondition holds.
type StageGate struct {
	repo    ProjectStore
	log     *zap.Logger
	metrics *metrics.Metrics
}

func NewStageGate(repo ProjectStore, log *zap.Logger) *StageGate {
	if log == nil {
		log = zap.NewNop()
	}
	return &StageGate{repo: repo, log: log, metrics: metrics.Default()}
}

// Check evaluates the guard for p's current stage without touching storage.
func (g *StageGate) Check(p *domain.Project) AdvanceResult {
	res := AdvanceResult{From: p.Status, To: p.Status}
	next, ok := p.Status.Next()
	if !ok {
		res.Terminal = p.Status.IsFinal()
		if !res.Terminal {
			res.Reason = fmt.Sprintf("unknown status %d", p.Status.Rank())
		}
		return res
	}
	if reason := stageGuards[p.Status](p); reason != "" {
		res.Reason = reason
		return res
	}
	res.To = next
	return res
}

// Advance issues a single status update when the guard holds and mirrors it
// into p. On any failure p.Status is left as it was.
func (g *StageGate) Advance(ctx context.Context, p *domain.Project) (AdvanceResult, error) {
	res := g.Check(p)
	from := p.Status.Key()
	if res.Terminal || res.Reason != "" {
		outcome := "blocked"
		if res.Terminal {
			outcome = "terminal"
		}
		g.metrics.StageAdvance.WithLabelValues(from, outcome).Inc()
		g.log.Debug("advance not performed",
			zap.Int64("project", p.Number),
			zap.String("status", p.Status.String()),
			zap.String("outcome", outcome),
			zap.String("reason", res.Reason))
		return res, nil
	}

	modified, err := g.repo.UpdateProjectStatus(ctx, p.Number, res.To.Rank())
	if err == nil && !modified {
		err = domain.ErrProjectNotFound
	}
	if err != nil {
		g.metrics.StageAdvance.WithLabelValues(from, "error").Inc()
		g.log.Warn("advance failed", zap.Int64("project", p.Number), zap.Error(err))
		return AdvanceResult{From: p.Status, To: p.Status}, domain.WrapPersistence("update project status", err)
	}

	p.Status = res.To
	res.Advanced = true
	g.metrics.StageAdvance.WithLabelValues(from, "advanced").Inc()
	g.log.Info("project advanced",
		zap.Int64("project", p.Number),
		zap.String("from", res.From.String()),
		zap.String("to", res.To.String()))
	return res, nil
}
