package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/pms-backend/internal/metrics"
	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/domain"
)

// OverdueLister is the slice of ProjectService the report needs.
type OverdueLister interface {
	ListOverdue(ctx context.Context) ([]domain.Project, error)
}

type Scheduler struct {
	cron    *cron.Cron
	lister  OverdueLister
	log     *zap.Logger
	metrics *metrics.Metrics
	timeout time.Duration
}

func NewScheduler(lister OverdueLister, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		lister:  lister,
		log:     log,
		metrics: metrics.Default(),
		timeout: 30 * time.Second,
	}
}

// Start registers the overdue report on spec (seconds-first cron syntax) and
// starts the scheduler. An empty spec leaves the scheduler idle.
func (s *Scheduler) Start(spec string) error {
	if spec == "" {
		s.log.Info("overdue report disabled")
		return nil
	}
	if _, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if _, err := s.ReportOverdue(ctx); err != nil {
			s.log.Error("overdue report failed", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("failed to create cron job: %w", err)
	}

	s.log.Info("cron scheduler started", zap.String("overdue_report", spec))
	s.cron.Start()
	return nil
}

// Stop waits for a running report to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// ReportOverdue logs every overdue project and publishes the count.
func (s *Scheduler) ReportOverdue(ctx context.Context) (int, error) {
	overdue, err := s.lister.ListOverdue(ctx)
	if err != nil {
		return 0, err
	}
	s.metrics.OverdueProjects.Set(float64(len(overdue)))
	for _, p := range overdue {
		s.log.Warn("project overdue",
			zap.Int64("project", p.Number),
			zap.String("name", p.Name),
			zap.String("status", p.Status.String()),
			zap.Time("deadline", *p.Deadline))
	}
	s.log.Info("overdue report complete", zap.Int("overdue", len(overdue)))
	return len(overdue), nil
}
