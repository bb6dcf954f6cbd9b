package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	global     *Metrics
	globalOnce sync.Once
)

// Metrics holds the Prometheus collectors for project operations.
//
// Metrics:
//   - pms_stage_advance_total{from,outcome} - advance attempts by outcome
//   - pms_changeset_commits_total{entity,outcome} - change-set commits
//   - pms_search_results_total{target,tier} - candidates returned per search tier
//   - pms_persons_created_total - persons inserted by the reconciler
//   - pms_overdue_projects - overdue projects seen by the last report
type Metrics struct {
	StageAdvance    *prometheus.CounterVec
	ChangeSetCommit *prometheus.CounterVec
	SearchResults   *prometheus.CounterVec
	PersonsCreated  prometheus.Counter
	OverdueProjects prometheus.Gauge
}

// Default returns the process-wide metrics, registering them on first use.
func Default() *Metrics {
	globalOnce.Do(func() {
		global = &Metrics{
			StageAdvance: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "pms_stage_advance_total",
					Help: "Stage gate advance attempts",
				},
				[]string{"from", "outcome"}, // advanced, blocked, terminal, error
			),
			ChangeSetCommit: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "pms_changeset_commits_total",
					Help: "Change-set commits",
				},
				[]string{"entity", "outcome"}, // noop, committed, error
			),
			SearchResults: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "pms_search_results_total",
					Help: "Candidates returned per search tier",
				},
				[]string{"target", "tier"},
			),
			PersonsCreated: promauto.NewCounter(prometheus.CounterOpts{
				Name: "pms_persons_created_total",
				Help: "Persons created by find-or-create",
			}),
			OverdueProjects: promauto.NewGauge(prometheus.GaugeOpts{
				Name: "pms_overdue_projects",
				Help: "Overdue projects found by the last scheduled report",
			}),
		}
	})
	return global
}
