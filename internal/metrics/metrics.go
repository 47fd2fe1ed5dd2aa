// Package metrics turns profiling lifecycle events into Prometheus metrics
// and can export them as a node-exporter textfile.
package metrics

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/leengari/relprofile/internal/profiling"
)

// Metrics holds all Prometheus collectors for profiling runs.
// It implements profiling.Observer.
type Metrics struct {
	registry *prometheus.Registry
	mu       sync.Mutex
	maxLevel float64

	RunsTotal          *prometheus.CounterVec
	RunDuration        *prometheus.HistogramVec
	CandidatesTotal    prometheus.Counter
	PrunedTotal        prometheus.Counter
	IntersectionsTotal prometheus.Counter
	UCCsTotal          prometheus.Counter
	INDsTotal          prometheus.Counter
	LatticeLevelMax    prometheus.Gauge
}

// New creates all collectors on a private registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relprofile_runs_total",
				Help: "Total profiling runs by kind (ucc, ind).",
			},
			[]string{"kind"},
		),
		RunDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "relprofile_run_duration_seconds",
				Help:    "Profiling run duration in seconds.",
				Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 30, 120},
			},
			[]string{"kind"},
		),
		CandidatesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "relprofile_candidates_total",
				Help: "Attribute combinations generated by the lattice search.",
			},
		),
		PrunedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "relprofile_pruned_total",
				Help: "Candidates skipped as supersets of a known UCC.",
			},
		),
		IntersectionsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "relprofile_pli_intersections_total",
				Help: "Position list index intersections computed.",
			},
		),
		UCCsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "relprofile_uccs_total",
				Help: "Minimal unique column combinations found.",
			},
		),
		INDsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "relprofile_inds_total",
				Help: "Unary inclusion dependencies found.",
			},
		),
		LatticeLevelMax: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "relprofile_lattice_level_max",
				Help: "Deepest lattice level reached by any UCC run.",
			},
		),
	}

	m.registry.MustRegister(
		m.RunsTotal,
		m.RunDuration,
		m.CandidatesTotal,
		m.PrunedTotal,
		m.IntersectionsTotal,
		m.UCCsTotal,
		m.INDsTotal,
		m.LatticeLevelMax,
	)

	return m
}

// Registry exposes the private registry, e.g. for promhttp or tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// OnEvent implements profiling.Observer
func (m *Metrics) OnEvent(event profiling.Event) {
	switch event.Type {
	case profiling.EventLevelEnd:
		stats, ok := event.Data.(profiling.LevelStats)
		if !ok {
			return
		}
		m.CandidatesTotal.Add(float64(stats.Candidates))
		m.PrunedTotal.Add(float64(stats.Pruned))
		m.IntersectionsTotal.Add(float64(stats.Intersections))

	case profiling.EventUCCFound:
		m.UCCsTotal.Inc()

	case profiling.EventINDFound:
		m.INDsTotal.Inc()

	case profiling.EventRunEnd:
		kind := string(event.Kind)
		m.RunsTotal.WithLabelValues(kind).Inc()
		summary, ok := event.Data.(profiling.RunSummary)
		if !ok {
			return
		}
		m.RunDuration.WithLabelValues(kind).Observe(summary.Duration.Seconds())
		if summary.Levels > 0 {
			m.raiseLevel(float64(summary.Levels))
		}
	}
}

func (m *Metrics) raiseLevel(level float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if level > m.maxLevel {
		m.maxLevel = level
		m.LatticeLevelMax.Set(level)
	}
}

// WriteTextfile writes all metrics in the Prometheus text format to path
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", path, err)
	}
	return nil
}
