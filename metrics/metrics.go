// Package metrics exports solver counters through Prometheus collectors.
//
// A Recorder owns a private registry so several recorders (one per test, one
// per CLI invocation) never collide on the global default registry. The CLI
// is short-lived, so samples are written once to a node-exporter textfile
// instead of being scraped.
package metrics

import (
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/lvpack/knapsack"
)

const namespace = "lvpack"

// Status label values for lvpack_solves_total.
const (
	StatusOptimal  = "optimal"  // proven optimal
	StatusFeasible = "feasible" // heuristic answer, no proof
	StatusLimited  = "limited"  // search limit hit, incumbent returned
	StatusError    = "error"    // no usable result
)

// Recorder aggregates per-solve observations. It is safe for concurrent use.
type Recorder struct {
	registry *prometheus.Registry

	solves    *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	expanded  prometheus.Counter
	pruned    prometheus.Counter
	queuePeak prometheus.Gauge
	objective *prometheus.GaugeVec

	mu   sync.Mutex
	peak int
}

// NewRecorder creates the collectors and registers them on a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solves_total",
			Help:      "Solves by algorithm and outcome status.",
		}, []string{"algorithm", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_duration_seconds",
			Help:      "Wall-clock time per solve.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"algorithm"}),
		expanded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nodes_expanded_total",
			Help:      "Branch-and-bound nodes expanded.",
		}),
		pruned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nodes_pruned_total",
			Help:      "Branch-and-bound nodes discarded by the bound test.",
		}),
		queuePeak: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "queue_peak",
			Help:      "Largest branch-and-bound work queue seen.",
		}),
		objective: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "objective_value",
			Help:      "Objective of the latest solve per instance.",
		}, []string{"instance"}),
	}
	r.registry.MustRegister(r.solves, r.duration, r.expanded, r.pruned, r.queuePeak, r.objective)

	return r
}

// Registry exposes the underlying registry, e.g. for promhttp.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Observe records one solve. res is the returned Result even when err is
// non-nil, since search limits still yield an incumbent.
func (r *Recorder) Observe(name string, res knapsack.Result, d time.Duration, err error) {
	algo := res.Algo.String()
	status := Status(res, err)
	r.solves.WithLabelValues(algo, status).Inc()
	r.duration.WithLabelValues(algo).Observe(d.Seconds())
	if status == StatusError {
		return
	}

	r.expanded.Add(float64(res.Stats.Expanded))
	r.pruned.Add(float64(res.Stats.Pruned))
	r.mu.Lock()
	if res.Stats.MaxQueue > r.peak {
		r.peak = res.Stats.MaxQueue
		r.queuePeak.Set(float64(r.peak))
	}
	r.mu.Unlock()
	r.objective.WithLabelValues(name).Set(res.Value)
}

// Status classifies a solve outcome.
func Status(res knapsack.Result, err error) string {
	switch {
	case err == nil && res.Optimal:
		return StatusOptimal
	case err == nil:
		return StatusFeasible
	case errors.Is(err, knapsack.ErrSearchLimit):
		return StatusLimited
	default:
		return StatusError
	}
}

// WriteTextfile writes all samples in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
