package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/bessplan/core/metrics"
)

// PromSink records optimization runs in Prometheus metrics.
type PromSink struct {
	solves    *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	objective *prometheus.GaugeVec
	netCost   *prometheus.GaugeVec
}

// NewPromSink registers solve metrics on the default Prometheus registerer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	solves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "optimization_solves_total",
		Help: "Total number of optimization runs",
	}, []string{"application", "outcome", "synthetic"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "optimization_solve_duration_seconds",
		Help:    "Wall-clock time spent in model assembly and solve",
		Buckets: prometheus.DefBuckets,
	}, []string{"application", "outcome"})
	objective := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "optimization_objective",
		Help: "Objective value of the last solved run",
	}, []string{"application"})
	netCost := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "optimization_net_cost",
		Help: "Net annual cost of the last solved run",
	}, []string{"application"})

	for _, c := range []prometheus.Collector{solves, duration, objective, netCost} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, err
			}
		}
	}
	return &PromSink{solves: solves, duration: duration, objective: objective, netCost: netCost}, nil
}

// RecordSolve updates the counters and gauges for one run.
func (s *PromSink) RecordSolve(rec coremetrics.SolveRecord) error {
	s.solves.WithLabelValues(rec.Application, rec.Outcome, strconv.FormatBool(rec.Synthetic)).Inc()
	s.duration.WithLabelValues(rec.Application, rec.Outcome).Observe(rec.Duration.Seconds())
	if rec.Outcome == "solved" {
		s.objective.WithLabelValues(rec.Application).Set(rec.Objective)
		s.netCost.WithLabelValues(rec.Application).Set(rec.NetCost)
	}
	return nil
}
