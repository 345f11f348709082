package metrics

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/patterns/core/metrics"
)

// PromSink records executions in Prometheus metrics.
type PromSink struct {
	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
	lookups  *prometheus.CounterVec
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer. Collectors
// already registered by a previous sink are reused.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "executor_runs_total",
		Help: "Total number of commands run, by executor and outcome",
	}, []string{"executor", "type", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "executor_run_duration_seconds",
		Help:    "Wall time of a command run including connection setup",
		Buckets: prometheus.DefBuckets,
	}, []string{"executor", "type"})
	lookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "executor_lookups_total",
		Help: "Executor registry lookups, by name and result",
	}, []string{"name", "found"})

	var err error
	if runs, err = register(reg, runs); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}
	if lookups, err = register(reg, lookups); err != nil {
		return nil, err
	}
	return &PromSink{runs: runs, duration: duration, lookups: lookups}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordExecution increments the run counter and observes the duration.
func (s *PromSink) RecordExecution(rec coremetrics.ExecutionRecord) error {
	s.runs.WithLabelValues(rec.Executor, rec.Type, rec.Outcome()).Inc()
	s.duration.WithLabelValues(rec.Executor, rec.Type).Observe(rec.Duration.Seconds())
	return nil
}

// RecordLookup counts registry lookups.
func (s *PromSink) RecordLookup(rec coremetrics.LookupRecord) error {
	s.lookups.WithLabelValues(rec.Name, strconv.FormatBool(rec.Found)).Inc()
	return nil
}
