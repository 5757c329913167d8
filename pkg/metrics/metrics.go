// Package metrics exports Prometheus counters for validation passes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/formrules/pkg/validator"
)

const namespace = "formrules"

// Metrics counts validation passes and rule failures. It satisfies
// formbind.Observer.
type Metrics struct {
	passes       *prometheus.CounterVec
	ruleFailures *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		passes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "passes_total",
				Help:      "Total number of completed validation passes by result",
			},
			[]string{"result"},
		),
		ruleFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rule_failures_total",
				Help:      "Total number of reported rule failures by rule name",
			},
			[]string{"rule"},
		),
	}

	for _, c := range []prometheus.Collector{m.passes, m.ruleFailures} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObservePass records one completed pass and each rule failure it reported.
func (m *Metrics) ObservePass(failed bool, errs validator.ValidationErrors) {
	result := "passed"
	if failed {
		result = "failed"
	}
	m.passes.WithLabelValues(result).Inc()

	for _, e := range errs {
		m.ruleFailures.WithLabelValues(e.Rule).Inc()
	}
}
