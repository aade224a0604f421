package web

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"linecalc/internal/throughput"
)

type metrics struct {
	registry     *prometheus.Registry
	calculations *prometheus.CounterVec
	cycleSeconds prometheus.Histogram
	efficiency   prometheus.Gauge
}

// newMetrics uses its own registry so several servers can coexist in one
// process.
func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "linecalc_calculations_total",
			Help: "Throughput calculations by outcome",
		}, []string{"outcome"}),
		cycleSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "linecalc_effective_cycle_seconds",
			Help:    "Effective cycle time of successful calculations",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 12),
		}),
		efficiency: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "linecalc_last_efficiency_percent",
			Help: "Efficiency of the most recent successful calculation",
		}),
	}
	m.registry.MustRegister(m.calculations, m.cycleSeconds, m.efficiency)
	return m
}

func (m *metrics) observe(res throughput.Result, err error) {
	switch {
	case err == nil:
		m.calculations.WithLabelValues("ok").Inc()
		m.cycleSeconds.Observe(res.EffectiveCycleSeconds)
		m.efficiency.Set(res.EfficiencyPercent)
	case errors.Is(err, throughput.ErrInvalidInput):
		m.calculations.WithLabelValues("invalid").Inc()
	default:
		m.calculations.WithLabelValues("error").Inc()
	}
}
