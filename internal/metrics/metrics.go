package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/umuturukk/de-propulsion-v2.0/internal/combination"
	"github.com/umuturukk/de-propulsion-v2.0/internal/model"
)

const (
	namespace = "deprop"

	decisionsTotal       = "optimizer_decisions_total"
	infeasibleTotal      = "optimizer_infeasible_total"
	sweepDurationSeconds = "sweep_duration_seconds"
	sweepSamplesTotal    = "sweep_samples_total"

	// Labels
	modeLabel     = "mode"
	strategyLabel = "strategy"
)

/**
* Metrics definition
**/
var decisionsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      decisionsTotal,
		Help:      "number of optimizer decisions by operating mode and winning strategy",
	},
	[]string{modeLabel, strategyLabel},
)

var infeasibleTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      infeasibleTotal,
		Help:      "number of demand points no generator combination could carry",
	},
	[]string{modeLabel},
)

var sweepDurationMetric = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      sweepDurationSeconds,
		Help:      "wall time of complete sweeps",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
	},
)

var sweepSamplesMetric = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      sweepSamplesTotal,
		Help:      "number of shaft-power samples evaluated by sweeps",
	},
)

// ObserveDecision records one optimizer result. It matches sweep.Observer.
func ObserveDecision(mode model.Mode, res combination.Result) {
	decisionsTotalMetric.With(prometheus.Labels{
		modeLabel:     string(mode),
		strategyLabel: res.Strategy.String(),
	}).Inc()
	if !res.Feasible() {
		infeasibleTotalMetric.With(prometheus.Labels{modeLabel: string(mode)}).Inc()
	}
}

func ObserveSweep(samples int, took time.Duration) {
	sweepDurationMetric.Observe(took.Seconds())
	sweepSamplesMetric.Add(float64(samples))
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(decisionsTotalMetric)
	prometheus.MustRegister(infeasibleTotalMetric)
	prometheus.MustRegister(sweepDurationMetric)
	prometheus.MustRegister(sweepSamplesMetric)
}
