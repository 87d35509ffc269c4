// Package observability exposes the harness's trial accounting as
// Prometheus metrics. Metrics are fed through runner hooks, so the trial
// loop itself stays free of instrumentation.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"platcheck/pkg/domain"
	"platcheck/pkg/oracle"
	"platcheck/pkg/runner"
)

// Metrics holds the Prometheus collectors for one harness process.
type Metrics struct {
	trials      *prometheus.CounterVec
	failures    prometheus.Counter
	shrinkSteps prometheus.Counter
	campaign    prometheus.Gauge
	duration    prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with the given
// registerer. Pass prometheus.DefaultRegisterer for the usual process-wide
// registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		trials: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "platcheck_trials_total",
				Help: "Total number of trials, by verdict",
			},
			[]string{"verdict"},
		),
		failures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "platcheck_failures_total",
				Help: "Total number of falsified round-trip properties",
			},
		),
		shrinkSteps: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "platcheck_shrink_steps_total",
				Help: "Total number of accepted shrink reductions",
			},
		),
		campaign: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "platcheck_campaign_running",
				Help: "1 while a campaign is in progress",
			},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "platcheck_campaign_duration_seconds",
				Help:    "Duration of completed campaigns",
				Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
			},
		),
	}
	reg.MustRegister(m.trials, m.failures, m.shrinkSteps, m.campaign, m.duration)
	return m
}

// Hooks returns runner hooks that record every verdict, failure and shrink
// step into the collectors.
func (m *Metrics) Hooks() runner.Hooks {
	return runner.Hooks{
		OnTrial: func(v oracle.Verdict) {
			m.trials.WithLabelValues(v.Kind.String()).Inc()
		},
		OnFailure: func(*domain.Failure) {
			m.failures.Inc()
		},
		OnShrink: func(string) {
			m.shrinkSteps.Inc()
		},
	}
}

// CampaignStarted marks a campaign as in progress.
func (m *Metrics) CampaignStarted() {
	m.campaign.Set(1)
}

// CampaignFinished clears the in-progress gauge and records the elapsed
// time from the summary.
func (m *Metrics) CampaignFinished(summary *domain.Summary) {
	m.campaign.Set(0)
	if summary != nil {
		m.duration.Observe(summary.Elapsed.Seconds())
	}
}
