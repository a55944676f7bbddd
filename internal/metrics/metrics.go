// Package metrics exposes Prometheus collectors for the crawl pipeline.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	companiesTotal    *prometheus.CounterVec
	jobMatchesTotal   prometheus.Counter
	batchesTotal      prometheus.Counter
	eligibleCompanies prometheus.Gauge

	once sync.Once
)

// Init initializes the Prometheus collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		companiesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jobscout_companies_total",
				Help: "Companies processed, labeled by outcome (succeeded or failure reason).",
			},
			[]string{"outcome"},
		)
		jobMatchesTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "jobscout_job_matches_total",
				Help: "Distinct keyword matches found across all career pages.",
			},
		)
		batchesTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "jobscout_batches_total",
				Help: "Batches run since process start.",
			},
		)
		eligibleCompanies = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "jobscout_eligible_companies",
				Help: "Eligible companies observed at the start of the latest batch.",
			},
		)
	})
}

// ObserveOutcome counts one processed company by outcome label.
func ObserveOutcome(outcome string) {
	if companiesTotal != nil {
		companiesTotal.WithLabelValues(outcome).Inc()
	}
}

// ObserveMatches counts keyword matches.
func ObserveMatches(n int) {
	if jobMatchesTotal != nil && n > 0 {
		jobMatchesTotal.Add(float64(n))
	}
}

// ObserveBatch counts a batch run and records the eligible set size.
func ObserveBatch(eligible int) {
	if batchesTotal != nil {
		batchesTotal.Inc()
	}
	if eligibleCompanies != nil {
		eligibleCompanies.Set(float64(eligible))
	}
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
