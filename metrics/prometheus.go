package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultOK        = "ok"
	ResultTransport = "transport"
	ResultService   = "service"
	ResultMalformed = "malformed"
)

type Metrics struct {
	Fetches          *prometheus.CounterVec
	FetchDuration    prometheus.Histogram
	FetchedSubms     prometheus.Histogram
	UnsolvedProblems prometheus.Histogram
	Throttled        prometheus.Counter
}

// New registers the collectors with reg. Use a fresh registry per Metrics;
// registering twice with the same registerer panics.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Fetches: f.NewCounterVec(prometheus.CounterOpts{
			Name: "unsolved_fetches_total",
			Help: "Submission history fetches by result",
		}, []string{"result"}),
		FetchDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "unsolved_fetch_duration_seconds",
			Help:    "Time spent fetching a submission history from the judge",
			Buckets: prometheus.DefBuckets,
		}),
		FetchedSubms: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "unsolved_fetched_submissions",
			Help:    "Number of submissions in a fetched history",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
		UnsolvedProblems: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "unsolved_problems",
			Help:    "Number of unsolved problems per computed handle",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		Throttled: f.NewCounter(prometheus.CounterOpts{
			Name: "unsolved_throttled_requests_total",
			Help: "Requests rejected by the per-handle cooldown",
		}),
	}
}

// The methods below are no-ops on a nil *Metrics.

func (m *Metrics) ObserveFetch(result string, d time.Duration) {
	if m == nil {
		return
	}
	m.Fetches.WithLabelValues(result).Inc()
	m.FetchDuration.Observe(d.Seconds())
}

func (m *Metrics) ObserveRun(submissions, unsolved int) {
	if m == nil {
		return
	}
	m.FetchedSubms.Observe(float64(submissions))
	m.UnsolvedProblems.Observe(float64(unsolved))
}

func (m *Metrics) IncThrottled() {
	if m == nil {
		return
	}
	m.Throttled.Inc()
}
