package job

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values for job runs.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics records job run outcomes and durations. A nil *Metrics records
// nothing.
type Metrics struct {
	runs        *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	lastSuccess *prometheus.GaugeVec
}

// NewMetrics creates the job collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tasklog",
			Name:      "job_runs_total",
			Help:      "Scheduled job runs by job name and outcome.",
		}, []string{"job", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tasklog",
			Name:      "job_run_duration_seconds",
			Help:      "Scheduled job run duration by job name.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"job"}),
		lastSuccess: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "tasklog",
			Name:      "job_last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run by job name.",
		}, []string{"job"}),
	}

	for _, c := range []prometheus.Collector{m.runs, m.duration, m.lastSuccess} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observe(job string, err error, started time.Time, elapsed time.Duration) {
	if m == nil {
		return
	}

	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}

	m.runs.WithLabelValues(job, outcome).Inc()
	m.duration.WithLabelValues(job).Observe(elapsed.Seconds())
	if err == nil {
		m.lastSuccess.WithLabelValues(job).Set(float64(started.Add(elapsed).Unix()))
	}
}
