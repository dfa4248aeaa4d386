package analysis

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeAnalysed = "analysed"
	outcomeCached   = "cached"
	outcomeFailed   = "failed"
)

// Metrics collects the outcome of one run. It is written as a node exporter textfile, the run
// being too short lived to be scraped.
type Metrics struct {
	registry *prometheus.Registry

	jobs      *prometheus.CounterVec
	duration  prometheus.Histogram
	penalties *prometheus.GaugeVec
	twoHanded *prometheus.GaugeVec
	runInfo   *prometheus.GaugeVec
}

func NewMetrics(runID string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		jobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "droidguard",
			Name:      "jobs_total",
			Help:      "Jobs processed, by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "droidguard",
			Name:      "analysis_duration_seconds",
			Help:      "Time spent analysing one replay.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		penalties: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "droidguard",
			Name:      "penalty",
			Help:      "Penalty multiplier of a job, by check.",
		}, []string{"job", "check"}),
		twoHanded: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "droidguard",
			Name:      "two_handed_objects",
			Help:      "Objects hit by the second hand of a job.",
		}, []string{"job"}),
		runInfo: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "droidguard",
			Name:      "run_info",
			Help:      "Identifies the run the metrics belong to.",
		}, []string{"run_id"}),
	}

	m.registry.MustRegister(m.jobs, m.duration, m.penalties, m.twoHanded, m.runInfo)

	m.runInfo.WithLabelValues(runID).Set(1)

	return m
}

func (m *Metrics) Observe(r Report) {
	switch {
	case r.Err != nil:
		m.jobs.WithLabelValues(outcomeFailed).Inc()
		return
	case r.Cached:
		m.jobs.WithLabelValues(outcomeCached).Inc()
	default:
		m.jobs.WithLabelValues(outcomeAnalysed).Inc()
		m.duration.Observe(r.Duration.Seconds())
	}

	m.penalties.WithLabelValues(r.Job, "three_finger").Set(r.ThreeFingerPenalty)
	m.penalties.WithLabelValues(r.Job, "slider_cheese_aim").Set(r.SliderCheeseAim)
	m.penalties.WithLabelValues(r.Job, "slider_cheese_flashlight").Set(r.SliderCheeseFlashlight)
	m.twoHanded.WithLabelValues(r.Job).Set(float64(r.TwoHandedObjects))
}

func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
