package metrics

import "github.com/prometheus/client_golang/prometheus"

// IntakeMetrics exposes counters/histograms for the quote intake pipeline.
type IntakeMetrics struct {
	submissionsTotal     *prometheus.CounterVec
	attachmentsTotal     *prometheus.CounterVec
	notificationFailures prometheus.Counter
	intakeLatency        prometheus.Histogram
}

func NewIntakeMetrics(reg prometheus.Registerer) *IntakeMetrics {
	m := &IntakeMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "grillshine",
			Subsystem: "intake",
			Name:      "submissions_total",
			Help:      "Total quote form submissions by outcome",
		}, []string{"outcome"}),
		attachmentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "grillshine",
			Subsystem: "intake",
			Name:      "attachments_total",
			Help:      "Total attachment save attempts by result",
		}, []string{"result"}),
		notificationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "grillshine",
			Subsystem: "intake",
			Name:      "notification_failures_total",
			Help:      "Total failed submission notifications",
		}),
		intakeLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "grillshine",
			Subsystem: "intake",
			Name:      "latency_seconds",
			Help:      "Latency of successful quote submissions",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.attachmentsTotal, m.notificationFailures, m.intakeLatency)
	return m
}

func (m *IntakeMetrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(outcome).Inc()
}

func (m *IntakeMetrics) ObserveAttachment(result string) {
	if m == nil {
		return
	}
	m.attachmentsTotal.WithLabelValues(result).Inc()
}

func (m *IntakeMetrics) ObserveNotificationFailure() {
	if m == nil {
		return
	}
	m.notificationFailures.Inc()
}

func (m *IntakeMetrics) ObserveIntakeLatency(seconds float64) {
	if m == nil {
		return
	}
	m.intakeLatency.Observe(seconds)
}
