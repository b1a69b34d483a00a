package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestIntakeMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewIntakeMetrics(reg)
	m.ObserveSubmission("stored")
	m.ObserveAttachment("saved")
	m.ObserveNotificationFailure()
	m.ObserveIntakeLatency(0.05)
}

func TestIntakeMetricsNilSafe(t *testing.T) {
	var m *IntakeMetrics
	m.ObserveSubmission("stored")
	m.ObserveAttachment("saved")
	m.ObserveNotificationFailure()
	m.ObserveIntakeLatency(0.1)
}
