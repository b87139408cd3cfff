// Package metrics exposes poll loop counters to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the bot's collectors. A nil *Metrics is a valid no-op.
type Metrics struct {
	reg *prometheus.Registry

	cycles        *prometheus.CounterVec
	notifications *prometheus.CounterVec
	lastCycle     prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "homeworkbot",
			Name:      "poll_cycles_total",
			Help:      "Poll cycles by outcome.",
		}, []string{"outcome"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "homeworkbot",
			Name:      "notifications_total",
			Help:      "Notification send attempts by result.",
		}, []string{"result"}),
		lastCycle: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "homeworkbot",
			Name:      "last_cycle_timestamp_seconds",
			Help:      "Unix time of the last finished poll cycle.",
		}),
	}
	m.reg.MustRegister(m.cycles, m.notifications, m.lastCycle)
	return m
}

// Registry is the registry served on /metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.reg
}

func (m *Metrics) ObserveCycle(outcome string, at time.Time) {
	if m == nil {
		return
	}
	m.cycles.WithLabelValues(outcome).Inc()
	m.lastCycle.Set(float64(at.Unix()))
}

func (m *Metrics) ObserveNotification(ok bool) {
	if m == nil {
		return
	}
	result := "sent"
	if !ok {
		result = "failed"
	}
	m.notifications.WithLabelValues(result).Inc()
}
