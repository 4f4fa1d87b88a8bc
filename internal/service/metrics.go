package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for Wallet Guard.
// Pass to components that need to record metrics.
type Metrics struct {
	AuthAttemptsTotal *prometheus.CounterVec
	SessionActive     prometheus.Gauge
	AuditDropsTotal   prometheus.Counter
}

// NewMetrics creates and registers all metrics with the given registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		AuthAttemptsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "walletguard",
				Name:      "auth_attempts_total",
				Help:      "Total number of authentication attempts processed",
			},
			[]string{"method", "outcome"}, // method=password/biometric, outcome=auth.allow/auth.deny/auth.blocked
		),
		SessionActive: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Namespace: "walletguard",
				Name:      "session_active",
				Help:      "Whether an access session is currently live (0 or 1)",
			},
		),
		AuditDropsTotal: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: "walletguard",
				Name:      "audit_drops_total",
				Help:      "Total audit records dropped due to backpressure",
			},
		),
	}
}
