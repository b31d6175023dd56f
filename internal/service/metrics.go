package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	DashboardBuildSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dashboard_snapshot_seconds",
			Help:    "Time spent building a dashboard snapshot",
			Buckets: prometheus.DefBuckets,
		},
	)
	LoginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_login_attempts_total",
			Help: "Login attempts by outcome",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(DashboardBuildSeconds)
	prometheus.MustRegister(LoginAttempts)
}
