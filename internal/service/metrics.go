package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// toggleTotal 切换操作结果，result 取 added/removed/error
	toggleTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pulse",
		Name:      "toggle_total",
		Help:      "Total like/follow toggles by kind and result",
	}, []string{"kind", "result"})

	// sessionEvents 会话事件，event 取 login/renew/logout/verify/register/change_password
	sessionEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pulse",
		Name:      "session_events_total",
		Help:      "Total session lifecycle events by outcome",
	}, []string{"event", "outcome"})

	cascadeFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pulse",
		Subsystem: "post",
		Name:      "cascade_failures_total",
		Help:      "Post delete cascade leg failures",
	}, []string{"leg"})

	viewDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pulse",
		Subsystem: "view",
		Name:      "duration_seconds",
		Help:      "Read view composition latency in seconds",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"view", "variant"})
)

func outcome(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
