package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parlor_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "parlor_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	// Engine metrics
	OnlineUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "parlor_online_users",
			Help: "Identities currently holding an active claim",
		},
	)

	LiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "parlor_live_sessions",
			Help: "Websocket sessions currently connected",
		},
	)

	MessagesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parlor_messages_sent_total",
			Help: "Total messages dispatched",
		},
		[]string{"channel_type"}, // "group" or "dm"
	)

	InvitesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "parlor_invites_sent_total",
			Help: "Total accepted private invites",
		},
	)
)
