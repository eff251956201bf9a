package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RoomsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "parley_rooms_created_total",
		Help: "Number of rooms allocated by the room directory.",
	})

	MessagesBroadcast = promauto.NewCounter(prometheus.CounterOpts{
		Name: "parley_messages_broadcast_total",
		Help: "Number of chat messages fanned out to rooms.",
	})

	ArchiveExports = promauto.NewCounter(prometheus.CounterOpts{
		Name: "parley_archive_exports_total",
		Help: "Number of room transcripts archived to long-term storage.",
	})

	ArchiveFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "parley_archive_failures_total",
		Help: "Number of failed archive writes.",
	})

	LiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "parley_ws_connections",
		Help: "Currently open websocket connections.",
	})

	StoreAppendFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "parley_store_append_failures_total",
		Help: "Message log appends that failed after the broadcast was already delivered.",
	})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "parley_http_request_duration_seconds",
		Help:    "HTTP request latency by method, route and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)
