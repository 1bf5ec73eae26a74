package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// Orders
	OrdersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_total",
			Help: "Completed purchase orders",
		},
		[]string{"type"}, // followers|views|likes
	)
	OrdersRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_rejected_total",
			Help: "Orders rejected before commit",
		},
		[]string{"reason"},
	)
	OrderRevenue = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_revenue_total",
			Help: "Sum of purchase order prices",
		},
		[]string{"type"},
	)
	DepositsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "deposits_total",
			Help: "Completed wallet deposits",
		},
	)

	// Worker queue
	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)

	EventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Fulfillment events handed to the publisher",
		},
		[]string{"result"}, // ok|error
	)

	initOnce sync.Once
)

// Handler serves /metrics.
var Handler = promhttp.Handler

func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(
			RequestsTotal,
			OrdersTotal,
			OrdersRejected,
			OrderRevenue,
			DepositsTotal,
			WorkerQueueDepth,
			EventsPublished,
		)
	})
}
