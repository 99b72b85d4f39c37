package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shop_service",
		Subsystem: "orders",
		Name:      "submissions_total",
		Help:      "Order submissions by outcome.",
	}, []string{"outcome"})

	statusUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shop_service",
		Subsystem: "orders",
		Name:      "status_updates_total",
		Help:      "Order status updates by outcome.",
	}, []string{"outcome"})

	notificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shop_service",
		Subsystem: "orders",
		Name:      "notifications_total",
		Help:      "Confirmation dispatch outcomes (sent, unconfigured, transport-error).",
	}, []string{"outcome"})
)
