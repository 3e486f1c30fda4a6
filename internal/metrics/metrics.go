package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// GatewayRequests counts backend calls by operation and result status.
var GatewayRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cinebook_gateway_requests_total",
		Help: "Backend API calls made by the client",
	},
	[]string{"operation", "status"},
)

// BookingAttempts counts checkout transactions by terminal outcome.
var BookingAttempts = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cinebook_booking_attempts_total",
		Help: "Booking attempts by terminal outcome",
	},
	[]string{"outcome"},
)

// ObserveGatewayCall records one backend call outcome.
func ObserveGatewayCall(operation string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	GatewayRequests.WithLabelValues(operation, status).Inc()
}

// Handler exposes the default prometheus registry, mounted on the checkout
// bridge server.
func Handler() http.Handler {
	return promhttp.Handler()
}
