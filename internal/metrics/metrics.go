package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	gatewayCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "taigen_gateway_calls_total",
		Help: "Remote gateway calls by operation and result",
	}, []string{"op", "result"})

	gatewayDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "taigen_gateway_call_duration_seconds",
		Help:    "Remote gateway call latency in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
	}, []string{"op"})

	remindersSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "taigen_deadline_reminders_total",
		Help: "Deadline reminder emails by result",
	}, []string{"result"})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "taigen_http_requests_total",
		Help: "HTTP requests by method and status class",
	}, []string{"method", "status"})
)

// ObserveGatewayCall records one call to the remote backend.
func ObserveGatewayCall(op string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	gatewayCalls.WithLabelValues(op, result).Inc()
	gatewayDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func ObserveReminder(err error) {
	if err != nil {
		remindersSent.WithLabelValues("error").Inc()
		return
	}
	remindersSent.WithLabelValues("sent").Inc()
}

// ObserveRequest counts a request by status class (2xx, 4xx, ...).
func ObserveRequest(method string, status int) {
	class := "5xx"
	switch {
	case status < 200:
		class = "1xx"
	case status < 300:
		class = "2xx"
	case status < 400:
		class = "3xx"
	case status < 500:
		class = "4xx"
	}
	httpRequests.WithLabelValues(method, class).Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}
