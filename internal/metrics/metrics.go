package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	APIRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "clubconsole", Name: "api_requests_total", Help: "Backend API requests",
	}, []string{"op", "outcome"})
	APIDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "clubconsole", Name: "api_request_seconds", Help: "Backend API request latency",
		Buckets: prometheus.DefBuckets,
	})
	BackendPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "clubconsole", Name: "backend_ping_seconds", Help: "Backend health probe latency",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(APIRequests, APIDuration, BackendPing)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveAPI(op string, d time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	APIRequests.WithLabelValues(op, outcome).Inc()
	APIDuration.Observe(d.Seconds())
}

func ObserveBackendPing(d time.Duration) { BackendPing.Observe(d.Seconds()) }
