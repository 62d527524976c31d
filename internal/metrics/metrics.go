package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ContentAPIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_api_requests_total",
			Help: "Total number of content API requests by resource and outcome",
		},
		[]string{"resource", "outcome"},
	)

	ContentAPIDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "content_api_request_duration_seconds",
			Help: "Duration of content API requests in seconds",
		},
		[]string{"resource"},
	)

	ContentAPIFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_api_fallbacks_total",
			Help: "Total number of responses served from fallback data",
		},
		[]string{"resource"},
	)

	ContactSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_submissions_total",
			Help: "Total number of contact form submissions by outcome",
		},
		[]string{"outcome"},
	)
)

// ObserveFetch records one upstream attempt.
func ObserveFetch(resource, outcome string, elapsed time.Duration) {
	ContentAPIRequests.WithLabelValues(resource, outcome).Inc()
	ContentAPIDuration.WithLabelValues(resource).Observe(elapsed.Seconds())
}
