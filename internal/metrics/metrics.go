// Package metrics exposes the Prometheus collectors of the review API.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP Metrics
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "review_api_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "review_api_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Registration Metrics
	Signups = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "review_api_signups_total",
			Help: "Total number of confirmation codes sent",
		},
	)

	TokensIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "review_api_tokens_issued_total",
			Help: "Total number of access tokens issued",
		},
	)

	InvalidCodes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "review_api_invalid_confirmation_codes_total",
			Help: "Total number of rejected confirmation codes",
		},
	)

	// Mail Metrics
	MailSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "review_api_mail_sent_total",
			Help: "Total number of mails handed to the transport",
		},
		[]string{"result"}, // "ok", "error", "rejected"
	)

	// Title Cache Metrics
	TitleCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "review_api_title_cache_total",
			Help: "Title cache lookups by result",
		},
		[]string{"result"}, // "hit", "miss", "error"
	)
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
