package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// RegistrationsTotal counts successful user registrations.
	RegistrationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "registrations_total",
			Help: "Total number of successful registrations",
		},
	)

	// LoginsTotal counts login attempts by outcome (success, failure).
	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "logins_total",
			Help: "Total number of login attempts by outcome",
		},
		[]string{"outcome"},
	)

	// FeedbackWritesTotal counts feedback mutations by action (create, update, delete).
	FeedbackWritesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_writes_total",
			Help: "Total number of feedback mutations by action",
		},
		[]string{"action"},
	)
)

var (
	numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)
	userPathSegment    = regexp.MustCompile(`^/users/[^/]+`)
	initOnce           sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, RegistrationsTotal, LoginsTotal, FeedbackWritesTotal)
	})
}

// NormalizePath reduces label cardinality by collapsing identifier segments.
// E.g. /feedback/123/update -> /feedback/{id}/update,
// /users/alice/feedback/new -> /users/{username}/feedback/new.
func NormalizePath(path string) string {
	path = userPathSegment.ReplaceAllString(path, "/users/{username}")
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// IncRegistrations increments the successful registrations counter.
func IncRegistrations() {
	RegistrationsTotal.Inc()
}

// IncLogins increments the login counter for the given outcome (success, failure).
func IncLogins(outcome string) {
	LoginsTotal.WithLabelValues(outcome).Inc()
}

// IncFeedbackWrites increments the feedback mutation counter for the given action.
func IncFeedbackWrites(action string) {
	FeedbackWritesTotal.WithLabelValues(action).Inc()
}
