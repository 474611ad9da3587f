// Package observability provides Prometheus domain metrics.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hirehub_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hirehub_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// ApplicationsSubmitted counts accepted job applications.
	ApplicationsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hirehub_applications_submitted_total",
		Help: "Total number of job applications accepted",
	})

	// JobStatusTransitions counts posting status changes by target status.
	JobStatusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hirehub_job_status_transitions_total",
		Help: "Total job posting status transitions by resulting status",
	}, []string{"status"})

	// ApplicationStatusTransitions counts application status changes by target status.
	ApplicationStatusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hirehub_application_status_transitions_total",
		Help: "Total job application status transitions by resulting status",
	}, []string{"status"})

	// EmailsSent counts notification e-mails by scenario and outcome.
	EmailsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hirehub_emails_total",
		Help: "Total notification e-mails by scenario and outcome",
	}, []string{"scenario", "outcome"})

	// ResumeUploadsRejected counts resume uploads that failed validation.
	ResumeUploadsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hirehub_resume_uploads_rejected_total",
		Help: "Total resume uploads rejected by reason",
	}, []string{"reason"})
)

// RecordEmail increments the e-mail counter for a scenario with the outcome
// derived from err.
func RecordEmail(scenario string, err error) {
	outcome := "sent"
	if err != nil {
		outcome = "failed"
	}
	EmailsSent.WithLabelValues(scenario, outcome).Inc()
}

// DatabaseMetrics wraps DB access for recording query latency.
type DatabaseMetrics struct {
	db *gorm.DB
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics(db *gorm.DB) *DatabaseMetrics {
	return &DatabaseMetrics{db: db}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	latency := time.Since(start).Seconds()
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(latency)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}
