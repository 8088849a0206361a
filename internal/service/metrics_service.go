package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/uniportal/results-portal-api/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP
// surface and the distribution pipeline.
type MetricsService struct {
	registry               *prometheus.Registry
	handler                http.Handler
	requestDuration        *prometheus.HistogramVec
	requestTotal           *prometheus.CounterVec
	announcementsPublished prometheus.Counter
	notificationsTotal     *prometheus.CounterVec
	dispatchDuration       prometheus.Histogram

	publishedCount uint64
	sentCount      uint64
	failedCount    uint64
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	announcementsPublished := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "announcements_published_total",
		Help: "Total announcements persisted for distribution",
	})

	notificationsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "channel_notifications_total",
		Help: "Per-channel notification dispatch outcomes",
	}, []string{"channel", "status"})

	dispatchDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "announcement_dispatch_duration_seconds",
		Help:    "Duration of a full announcement fan-out",
		Buckets: prometheus.DefBuckets,
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, announcementsPublished, notificationsTotal, dispatchDuration, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:               registry,
		handler:                handler,
		requestDuration:        requestDuration,
		requestTotal:           requestTotal,
		announcementsPublished: announcementsPublished,
		notificationsTotal:     notificationsTotal,
		dispatchDuration:       dispatchDuration,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordAnnouncementPublished counts a successful persistence.
func (m *MetricsService) RecordAnnouncementPublished() {
	if m == nil {
		return
	}
	m.announcementsPublished.Inc()
	atomic.AddUint64(&m.publishedCount, 1)
}

// RecordDispatchOutcome counts one settled channel send.
func (m *MetricsService) RecordDispatchOutcome(channel models.Channel, success bool) {
	if m == nil {
		return
	}
	status := "sent"
	if success {
		atomic.AddUint64(&m.sentCount, 1)
	} else {
		status = "failed"
		atomic.AddUint64(&m.failedCount, 1)
	}
	m.notificationsTotal.WithLabelValues(string(channel), status).Inc()
}

// ObserveDispatchDuration tracks how long a full fan-out took.
func (m *MetricsService) ObserveDispatchDuration(duration time.Duration) {
	if m == nil {
		return
	}
	m.dispatchDuration.Observe(duration.Seconds())
}

// Snapshot returns aggregated pipeline metrics.
func (m *MetricsService) Snapshot() models.SystemMetrics {
	if m == nil {
		return models.SystemMetrics{}
	}
	return models.SystemMetrics{
		AnnouncementsPublished: atomic.LoadUint64(&m.publishedCount),
		NotificationsSent:      atomic.LoadUint64(&m.sentCount),
		NotificationsFailed:    atomic.LoadUint64(&m.failedCount),
		Goroutines:             runtime.NumGoroutine(),
		GeneratedAt:            time.Now().UTC(),
	}
}
