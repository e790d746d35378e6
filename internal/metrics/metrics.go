// Package metrics exposes Prometheus metrics for the API and its background jobs.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the metrics surface used by services and middleware.
type Recorder interface {
	RecordRequest(method, route string, status int, duration time.Duration)
	RecordCascadeDelete(tasks int64)
	RecordOrphansSwept(tasks int64)
}

// Collector is the Prometheus implementation of Recorder.
type Collector struct {
	requests        *prometheus.CounterVec
	requestLatency  *prometheus.HistogramVec
	categoryDeletes prometheus.Counter
	cascadedTasks   prometheus.Counter
	sweptTasks      prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taskapi_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "taskapi_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		categoryDeletes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "taskapi_category_deletes_total",
			Help: "Categories deleted.",
		}),
		cascadedTasks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "taskapi_cascade_deleted_tasks_total",
			Help: "Tasks removed together with their category.",
		}),
		sweptTasks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "taskapi_orphan_tasks_swept_total",
			Help: "Orphaned tasks removed by the cleanup sweep.",
		}),
	}

	reg.MustRegister(
		c.requests,
		c.requestLatency,
		c.categoryDeletes,
		c.cascadedTasks,
		c.sweptTasks,
	)

	return c
}

// RecordRequest records one served HTTP request.
func (c *Collector) RecordRequest(method, route string, status int, duration time.Duration) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.requestLatency.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordCascadeDelete records a category deletion and the tasks it took with it.
func (c *Collector) RecordCascadeDelete(tasks int64) {
	c.categoryDeletes.Inc()
	c.cascadedTasks.Add(float64(tasks))
}

// RecordOrphansSwept records tasks removed by the orphan sweep.
func (c *Collector) RecordOrphansSwept(tasks int64) {
	c.sweptTasks.Add(float64(tasks))
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop is a Recorder that discards everything.
type Nop struct{}

func (Nop) RecordRequest(string, string, int, time.Duration) {}
func (Nop) RecordCascadeDelete(int64)                        {}
func (Nop) RecordOrphansSwept(int64)                         {}
