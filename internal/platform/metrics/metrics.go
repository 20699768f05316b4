package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns a private registry so several apps can live in one process.
type Collector struct {
	registry        *prometheus.Registry
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	rateLimited     prometheus.Counter
	storeOperations *prometheus.CounterVec
	storeDuration   *prometheus.HistogramVec
	collectionSize  *prometheus.GaugeVec
	eventsDropped   *prometheus.CounterVec
	jobRuns         *prometheus.CounterVec
}

func New() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)
	return &Collector{
		registry: reg,
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "corecrew_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "corecrew_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		rateLimited: factory.NewCounter(prometheus.CounterOpts{
			Name: "corecrew_http_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		}),
		storeOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "corecrew_store_operations_total",
			Help: "Persistent store loads and saves by collection and result",
		}, []string{"collection", "op", "result"}),
		storeDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "corecrew_store_operation_duration_seconds",
			Help:    "Duration of persistent store loads and saves",
			Buckets: prometheus.DefBuckets,
		}, []string{"collection", "op"}),
		collectionSize: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "corecrew_collection_size",
			Help: "Number of entities held in each collection",
		}, []string{"collection"}),
		eventsDropped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "corecrew_events_dropped_total",
			Help: "Change events dropped because a subscriber was slow",
		}, []string{"subscriber"}),
		jobRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "corecrew_job_runs_total",
			Help: "Background job runs by type and status",
		}, []string{"type", "status"}),
	}
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	if c == nil {
		return
	}
	c.httpRequests.WithLabelValues(method, route, status).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
	if status == "429" {
		c.rateLimited.Inc()
	}
}

func (c *Collector) ObserveStore(collection, op, result string, duration time.Duration) {
	if c == nil {
		return
	}
	c.storeOperations.WithLabelValues(collection, op, result).Inc()
	c.storeDuration.WithLabelValues(collection, op).Observe(duration.Seconds())
}

func (c *Collector) SetCollectionSize(collection string, size int) {
	if c == nil {
		return
	}
	if size < 0 {
		size = 0
	}
	c.collectionSize.WithLabelValues(collection).Set(float64(size))
}

func (c *Collector) EventDropped(subscriber string) {
	if c == nil {
		return
	}
	c.eventsDropped.WithLabelValues(subscriber).Inc()
}

func (c *Collector) ObserveJob(jobType, status string) {
	if c == nil {
		return
	}
	c.jobRuns.WithLabelValues(jobType, status).Inc()
}
