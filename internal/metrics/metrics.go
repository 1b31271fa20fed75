package metrics

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	SuccessfulRequests *prometheus.CounterVec
	BadRequests        *prometheus.CounterVec
	PostsCreated       prometheus.Counter
	FollowRequests     prometheus.Counter
	UnfollowRequests   prometheus.Counter
	FeedFallbacks      prometheus.Counter
}

// New builds the collectors on a private registry so that several servers
// (tests) can coexist in one process.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		SuccessfulRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "successful_request",
				Help: "Total number of successful (2xx/3xx) HTTP requests",
			},
			[]string{"path", "method"},
		),
		BadRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "unsuccessful_request",
				Help: "Total number of unsuccessful (4xx/5xx) HTTP requests",
			},
			[]string{"path", "method", "status"},
		),
		PostsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "successful_post",
			Help: "Total number of posts created",
		}),
		FollowRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "successful_follows",
			Help: "Total number of follow edges created",
		}),
		UnfollowRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "successful_unfollows",
			Help: "Total number of follow edges removed",
		}),
		FeedFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "feed_fallbacks",
			Help: "Home feeds served empty because the store failed",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.SuccessfulRequests,
		m.BadRequests,
		m.PostsCreated,
		m.FollowRequests,
		m.UnfollowRequests,
		m.FeedFallbacks,
	)

	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// GinMiddleware counts requests by route template.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := c.Writer.Status()
		if status >= http.StatusBadRequest {
			m.BadRequests.WithLabelValues(path, c.Request.Method, strconv.Itoa(status)).Inc()
			return
		}
		m.SuccessfulRequests.WithLabelValues(path, c.Request.Method).Inc()
	}
}
