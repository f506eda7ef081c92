package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Request latency buckets in milliseconds.
var durationBuckets = []float64{
	25, 50, 75, 100, 150, 200, 300, 400, 500,
	750, 1000, 1500, 2000, 3000, 5000, 10000,
}

// HTTP collects per-route request counts and latencies and serves them on a
// dedicated listener, separate from the API port.
type HTTP struct {
	reqCnt   *prometheus.CounterVec
	reqDur   *prometheus.HistogramVec
	registry *prometheus.Registry

	// URLLabel controls the cardinality of the "url" label; defaults to the
	// matched route template.
	URLLabel func(c *gin.Context) string
}

func NewHTTP(subsystem string) *HTTP {
	m := &HTTP{
		reqCnt: prometheus.NewCounterVec(prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "req_total",
			Help:      "HTTP requests processed, partitioned by status code, method, and route.",
		}, []string{"code", "method", "url"}),
		reqDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Subsystem: subsystem,
			Name:      "req_dur_ms",
			Help:      "HTTP request latencies in milliseconds.",
			Buckets:   durationBuckets,
		}, []string{"code", "method", "url"}),
		registry: prometheus.NewRegistry(),
	}
	m.registry.MustRegister(m.reqCnt, m.reqDur)
	return m
}

// Middleware records one observation per request.
func (m *HTTP) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		url := c.FullPath()
		if m.URLLabel != nil {
			url = m.URLLabel(c)
		}
		if url == "" {
			url = c.Request.URL.Path
		}
		code := strconv.Itoa(c.Writer.Status())
		m.reqCnt.WithLabelValues(code, c.Request.Method, url).Inc()
		m.reqDur.WithLabelValues(code, c.Request.Method, url).
			Observe(float64(time.Since(start).Milliseconds()))
	}
}

// Serve exposes /metrics on its own listener. Blocks; callers run it in a
// goroutine.
func (m *HTTP) Serve(addr string, log *zap.SugaredLogger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Errorw("metrics listener stopped", "addr", addr, "err", err)
	}
}
