package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpReqTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Count of HTTP requests"},
		[]string{"route", "method", "status"},
	)
	httpLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latency of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"},
	)
	httpBodyRejected = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "http_requests_rejected_bad_request_total",
		Help: "Requests answered with 400 before reaching the store",
	})
)

func init() { prometheus.MustRegister(httpReqTotal, httpLatency, httpBodyRejected) }

// Metrics 按路由模板（/users/:id）打点；未匹配的路由归到 "unmatched"，避免按原始 path 打爆基数
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		httpReqTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(status)).Inc()
		httpLatency.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
		if status == 400 {
			httpBodyRejected.Inc()
		}
	}
}
