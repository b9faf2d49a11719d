package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// APICalls 对后端 REST 接口的调用结果
	APICalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "python101_api_calls_total",
			Help: "Calls made to the Python-101 backend API",
		},
		[]string{"call", "outcome"},
	)

	APICallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "python101_api_call_duration_seconds",
			Help:    "Duration of backend API calls",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 30},
		},
		[]string{"call"},
	)

	SessionReplacements = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "python101_session_replacements_total",
			Help: "Session user snapshot replacements",
		},
		[]string{"kind"},
	)

	ActiveWorkspaces = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "python101_active_workspaces",
			Help: "Question bank workspaces currently held in memory",
		},
	)
)

var initOnce sync.Once

func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(APICalls)
		prometheus.MustRegister(APICallDuration)
		prometheus.MustRegister(SessionReplacements)
		prometheus.MustRegister(ActiveWorkspaces)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

// ObserveAPICall 记录一次后端调用
func ObserveAPICall(call string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	APICalls.WithLabelValues(call, outcome).Inc()
	APICallDuration.WithLabelValues(call).Observe(time.Since(start).Seconds())
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
