package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "wellbeing"

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
		},
		[]string{"method", "route"},
	)

	RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests being served",
		},
	)

	RecomputeCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_recomputations_total",
			Help: "Total number of chart recomputations",
		},
		[]string{"output", "status"},
	)

	RecomputeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dashboard_recomputation_duration_seconds",
			Help:    "Duration of chart recomputations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"output"},
	)

	DatasetRows = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "dashboard_dataset_rows",
			Help: "Number of rows in the loaded dataset",
		},
	)
)

// Init 注册到默认 registry，只能调用一次
func Init() {
	prometheus.MustRegister(
		RequestCounter,
		RequestDuration,
		RequestsInFlight,
		RecomputeCounter,
		RecomputeDuration,
		DatasetRows,
	)
}

// ObserveRecompute 记录一次图表重算
func ObserveRecompute(output string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	RecomputeCounter.WithLabelValues(output, status).Inc()
	RecomputeDuration.WithLabelValues(output).Observe(time.Since(start).Seconds())
}

// MetricsMiddleware 按路由模板统计，未匹配的路径归为 unmatched
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		RequestsInFlight.Inc()
		start := time.Now()
		c.Next()
		RequestsInFlight.Dec()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		RequestCounter.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		RequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}
