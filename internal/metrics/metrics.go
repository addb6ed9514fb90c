package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vogdb",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route", "status"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vogdb",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// QueryDuration is observed once per executed statement.
	QueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vogdb",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"entity", "operation"},
	)

	// QueryRows counts rows returned, labelled like QueryDuration.
	QueryRows = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vogdb",
			Name:      "query_rows_total",
			Help:      "Rows returned by database queries",
		},
		[]string{"entity", "operation"},
	)

	QueryErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vogdb",
			Name:      "query_errors_total",
			Help:      "Failed database queries",
		},
		[]string{"entity", "operation"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(QueryDuration)
	prometheus.MustRegister(QueryRows)
	prometheus.MustRegister(QueryErrors)
}

// ObserveQuery records one finished query started at start.
func ObserveQuery(entity, operation string, start time.Time, rows int, err error) {
	QueryDuration.WithLabelValues(entity, operation).Observe(time.Since(start).Seconds())
	if err != nil {
		QueryErrors.WithLabelValues(entity, operation).Inc()
		return
	}
	QueryRows.WithLabelValues(entity, operation).Add(float64(rows))
}

// Instrument records duration and count for one route. The route label is
// the registered pattern, never the raw path, to keep cardinality bounded.
func Instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		status := strconv.Itoa(sw.status)
		httpRequestDuration.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
		httpRequestsTotal.WithLabelValues(r.Method, route, status).Inc()
	})
}

// statusWriter captures the response status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.status = status
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.wroteHeader = true
	}
	return w.ResponseWriter.Write(b)
}
