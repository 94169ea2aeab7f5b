// Package metrics exposes the service's prometheus collectors. All methods
// are safe on a nil *Metrics so components can run without instrumentation.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hris_recruitment"

type Metrics struct {
	registry *prometheus.Registry

	candidatesRegistered *prometheus.CounterVec
	promotions           prometheus.Counter
	leavesFiled          *prometheus.CounterVec
	attendanceSeeded     prometheus.Counter
	employeesDeleted     prometheus.Counter
	httpRequests         *prometheus.CounterVec
	httpDuration         *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		candidatesRegistered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "candidates_registered_total",
			Help:      "Candidates registered, by initial status.",
		}, []string{"status"}),
		promotions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "candidate_promotions_total",
			Help:      "Candidates promoted to employees at registration.",
		}),
		leavesFiled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "leaves_filed_total",
			Help:      "Leave requests, by outcome.",
		}, []string{"outcome"}),
		attendanceSeeded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attendance_seeded_total",
			Help:      "Absent attendance rows created by promotion or the daily seed.",
		}),
		employeesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "employees_deleted_total",
			Help:      "Employees removed together with their attendance and leaves.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests, by method, route and status code.",
		}, []string{"method", "route", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.candidatesRegistered,
		m.promotions,
		m.leavesFiled,
		m.attendanceSeeded,
		m.employeesDeleted,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) CandidateRegistered(status string, promoted bool) {
	if m == nil {
		return
	}
	m.candidatesRegistered.WithLabelValues(status).Inc()
	if promoted {
		m.promotions.Inc()
	}
}

func (m *Metrics) LeaveFiled(outcome string) {
	if m == nil {
		return
	}
	m.leavesFiled.WithLabelValues(outcome).Inc()
}

func (m *Metrics) AttendanceSeeded(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.attendanceSeeded.Add(float64(n))
}

func (m *Metrics) EmployeeDeleted() {
	if m == nil {
		return
	}
	m.employeesDeleted.Inc()
}

// Middleware records request counts and latency per chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
