package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.CandidateRegistered("Selected", true)
	m.CandidateRegistered("Rejected", false)
	m.LeaveFiled("accepted")
	m.AttendanceSeeded(3)
	m.AttendanceSeeded(0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.candidatesRegistered.WithLabelValues("Selected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.promotions))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.leavesFiled.WithLabelValues("accepted")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.attendanceSeeded))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.CandidateRegistered("New", true)
		m.LeaveFiled("rejected")
		m.AttendanceSeeded(1)
		m.EmployeeDeleted()
	})
}

func TestMiddlewareAndHandler(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/employees/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/employees/42", nil))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/employees/{id}", "404")))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "hris_recruitment_http_requests_total"))
}
