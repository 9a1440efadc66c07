package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusMetrics_CountsByRoutePattern(t *testing.T) {
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/widgets/{id}", "200"))

	r := chi.NewRouter()
	r.Use(PrometheusMetrics())
	r.Get("/widgets/{id}", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, id := range []string{"1", "2", "3"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/widgets/"+id, nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/widgets/{id}", "200"))
	assert.Equal(t, before+3, after, "all ids should collapse into one route pattern")
}

func TestPrometheusMetrics_RecordsErrorStatus(t *testing.T) {
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/broken", "502"))

	r := chi.NewRouter()
	r.Use(PrometheusMetrics())
	r.Get("/broken", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/broken", nil))

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/broken", "502"))
	assert.Equal(t, before+1, after)
}

func TestPrometheusMetrics_OutsideRouterUsesUnknown(t *testing.T) {
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "unknown", "200"))

	handler := PrometheusMetrics()(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/anything", nil))

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "unknown", "200"))
	assert.Equal(t, before+1, after)
}
