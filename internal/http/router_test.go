package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/bowlnow/crm/internal/metrics"
)

func TestInstrument_CountsServerErrors(t *testing.T) {
	m := metrics.Registry("test")

	router := chi.NewRouter()
	router.Use(instrument(m))
	router.Get("/ok", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Get("/boom", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	before := testutil.ToFloat64(m.Errors.WithLabelValues("http"))

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, before, testutil.ToFloat64(m.Errors.WithLabelValues("http")), "2xx must not count as an error")

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, before+1, testutil.ToFloat64(m.Errors.WithLabelValues("http")))
}
