package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserveValidation(t *testing.T) {
	m := New()
	m.ObserveValidation("CPF", true, time.Millisecond)
	m.ObserveValidation("CPF", true, time.Millisecond)
	m.ObserveValidation("CPF", false, time.Millisecond)

	require.Equal(t, 2.0, testutil.ToFloat64(m.ValidationsTotal.WithLabelValues("CPF", "true")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.ValidationsTotal.WithLabelValues("CPF", "false")))
}

func TestObserveCacheLookup(t *testing.T) {
	m := New()
	m.ObserveCacheLookup("hit")
	m.ObserveCacheLookup("miss")
	m.ObserveCacheLookup("miss")

	require.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("hit")))
	require.Equal(t, 2.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("miss")))
}

func TestNewIsIndependent(t *testing.T) {
	first := New()
	second := New()
	first.ObserveRequest("/validate", http.StatusOK)

	require.Equal(t, 1.0, testutil.ToFloat64(first.RequestsTotal.WithLabelValues("/validate", "200")))
	require.Equal(t, 0.0, testutil.ToFloat64(second.RequestsTotal.WithLabelValues("/validate", "200")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.ObserveValidation("CNPJ", true, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `document_validator_validations_total{document_type="CNPJ",valid="true"} 1`)
}
