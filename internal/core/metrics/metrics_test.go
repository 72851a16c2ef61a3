package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Observe(t *testing.T) {
	m := New()

	m.ObserveRefresh(ResultSuccess, 3)
	m.ObserveRefresh(ResultError, 0)
	m.ObserveRefresh(ResultError, 0)
	m.ObserveGatewayCall("select", nil, 10*time.Millisecond)
	m.ObserveGatewayCall("update", errors.New("boom"), time.Millisecond)
	m.ObserveRollback("courier")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.refreshes.WithLabelValues(ResultSuccess)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.refreshes.WithLabelValues(ResultError)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.listSize))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.gatewayCalls.WithLabelValues("update", ResultError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rollbacks.WithLabelValues("courier")))
}

func TestMetrics_Nil(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveRefresh(ResultSuccess, 1)
		m.ObserveGatewayCall("select", nil, time.Millisecond)
		m.ObserveRollback("person")
	})
	assert.Nil(t, m.Registry())
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveRefresh(ResultSuccess, 2)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "dispatch_console_list_refreshes_total"))
}
