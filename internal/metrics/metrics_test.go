package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkkaiser/dag-health-monitor/internal/model"
)

func TestCollector_ObserveProbe(t *testing.T) {
	c := New()

	c.ObserveProbe(model.NodeHealthy, 10*time.Millisecond)
	c.ObserveProbe(model.NodeHealthy, 20*time.Millisecond)
	c.ObserveProbe(model.NodeUnreachable, 10*time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.probesTotal.WithLabelValues("healthy")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.probesTotal.WithLabelValues("unreachable")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.probesTotal.WithLabelValues("unhealthy")))
}

func TestCollector_ObserveCheck(t *testing.T) {
	c := New()

	c.ObserveCheck(model.OverallCritical, 3, time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.checksTotal.WithLabelValues("critical")))
}

func TestCollector_Handler(t *testing.T) {
	c := New()
	c.ObserveHTTP(http.MethodPost, "/api/dag/health-check", http.StatusOK, 50*time.Millisecond)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `dag_health_http_requests_total{code="200",method="POST",route="/api/dag/health-check"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestNew_독립_레지스트리(t *testing.T) {
	assert.NotPanics(t, func() {
		_ = New()
		_ = New()
	}, "인스턴스마다 레지스트리가 분리되어 중복 등록 패닉이 없어야 합니다")
}
