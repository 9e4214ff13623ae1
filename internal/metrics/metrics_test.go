// internal/metrics/metrics_test.go
package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountersAreIndependentPerInstance(t *testing.T) {
	a, b := New(), New()
	a.Designs.WithLabelValues("early-exit", "engine").Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(a.Designs.WithLabelValues("early-exit", "engine")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.Designs.WithLabelValues("early-exit", "engine")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.Requests.WithLabelValues("/v1/designs", "200").Inc()
	m.SeedsTried.Observe(3)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `degen_http_requests_total{code="200",route="/v1/designs"} 1`)
	assert.Contains(t, string(body), "degen_design_seeds_tried_count 1")
}
