package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umuturukk/de-propulsion-v2.0/internal/combination"
	"github.com/umuturukk/de-propulsion-v2.0/internal/model"
)

func TestObserveDecision(t *testing.T) {
	labels := prometheus.Labels{modeLabel: "TRANSIT", strategyLabel: "assisted"}
	before := testutil.ToFloat64(decisionsTotalMetric.With(labels))
	beforeInfeasible := testutil.ToFloat64(infeasibleTotalMetric.With(prometheus.Labels{modeLabel: "TRANSIT"}))

	ObserveDecision(model.ModeTransit, combination.Result{Strategy: combination.StrategyAssisted})
	ObserveDecision(model.ModeTransit, combination.Result{Strategy: combination.StrategyNone})

	assert.InDelta(t, before+1, testutil.ToFloat64(decisionsTotalMetric.With(labels)), 1e-9)
	assert.InDelta(t, beforeInfeasible+1, testutil.ToFloat64(infeasibleTotalMetric.With(prometheus.Labels{modeLabel: "TRANSIT"})), 1e-9)
}

func TestObserveSweep(t *testing.T) {
	before := testutil.ToFloat64(sweepSamplesMetric)
	ObserveSweep(27, 40*time.Millisecond)
	assert.InDelta(t, before+27, testutil.ToFloat64(sweepSamplesMetric), 1e-9)
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMiddleware("test")
	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(m.Collectors()[0]))
	require.NoError(t, reg.Register(m.Collectors()[1]))

	r := gin.New()
	r.Use(m.Handler())
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	for _, path := range []string{"/items/1", "/items/2", "/nowhere"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.InDelta(t, 2, testutil.ToFloat64(m.requests.WithLabelValues("418", "GET", "/items/:id")), 1e-9)
	assert.Equal(t, 1, testutil.CollectAndCount(m.requests))
}
