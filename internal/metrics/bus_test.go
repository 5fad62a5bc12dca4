// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ManuGH/minibus/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	m := &dto.Metric{}
	require.NoError(t, c.Write(m))
	return m.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	m := &dto.Metric{}
	require.NoError(t, g.Write(m))
	return m.GetGauge().GetValue()
}

func TestPromhttpExposure(t *testing.T) {
	metrics.IncPublished("exposure", "metrics_test.Ping")

	srv := httptest.NewServer(promhttp.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "minibus_events_published_total")
}

func TestIncPublishedUsesUnknownForEmptyLabels(t *testing.T) {
	before := counterValue(t, metrics.BusPublishedTotal.WithLabelValues("unknown", "unknown"))
	metrics.IncPublished("", "")
	after := counterValue(t, metrics.BusPublishedTotal.WithLabelValues("unknown", "unknown"))
	require.Equal(t, before+1, after)
}

func TestObserveHandlerCountsByResult(t *testing.T) {
	tests := []struct {
		name   string
		result string
	}{
		{name: "success", result: metrics.ResultSuccess},
		{name: "error", result: metrics.ResultError},
		{name: "panic", result: metrics.ResultPanic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := metrics.HandlerInvocationsTotal.WithLabelValues("observe", "metrics_test.Ping", tt.result)
			before := counterValue(t, c)
			metrics.ObserveHandler("observe", "metrics_test.Ping", tt.result, time.Millisecond)
			require.Equal(t, before+1, counterValue(t, c))
		})
	}
}

func TestSetQueueDepth(t *testing.T) {
	metrics.SetQueueDepth("depth", 7)
	require.Equal(t, float64(7), gaugeValue(t, metrics.BusQueueDepth.WithLabelValues("depth")))

	metrics.SetQueueDepth("depth", 0)
	require.Equal(t, float64(0), gaugeValue(t, metrics.BusQueueDepth.WithLabelValues("depth")))
}

func TestAddReclaimedIgnoresNonPositive(t *testing.T) {
	c := metrics.SubscribersReclaimedTotal.WithLabelValues("reclaim")
	before := counterValue(t, c)

	metrics.AddReclaimed("reclaim", 0)
	metrics.AddReclaimed("reclaim", -3)
	require.Equal(t, before, counterValue(t, c))

	metrics.AddReclaimed("reclaim", 2)
	require.Equal(t, before+2, counterValue(t, c))
}

func TestIncDropped(t *testing.T) {
	c := metrics.BusDroppedTotal.WithLabelValues("drops", metrics.DropReasonClosed)
	before := counterValue(t, c)
	metrics.IncDropped("drops", metrics.DropReasonClosed)
	require.Equal(t, before+1, counterValue(t, c))
}
