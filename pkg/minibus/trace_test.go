// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package minibus_test

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/ManuGH/minibus/internal/telemetry"
)

func TestSyncBus_DeliverySpans(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})

	bus := newSyncBus(t)
	ok := &recorder[UserCreated]{name: "ok"}
	bad := &recorder[UserCreated]{name: "bad", err: errRejected}
	require.NoError(t, bus.Subscribe(ok))
	require.NoError(t, bus.Subscribe(bad))

	bus.Publish(context.Background(), UserCreated{})

	spans := rec.Ended()
	require.Len(t, spans, 3)

	var dispatch sdktrace.ReadOnlySpan
	statuses := map[codes.Code]int{}
	for _, s := range spans {
		switch s.Name() {
		case "minibus.dispatch":
			dispatch = s
		case "minibus.deliver":
			statuses[s.Status().Code]++
			assert.Contains(t, s.Attributes(), attribute.String(telemetry.EventTypeKey, "minibus_test.UserCreated"))
		default:
			t.Fatalf("unexpected span %q", s.Name())
		}
	}
	require.NotNil(t, dispatch)
	assert.Contains(t, dispatch.Attributes(), attribute.Int(telemetry.MatchedKey, 2))
	assert.Equal(t, map[codes.Code]int{codes.Ok: 1, codes.Error: 1}, statuses)

	for _, s := range spans {
		if s.Name() == "minibus.deliver" {
			assert.Equal(t, dispatch.SpanContext().SpanID(), s.Parent().SpanID())
		}
	}
	runtime.KeepAlive(ok)
	runtime.KeepAlive(bad)
}
