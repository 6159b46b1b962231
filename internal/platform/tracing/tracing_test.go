// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tracing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/tracing"
)

/*
TestSetup_Noop returns a harmless shutdown when tracing is off.
*/
func TestSetup_Noop(t *testing.T) {
	tests := []struct {
		name    string
		options tracing.Options
	}{
		{"no_endpoint", tracing.Options{ServiceName: "folio-test", Enabled: true}},
		{"disabled", tracing.Options{ServiceName: "folio-test", Endpoint: "http://localhost:4318"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shutdown, err := tracing.Setup(context.Background(), tt.options)
			require.NoError(t, err)

			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			assert.NoError(t, shutdown(ctx))
		})
	}
}

/*
TestSetup_Enabled builds a provider against a non-routable collector.
*/
func TestSetup_Enabled(t *testing.T) {
	shutdown, err := tracing.Setup(context.Background(), tracing.Options{
		ServiceName: "folio-test",
		Endpoint:    "http://192.0.2.1:4318",
		Enabled:     true,
	})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

/*
TestEnd marks only server faults as span errors.
*/
func TestEnd(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := provider.Tracer("folio-test")

	_, ok := tracer.Start(context.Background(), "ok")
	tracing.End(ok, nil)

	_, invalid := tracer.Start(context.Background(), "invalid_state")
	tracing.End(invalid, apperr.InvalidState("Review is not awaiting a decision"))

	_, broken := tracer.Start(context.Background(), "broken")
	tracing.End(broken, errors.New("connection reset"))

	spans := recorder.Ended()
	require.Len(t, spans, 3)
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Equal(t, codes.Unset, spans[1].Status().Code)
	assert.Len(t, spans[1].Events(), 1)
	assert.Equal(t, codes.Error, spans[2].Status().Code)
}
