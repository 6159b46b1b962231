// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package tracing wires OpenTelemetry tracing for the API process.
//
// Tracing is opt-in. When it is disabled no global provider is registered and
// the otel API falls back to its no-op tracer, so instrumented code pays
// almost nothing.
package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/taibuivan/folio/internal/platform/apperr"
)

// Options configures [Setup].
type Options struct {
	ServiceName    string
	ServiceVersion string
	Environment    string

	// Endpoint is the OTLP/HTTP collector URL, e.g. http://otel-collector:4318.
	Endpoint string
	Enabled  bool
}

// Shutdown flushes pending spans.
type Shutdown func(context.Context) error

// Setup registers the global tracer provider and W3C propagator.
//
// It returns a no-op [Shutdown] when tracing is disabled or no endpoint is
// configured. The returned function should be deferred by the caller.
func Setup(ctx context.Context, options Options) (Shutdown, error) {
	noop := func(context.Context) error { return nil }

	if !options.Enabled || options.Endpoint == "" {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(options.Endpoint))
	if err != nil {
		return noop, fmt.Errorf("tracing: exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(options.ServiceName),
			semconv.ServiceVersion(options.ServiceVersion),
			semconv.DeploymentEnvironment(options.Environment),
		),
	)
	if err != nil {
		return noop, fmt.Errorf("tracing: resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return provider.Shutdown, nil
}

// End records err on span (client errors are not span failures) and ends it.
//
// # Example
//
//	ctx, span := tracer.Start(ctx, "review.Approve")
//	defer func() { tracing.End(span, err) }()
func End(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		if appError := apperr.As(err); appError == nil || appError.HTTPStatus >= 500 {
			span.SetStatus(codes.Error, err.Error())
		}
	}
	span.End()
}
