package telemetry

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const (
	exporterDialTimeout = time.Second * 3
	metricInterval      = time.Second * 5
)

// endpoint describes where one otlp signal goes. A grpc endpoint takes
// precedence over an http one when both are set.
type endpoint struct {
	Grpc    string            `json:"grpc_endpoint"`
	Http    string            `json:"http_endpoint"`
	Headers map[string]string `json:"headers"`
}

func (e endpoint) transport() string {
	if e.Grpc != "" {
		return "grpc"
	}
	return "http"
}

func (e endpoint) url() string {
	if e.Grpc != "" {
		return e.Grpc
	}
	return e.Http
}

type config struct {
	Otlp struct {
		Traces  endpoint `json:"traces"`
		Metrics endpoint `json:"metrics"`
	} `json:"otlp"`
}

func newResource(serviceName string) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
}

func newTraceProvider(ctx context.Context, r *resource.Resource, c config) (*trace.TracerProvider, error) {
	ctx, cancel := context.WithTimeout(ctx, exporterDialTimeout)
	defer cancel()

	ep := c.Otlp.Traces
	var exporter trace.SpanExporter
	var err error
	if ep.Grpc != "" {
		exporter, err = otlptracegrpc.New(
			ctx,
			otlptracegrpc.WithEndpointURL(ep.Grpc),
			otlptracegrpc.WithHeaders(ep.Headers),
		)
	} else {
		exporter, err = otlptracehttp.New(
			ctx,
			otlptracehttp.WithEndpointURL(ep.Http),
			otlptracehttp.WithHeaders(ep.Headers),
		)
	}
	if err != nil {
		return nil, err
	}
	slog.Info("trace exporter ready", "transport", ep.transport(), "endpoint", ep.url())

	return trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(r),
	), nil
}

func newMetricProvider(ctx context.Context, r *resource.Resource, c config) (*metric.MeterProvider, error) {
	ctx, cancel := context.WithTimeout(ctx, exporterDialTimeout)
	defer cancel()

	ep := c.Otlp.Metrics
	var exporter metric.Exporter
	var err error
	if ep.Grpc != "" {
		exporter, err = otlpmetricgrpc.New(
			ctx,
			otlpmetricgrpc.WithEndpointURL(ep.Grpc),
			otlpmetricgrpc.WithHeaders(ep.Headers),
		)
	} else {
		exporter, err = otlpmetrichttp.New(
			ctx,
			otlpmetrichttp.WithEndpointURL(ep.Http),
			otlpmetrichttp.WithHeaders(ep.Headers),
		)
	}
	if err != nil {
		return nil, err
	}
	slog.Info("metric exporter ready", "transport", ep.transport(), "endpoint", ep.url())

	return metric.NewMeterProvider(
		metric.WithReader(metric.NewPeriodicReader(exporter, metric.WithInterval(metricInterval))),
		metric.WithResource(r),
	), nil
}
