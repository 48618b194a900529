// Package observability provides OpenTelemetry integration for distributed tracing.
//
// Traces are exported over OTLP/HTTP to a local collector agent (a Datadog
// Agent, Grafana Alloy, or any OTLP-compatible receiver) rather than a
// vendor endpoint. The agent buffers, retries, and authenticates, so the
// application never holds exporter credentials.
//
// Tracing is best-effort: when the exporter cannot be constructed the
// application runs with tracing disabled instead of failing startup.
package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// DefaultEndpoint is the default OTLP/HTTP collector endpoint.
const DefaultEndpoint = "localhost:4318"

// Config for OTLP trace export.
type Config struct {
	// Endpoint is the collector OTLP/HTTP endpoint (default: localhost:4318)
	Endpoint string
	// Environment is the deployment environment (dev, staging, prod)
	Environment string
	// ServiceName is the service name attached to exported spans
	ServiceName string
}

// Setup installs a global TracerProvider that ships spans to the configured
// OTLP collector via a BatchSpanProcessor.
//
// Returns a shutdown function that flushes pending spans.
// If Endpoint is empty, uses DefaultEndpoint (localhost:4318).
func Setup(ctx context.Context, cfg Config, logger *slog.Logger) (shutdown func(context.Context) error, err error) {
	if logger == nil {
		logger = slog.Default()
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(), // localhost doesn't need TLS
	)
	if err != nil {
		logger.Warn("failed to create trace exporter, tracing disabled", "error", err)
		return func(context.Context) error { return nil }, nil
	}

	var attrs []attribute.KeyValue
	if cfg.ServiceName != "" {
		attrs = append(attrs, attribute.String("service.name", cfg.ServiceName))
	}
	if cfg.Environment != "" {
		attrs = append(attrs, attribute.String("deployment.environment", cfg.Environment))
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(attrs...)),
	)
	otel.SetTracerProvider(provider)

	logger.Debug("tracing enabled",
		"endpoint", endpoint,
		"service", cfg.ServiceName,
		"environment", cfg.Environment,
	)

	return provider.Shutdown, nil
}
