// Package tracing installs the process-wide OpenTelemetry tracer provider.
package tracing

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/emberwake/merch-cart/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// ShutdownFunc flushes pending spans.
type ShutdownFunc func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// Setup exports spans over OTLP/HTTP when an endpoint is configured. Without
// one the global no-op provider stays in place and only context propagation
// is installed.
func Setup(ctx context.Context, cfg config.Otel, env string) (ShutdownFunc, error) {

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if cfg.ExporterEndpoint == "" {
		slog.Info("Tracing exporter not configured, spans are not exported")
		return noopShutdown, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(cfg.ExporterEndpoint))
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(Resource(cfg.ServiceName, env)),
		sdktrace.WithSampler(Sampler(cfg.SamplerRatio)),
	)

	otel.SetTracerProvider(provider)

	slog.Info("Tracing enabled",
		slog.String("endpoint", cfg.ExporterEndpoint),
		slog.Float64("sampler_ratio", cfg.SamplerRatio),
	)

	return provider.Shutdown, nil
}

func Resource(serviceName, env string) *resource.Resource {
	return resource.NewSchemaless(
		attribute.String("service.name", serviceName),
		attribute.String("deployment.environment", env),
	)
}

// Sampler follows the caller's sampling decision and samples root spans at
// ratio, clamped to [0, 1].
func Sampler(ratio float64) sdktrace.Sampler {
	ratio = min(max(ratio, 0), 1)

	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
}
