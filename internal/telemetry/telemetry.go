// Package telemetry sets up OpenTelemetry tracing for atlasui.
// Tracing is off unless an OTLP endpoint is configured; callers always get a
// usable tracer either way.
package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// TracerName is the instrumentation scope used for API spans.
const TracerName = "atlasui/api"

// DefaultServiceName is reported when OTEL_SERVICE_NAME is unset.
const DefaultServiceName = "atlasui"

// Provider owns the SDK tracer provider and its exporter.
// A nil *Provider is valid and hands out no-op tracers.
type Provider struct {
	provider *sdktrace.TracerProvider
	tracer   oteltrace.Tracer
}

// tracesPath is appended to a base endpoint URL, as for OTEL_EXPORTER_OTLP_ENDPOINT.
const tracesPath = "/v1/traces"

// NewProvider creates an OTLP/HTTP exporting provider.
// endpoint is a base URL ("http://localhost:4318") or a bare host:port, which
// is sent plain HTTP. Returns nil if endpoint is empty (disabled).
func NewProvider(ctx context.Context, endpoint, serviceName string) (*Provider, error) {
	if endpoint == "" {
		return nil, nil
	}

	opts, err := exporterOptions(endpoint)
	if err != nil {
		return nil, err
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}

	if serviceName == "" {
		serviceName = DefaultServiceName
	}
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)

	return newProvider(sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)), nil
}

func exporterOptions(endpoint string) ([]otlptracehttp.Option, error) {
	if !strings.Contains(endpoint, "://") {
		return []otlptracehttp.Option{
			otlptracehttp.WithEndpoint(endpoint),
			otlptracehttp.WithInsecure(),
		}, nil
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("otlp endpoint %q: %w", endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("otlp endpoint %q: scheme must be http or https", endpoint)
	}
	u.Path = strings.TrimRight(u.Path, "/") + tracesPath
	return []otlptracehttp.Option{otlptracehttp.WithEndpointURL(u.String())}, nil
}

// RouteErrors sends the SDK's internal errors and diagnostics to logger
// instead of stderr, which the TUI owns.
func RouteErrors(logger *slog.Logger) {
	otel.SetLogger(logr.FromSlogHandler(logger.Handler()))
	otel.SetErrorHandler(otel.ErrorHandlerFunc(func(err error) {
		logger.Warn("opentelemetry", "error", err)
	}))
}

// NewProviderWithSDK wraps an already configured SDK provider.
// Tests use it with an in-memory span recorder.
func NewProviderWithSDK(tp *sdktrace.TracerProvider) *Provider {
	return newProvider(tp)
}

func newProvider(tp *sdktrace.TracerProvider) *Provider {
	return &Provider{
		provider: tp,
		tracer:   tp.Tracer(TracerName),
	}
}

// Tracer returns the API tracer, or a no-op tracer when tracing is disabled.
func (p *Provider) Tracer() oteltrace.Tracer {
	if p == nil || p.tracer == nil {
		return noop.NewTracerProvider().Tracer(TracerName)
	}
	return p.tracer
}

// Shutdown flushes pending spans and closes the exporter.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil || p.provider == nil {
		return nil
	}
	return p.provider.Shutdown(ctx)
}
