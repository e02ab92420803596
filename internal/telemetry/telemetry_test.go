package telemetry

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNewProvider_DisabledWithoutEndpoint(t *testing.T) {
	p, err := NewProvider(context.Background(), "", "")
	require.NoError(t, err)
	assert.Nil(t, p)

	// A nil provider still hands out a working tracer.
	_, span := p.Tracer().Start(context.Background(), "noop")
	span.End()
	assert.False(t, span.SpanContext().IsSampled())
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestNewProviderWithSDK_RecordsSpans(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	p := NewProviderWithSDK(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)))

	_, span := p.Tracer().Start(context.Background(), "atlasui.test")
	span.End()

	ended := rec.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "atlasui.test", ended[0].Name())
	assert.Equal(t, TracerName, ended[0].InstrumentationScope().Name)
	require.NoError(t, p.Shutdown(context.Background()))
}

// collector records the paths of OTLP export requests.
type collector struct {
	mu    sync.Mutex
	paths []string
}

func (c *collector) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	c.paths = append(c.paths, r.Method+" "+r.URL.Path)
	c.mu.Unlock()
	w.Header().Set("Content-Type", "application/x-protobuf")
	w.WriteHeader(http.StatusOK)
}

func (c *collector) Paths() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.paths...)
}

func TestNewProvider_ExportsToEndpointURL(t *testing.T) {
	col := &collector{}
	srv := httptest.NewServer(col)
	defer srv.Close()

	ctx := context.Background()
	p, err := NewProvider(ctx, srv.URL, "atlasui-test")
	require.NoError(t, err)
	require.NotNil(t, p)

	_, span := p.Tracer().Start(ctx, "atlasui.api.list_workouts")
	span.End()
	require.NoError(t, p.Shutdown(ctx))

	assert.Equal(t, []string{"POST /v1/traces"}, col.Paths())
}

func TestNewProvider_EndpointWithBasePath(t *testing.T) {
	col := &collector{}
	srv := httptest.NewServer(col)
	defer srv.Close()

	ctx := context.Background()
	p, err := NewProvider(ctx, srv.URL+"/otlp/", "")
	require.NoError(t, err)

	_, span := p.Tracer().Start(ctx, "atlasui.api.list_exercises")
	span.End()
	require.NoError(t, p.Shutdown(ctx))

	assert.Equal(t, []string{"POST /otlp/v1/traces"}, col.Paths())
}

func TestNewProvider_RejectsUnknownScheme(t *testing.T) {
	_, err := NewProvider(context.Background(), "grpc://localhost:4317", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scheme must be http or https")
}

func TestRouteErrors(t *testing.T) {
	var buf bytes.Buffer
	RouteErrors(slog.New(slog.NewTextHandler(&buf, nil)))

	otel.Handle(errors.New("traces export: connection refused"))
	assert.Contains(t, buf.String(), "traces export: connection refused")
}
