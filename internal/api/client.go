// Package api is a read-only client for the WorkoutTracker HTTP API.
//
// Both endpoints return a JSON array of loosely-typed records. Anything else
// (a non-2xx status, a non-array body) surfaces as a single error whose
// message is meant to be shown to the user as-is.
package api

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"atlasui/internal/jsonutil"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Paths served by the WorkoutTracker API.
const (
	WorkoutsPath  = "/api/workouts"
	exercisesPath = "/api/workouts/%s/exercises"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 8 << 20

// Fetcher is the read side of the API used by the UI.
type Fetcher interface {
	ListWorkouts(ctx context.Context) ([]Row, error)
	ListExercises(ctx context.Context, workoutID string) ([]Row, error)
}

// Client talks to one WorkoutTracker instance.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *slog.Logger
	Tracer     oteltrace.Tracer
}

// Ensure Client implements Fetcher.
var _ Fetcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout on the client's http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.HTTPClient = &http.Client{Timeout: d} }
}

// WithLogger sets the logger for request records.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.Logger = l }
}

// WithTracer sets the tracer used for request spans.
func WithTracer(t oteltrace.Tracer) Option {
	return func(c *Client) { c.Tracer = t }
}

// NewClient creates a client for baseURL (e.g. "http://localhost:8000").
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		Tracer:     noop.NewTracerProvider().Tracer("atlasui/api"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListWorkouts fetches all workout session summaries.
func (c *Client) ListWorkouts(ctx context.Context) ([]Row, error) {
	return c.getRows(ctx, "atlasui.api.list_workouts", "sessions", WorkoutsPath)
}

// ListExercises fetches the exercise entries of one session.
func (c *Client) ListExercises(ctx context.Context, workoutID string) ([]Row, error) {
	id, err := uuid.Parse(workoutID)
	if err != nil {
		c.Logger.Error("rejecting workout id", "workout_id", workoutID, "error", err)
		return nil, fmt.Errorf("%w: %q", ErrInvalidWorkoutID, workoutID)
	}
	path := fmt.Sprintf(exercisesPath, url.PathEscape(id.String()))
	return c.getRows(ctx, "atlasui.api.list_exercises", "exercises", path,
		attribute.String("atlasui.workout.id", id.String()))
}

// getRows performs GET path and decodes a JSON array of objects.
func (c *Client) getRows(ctx context.Context, spanName, resource, path string, attrs ...attribute.KeyValue) (rows []Row, err error) {
	target := c.BaseURL + path
	ctx, span := c.Tracer.Start(ctx, spanName,
		oteltrace.WithSpanKind(oteltrace.SpanKindClient),
		oteltrace.WithAttributes(append(attrs,
			attribute.String("http.method", http.MethodGet),
			attribute.String("http.url", target),
		)...),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			c.Logger.Error("fetch failed", "resource", resource, "url", target, "error", err)
		} else {
			span.SetAttributes(attribute.Int("atlasui.rows", len(rows)))
		}
		span.End()
	}()

	c.Logger.Debug("fetching", "resource", resource, "url", target)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Failed to fetch %s: %w", resource, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	c.Logger.Debug("response received", "resource", resource, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			Resource:   resource,
			StatusCode: resp.StatusCode,
			Status:     reasonPhrase(resp),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", resource, err)
	}
	if !jsonutil.IsArray(body) {
		return nil, ErrNotArray
	}
	rows, err = jsonutil.UnmarshalArrayAllowEmpty[Row](body, "decode "+resource)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// reasonPhrase extracts "Not Found" from "404 Not Found", falling back to the
// standard text for the code.
func reasonPhrase(resp *http.Response) string {
	code := strconv.Itoa(resp.StatusCode)
	if s := strings.TrimSpace(strings.TrimPrefix(resp.Status, code)); s != "" {
		return s
	}
	return http.StatusText(resp.StatusCode)
}
