package api

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"atlasui/internal/apitest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestListWorkouts(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	id := srv.AddSession("2026-10-01", "push",
		apitest.Exercise(1, "Bench press", 80.0, 8, 8, 6),
		apitest.Exercise(2, "Dips", "", 12, 10),
	)

	c := NewClient(srv.URL)
	rows, err := c.ListWorkouts(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, id, rows[0].WorkoutID())
	assert.Equal(t, "2026-10-01", rows[0].Cell(KeyWorkoutDate))
	assert.Equal(t, "push", rows[0].Cell(KeySplit))
	assert.Equal(t, "2", rows[0].Cell(KeyExerciseCount))
	assert.Equal(t, []string{"/api/workouts"}, srv.Requests())
}

func TestListWorkouts_EmptyArray(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	rows, err := NewClient(srv.URL + "/").ListWorkouts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestListWorkouts_StatusError(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	srv.WorkoutsHandler = apitest.Respond(http.StatusNotFound, `{"detail":"Not Found"}`)

	_, err := NewClient(srv.URL).ListWorkouts(context.Background())
	require.Error(t, err)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Equal(t, "Failed to fetch sessions: 404 Not Found", err.Error())
}

func TestListWorkouts_NotArray(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"object", `{"sessions":[]}`},
		{"null", `null`},
		{"string", `"ok"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := apitest.NewServer()
			defer srv.Close()
			srv.WorkoutsHandler = apitest.Respond(http.StatusOK, tt.body)

			_, err := NewClient(srv.URL).ListWorkouts(context.Background())
			require.ErrorIs(t, err, ErrNotArray)
			assert.Equal(t, "API response is not an array", err.Error())
		})
	}
}

func TestListWorkouts_MalformedArray(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	srv.WorkoutsHandler = apitest.Respond(http.StatusOK, `[{"workout_id": `)

	_, err := NewClient(srv.URL).ListWorkouts(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotArray)
	assert.Contains(t, err.Error(), "decode sessions")
}

func TestListWorkouts_Unreachable(t *testing.T) {
	srv := apitest.NewServer()
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, WithTimeout(time.Second)).ListWorkouts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to fetch sessions")
}

func TestListWorkouts_ContextCanceled(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewClient(srv.URL).ListWorkouts(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestListExercises(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	id := srv.AddSession("2026-10-02", "legs",
		apitest.Exercise(10, "Squat", 120.5, 5, 5, 5, 5, 5),
		apitest.Exercise(11, "Leg curl", 40.0, 12),
	)

	rows, err := NewClient(srv.URL).ListExercises(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "10", rows[0].Cell(KeyWorkoutLogID))
	assert.Equal(t, "Squat", rows[0].Cell(KeyExercise))
	assert.Equal(t, "120.5", rows[0].Cell(KeyWeightKg))
	assert.Equal(t, "5", rows[0].Cell("set5_reps"))
	assert.Equal(t, "", rows[1].Cell("set2_reps"))
	assert.Equal(t, []string{"/api/workouts/" + id + "/exercises"}, srv.Requests())
}

func TestListExercises_InvalidID(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	_, err := NewClient(srv.URL).ListExercises(context.Background(), "not-a-uuid")
	require.ErrorIs(t, err, ErrInvalidWorkoutID)
	assert.Empty(t, srv.Requests(), "invalid id must not reach the API")
}

func TestListExercises_StatusError(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	id := srv.AddSession("2026-10-02", "legs")
	srv.ExercisesHandler = apitest.Respond(http.StatusInternalServerError, `oops`)

	_, err := NewClient(srv.URL).ListExercises(context.Background(), id)
	require.Error(t, err)
	assert.Equal(t, "Failed to fetch exercises: 500 Internal Server Error", err.Error())
}

func TestClient_RecordsSpans(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	srv.AddSession("2026-10-03", "pull")

	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	c := NewClient(srv.URL, WithTracer(tp.Tracer("test")))

	_, err := c.ListWorkouts(context.Background())
	require.NoError(t, err)

	srv.WorkoutsHandler = apitest.Respond(http.StatusBadGateway, "")
	_, err = c.ListWorkouts(context.Background())
	require.Error(t, err)

	ended := rec.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, "atlasui.api.list_workouts", ended[0].Name())
	assert.Equal(t, codes.Unset, ended[0].Status().Code)
	assert.Equal(t, codes.Error, ended[1].Status().Code)

	var rowsAttr bool
	for _, kv := range ended[0].Attributes() {
		if kv.Key == "atlasui.rows" {
			rowsAttr = true
			assert.Equal(t, int64(1), kv.Value.AsInt64())
		}
	}
	assert.True(t, rowsAttr, "expected atlasui.rows attribute")
}
