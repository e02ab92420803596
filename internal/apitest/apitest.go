// Package apitest runs an in-process fake of the WorkoutTracker API for
// tests. Routes mirror the real service: GET /api/workouts and
// GET /api/workouts/{id}/exercises.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Server is a fake API backed by in-memory fixtures.
// Handlers can be overridden per route to inject failures.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	sessions  []map[string]any
	exercises map[string][]map[string]any
	requests  []string

	// WorkoutsHandler, when set, replaces the /api/workouts handler.
	WorkoutsHandler http.HandlerFunc
	// ExercisesHandler, when set, replaces the exercises handler.
	ExercisesHandler http.HandlerFunc
}

// NewServer starts a fake API. Callers must Close it.
func NewServer() *Server {
	s := &Server{exercises: make(map[string][]map[string]any)}

	r := mux.NewRouter()
	r.HandleFunc("/api/workouts", s.handleWorkouts).Methods(http.MethodGet)
	r.HandleFunc("/api/workouts/{id}/exercises", s.handleExercises).Methods(http.MethodGet)
	r.Use(s.record)

	s.Server = httptest.NewServer(r)
	return s
}

// AddSession registers a session and its exercises; exercise_count is derived.
// Returns the session's workout_id.
func (s *Server) AddSession(date, split string, exercises ...map[string]any) string {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = append(s.sessions, map[string]any{
		"workout_id":     id,
		"workout_date":   date,
		"split":          split,
		"exercise_count": len(exercises),
	})
	s.exercises[id] = append([]map[string]any{}, exercises...)
	return id
}

// Requests returns the request paths seen so far, in order.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

// Exercise builds an exercise entry with five set slots; unset slots are "".
func Exercise(logID int, name string, weightKg any, reps ...any) map[string]any {
	e := map[string]any{
		"workout_log_id": logID,
		"exercise":       name,
		"weight_kg":      weightKg,
		"comment":        "",
	}
	for i, key := range []string{"set1_reps", "set2_reps", "set3_reps", "set4_reps", "set5_reps"} {
		if i < len(reps) {
			e[key] = reps[i]
		} else {
			e[key] = ""
		}
	}
	return e
}

// Respond returns a handler writing status and a raw body.
func Respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.URL.Path)
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleWorkouts(w http.ResponseWriter, r *http.Request) {
	if s.WorkoutsHandler != nil {
		s.WorkoutsHandler(w, r)
		return
	}
	s.mu.Lock()
	sessions := append([]map[string]any{}, s.sessions...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleExercises(w http.ResponseWriter, r *http.Request) {
	if s.ExercisesHandler != nil {
		s.ExercisesHandler(w, r)
		return
	}
	id := mux.Vars(r)["id"]
	if _, err := uuid.Parse(id); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid workout ID"})
		return
	}
	s.mu.Lock()
	exercises, ok := s.exercises[id]
	s.mu.Unlock()
	if !ok {
		exercises = []map[string]any{}
	}
	writeJSON(w, http.StatusOK, exercises)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
