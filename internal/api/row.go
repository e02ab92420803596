package api

import "atlasui/internal/jsonutil"

// Row is one decoded record: a workout session summary or an exercise entry.
// Values keep their JSON types (string, float64, bool, nil, ...).
type Row map[string]any

// Column names a row key and its display label.
type Column struct {
	Key   string
	Label string
}

// Session and exercise keys as returned by the WorkoutTracker API.
const (
	KeyWorkoutID     = "workout_id"
	KeyWorkoutDate   = "workout_date"
	KeySplit         = "split"
	KeyExerciseCount = "exercise_count"
	KeyWorkoutLogID  = "workout_log_id"
	KeyExercise      = "exercise"
	KeyWeightKg      = "weight_kg"
	KeyComment       = "comment"
)

// SessionColumns is the display order for /api/workouts rows.
var SessionColumns = []Column{
	{Key: KeyWorkoutID, Label: "ID"},
	{Key: KeyWorkoutDate, Label: "Date"},
	{Key: KeySplit, Label: "Split"},
	{Key: KeyExerciseCount, Label: "Exercises"},
}

// ExerciseColumns is the display order for /api/workouts/{id}/exercises rows.
var ExerciseColumns = []Column{
	{Key: KeyWorkoutLogID, Label: "ID"},
	{Key: KeyExercise, Label: "Exercise"},
	{Key: KeyWeightKg, Label: "Weight (kg)"},
	{Key: "set1_reps", Label: "Set 1"},
	{Key: "set2_reps", Label: "Set 2"},
	{Key: "set3_reps", Label: "Set 3"},
	{Key: "set4_reps", Label: "Set 4"},
	{Key: "set5_reps", Label: "Set 5"},
	{Key: KeyComment, Label: "Comment"},
}

// Cell returns the display text for key. Missing and null values are empty.
func (r Row) Cell(key string) string {
	return jsonutil.ToString(r[key])
}

// WorkoutID is the session id as a string.
func (r Row) WorkoutID() string {
	return r.Cell(KeyWorkoutID)
}

// RemoveByKey returns rows without those whose column cell equals key.
// The input slice is not modified.
func RemoveByKey(rows []Row, column, key string) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if r.Cell(column) == key {
			continue
		}
		out = append(out, r)
	}
	return out
}
