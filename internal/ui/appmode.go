package ui

// AppMode is the top-level view: the session list or one session's exercises.
type AppMode int

const (
	ModeSessions AppMode = iota
	ModeExercises
)

func (m AppMode) String() string {
	switch m {
	case ModeSessions:
		return "Sessions"
	case ModeExercises:
		return "Exercises"
	default:
		return "Unknown"
	}
}
