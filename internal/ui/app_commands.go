package ui

import (
	"context"

	"atlasui/internal/api"

	tea "github.com/charmbracelet/bubbletea"
)

// fetchSessionsCmd loads the session list under ctx.
func fetchSessionsCmd(ctx context.Context, f api.Fetcher, gen int) tea.Cmd {
	return func() tea.Msg {
		rows, err := f.ListWorkouts(ctx)
		if err != nil {
			return FetchFailedMsg{Gen: gen, Err: err}
		}
		return RowsLoadedMsg{Gen: gen, Rows: rows}
	}
}

// fetchExercisesCmd loads one session's exercises under ctx.
func fetchExercisesCmd(ctx context.Context, f api.Fetcher, gen int, workoutID string) tea.Cmd {
	return func() tea.Msg {
		rows, err := f.ListExercises(ctx, workoutID)
		if err != nil {
			return FetchFailedMsg{Gen: gen, Err: err}
		}
		return RowsLoadedMsg{Gen: gen, Rows: rows}
	}
}
