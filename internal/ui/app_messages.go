package ui

import "atlasui/internal/api"

// RowsLoadedMsg carries a successful fetch. Gen identifies the fetch that
// produced it; results from superseded fetches are dropped.
type RowsLoadedMsg struct {
	Gen  int
	Rows []api.Row
}

// FetchFailedMsg carries a failed fetch.
type FetchFailedMsg struct {
	Gen int
	Err error
}

// ViewSessionMsg is sent by the sessions table's "View" action.
type ViewSessionMsg struct {
	Row api.Row
}

// EditExerciseMsg is sent by the exercises table's "Edit" action.
type EditExerciseMsg struct {
	Row api.Row
}

// ShowDeleteMsg asks for confirmation before removing a row.
type ShowDeleteMsg struct {
	Row   api.Row
	Index int
}

// DeleteRowMsg removes a confirmed row client-side. Key is the value of the
// current view's identity column; when empty the row at Index is removed
// instead.
type DeleteRowMsg struct {
	Key   string
	Index int
}

// BackToSessionsMsg leaves the exercises view (Esc, b, SPC b).
type BackToSessionsMsg struct{}

// ToggleHelpMsg shows or hides the full key reference (?).
type ToggleHelpMsg struct{}

// RefreshMsg re-issues the current view's fetch (r, SPC r).
type RefreshMsg struct{}

// DismissModalMsg is sent when user cancels a modal (Esc).
type DismissModalMsg struct{}
