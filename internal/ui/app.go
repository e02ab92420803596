package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"atlasui/internal/api"
	"atlasui/internal/logging"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Titles and fixed copy.
const (
	SessionsTitle  = "Atlas UI – Workout Sessions"
	ExercisesTitle = "Exercises"
	LoadingTitle   = "Loading..."
	LoadingHint    = "Please wait while we connect to the server."
	ErrorTitle     = "Error Loading Data"
	BackHint       = "← Back to Sessions"
)

// SessionMeta is the date and split of the selected session.
type SessionMeta struct {
	Date  string
	Split string
}

// AppModel is the root model. It owns fetch, loading and error state and
// switches between the sessions and exercises tables.
type AppModel struct {
	Mode              AppMode
	SelectedWorkoutID string
	SelectedMeta      *SessionMeta

	Rows     []api.Row
	Loading  bool
	Err      error
	ShowHelp bool

	Sessions   *TableView
	Exercises  *TableView
	Overlays   OverlayStack
	KeyHandler *KeyHandler

	Fetcher api.Fetcher
	Logger  *slog.Logger

	spinner     spinner.Model
	gen         int
	cancelFetch context.CancelFunc
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel creates the root model. Nothing is fetched until Init.
func NewAppModel(f api.Fetcher, logger *slog.Logger) *AppModel {
	if logger == nil {
		logger = logging.Discard()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccent))

	a := &AppModel{
		Mode:    ModeSessions,
		Loading: true,
		Fetcher: f,
		Logger:  logger,
		spinner: s,
	}

	a.Sessions = NewTableView(SessionsTitle, api.SessionColumns).
		WithSpecial(SpecialAction{
			Label:    "View",
			OnSelect: func(row api.Row) tea.Msg { return ViewSessionMsg{Row: row} },
		}).
		WithDelete(func(row api.Row, i int) tea.Msg { return ShowDeleteMsg{Row: row, Index: i} })

	a.Exercises = NewTableView(ExercisesTitle, api.ExerciseColumns).
		WithSpecial(SpecialAction{
			Label:    "Edit",
			OnSelect: func(row api.Row) tea.Msg { return EditExerciseMsg{Row: row} },
		}).
		WithDelete(func(row api.Row, i int) tea.Msg { return ShowDeleteMsg{Row: row, Index: i} })

	a.KeyHandler = NewKeyHandler(NewKeybindRegistry(appKeybinds()...))

	return a
}

// appKeybinds are the bindings outside the table's own keys.
func appKeybinds() []Keybind {
	refresh := func() tea.Msg { return RefreshMsg{} }
	back := func() tea.Msg { return BackToSessionsMsg{} }
	toggleHelp := func() tea.Msg { return ToggleHelpMsg{} }
	return []Keybind{
		{Seq: "q", Desc: "quit", Cmd: tea.Quit},
		{Seq: "?", Desc: "keys", Cmd: toggleHelp},
		{Seq: "SPC q", Desc: "Quit", Cmd: tea.Quit},
		{Seq: "SPC r", Desc: "Refresh", Cmd: refresh},
		{Seq: "SPC b", Desc: "Back to sessions", Modes: []AppMode{ModeExercises}, Cmd: back},
		{Seq: "SPC ?", Desc: "Keys", Cmd: toggleHelp},
	}
}

// identityColumn is the column delete matches rows on in the current mode.
func (a *AppModel) identityColumn() string {
	if a.Mode == ModeExercises {
		return api.KeyWorkoutLogID
	}
	return api.KeyWorkoutID
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (a *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: a}
}

// currentTable returns the table for the current mode.
func (a *AppModel) currentTable() *TableView {
	if a.Mode == ModeExercises {
		return a.Exercises
	}
	return a.Sessions
}

// fetch starts the fetch for the current mode, cancelling any fetch still
// in flight. Exercises mode without a selection fetches nothing.
func (a *AppModel) fetch() tea.Cmd {
	if a.cancelFetch != nil {
		a.cancelFetch()
		a.cancelFetch = nil
	}
	if a.Fetcher == nil {
		return nil
	}

	var ctx context.Context
	a.gen++
	switch {
	case a.Mode == ModeSessions:
		ctx, a.cancelFetch = context.WithCancel(context.Background())
		a.Logger.Info("fetching sessions", "gen", a.gen)
		a.Loading = true
		return tea.Batch(fetchSessionsCmd(ctx, a.Fetcher, a.gen), a.spinner.Tick)
	case a.Mode == ModeExercises && a.SelectedWorkoutID != "":
		ctx, a.cancelFetch = context.WithCancel(context.Background())
		a.Logger.Info("fetching exercises", "gen", a.gen, "workout_id", a.SelectedWorkoutID)
		a.Loading = true
		return tea.Batch(fetchExercisesCmd(ctx, a.Fetcher, a.gen, a.SelectedWorkoutID), a.spinner.Tick)
	}
	return nil
}

// setRows replaces the rows of the current view.
func (a *AppModel) setRows(rows []api.Row) {
	a.Rows = rows
	a.currentTable().SetRows(rows)
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return a.fetch()
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.Sessions.Update(msg)
		a.Exercises.Update(msg)
		return a, nil

	case spinner.TickMsg:
		if !a.Loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case RowsLoadedMsg:
		if msg.Gen != a.gen {
			a.Logger.Debug("dropping stale result", "gen", msg.Gen, "current", a.gen)
			return a, nil
		}
		a.Loading = false
		a.Err = nil
		a.setRows(msg.Rows)
		a.Logger.Info("rows loaded", "mode", a.Mode.String(), "count", len(msg.Rows))
		return a, nil

	case FetchFailedMsg:
		if msg.Gen != a.gen {
			a.Logger.Debug("dropping stale error", "gen", msg.Gen, "current", a.gen, "error", msg.Err)
			return a, nil
		}
		a.Loading = false
		a.Err = msg.Err
		a.Logger.Error("fetch failed", "mode", a.Mode.String(), "error", msg.Err)
		return a, nil

	case ViewSessionMsg:
		a.Logger.Info("viewing session", "workout_id", msg.Row.WorkoutID())
		a.SelectedWorkoutID = msg.Row.WorkoutID()
		a.SelectedMeta = &SessionMeta{
			Date:  msg.Row.Cell(api.KeyWorkoutDate),
			Split: msg.Row.Cell(api.KeySplit),
		}
		a.Mode = ModeExercises
		a.Rows = nil
		a.Exercises.Clear()
		return a, a.fetch()

	case BackToSessionsMsg:
		if a.Mode != ModeExercises {
			return a, nil
		}
		a.Mode = ModeSessions
		a.SelectedWorkoutID = ""
		a.SelectedMeta = nil
		a.Exercises.Clear()
		return a, a.fetch()

	case ToggleHelpMsg:
		a.ShowHelp = !a.ShowHelp
		return a, nil

	case RefreshMsg:
		a.Err = nil
		return a, a.fetch()

	case EditExerciseMsg:
		a.Overlays.Push(NewNoticeModal("Edit", fmt.Sprintf(
			"Edit functionality for exercise %s (ID: %s) - Coming soon!",
			msg.Row.Cell(api.KeyExercise), msg.Row.Cell(api.KeyWorkoutLogID))))
		return a, nil

	case ShowDeleteMsg:
		if a.Mode == ModeExercises {
			a.Overlays.Push(NewDeleteExerciseConfirmModal(msg.Row, msg.Index))
		} else {
			a.Overlays.Push(NewDeleteSessionConfirmModal(msg.Row, msg.Index))
		}
		return a, nil

	case DeleteRowMsg:
		a.Overlays.Pop()
		a.setRows(removeRow(a.Rows, a.identityColumn(), msg.Key, msg.Index))
		a.Logger.Info("row removed locally", "mode", a.Mode.String(), "key", msg.Key)
		return a, nil

	case DismissModalMsg:
		a.Overlays.Pop()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

// handleKey routes a key to the top modal, the keybind registry, the
// app-level navigation, and finally the current table.
func (a *appModelAdapter) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}
	if a.Overlays.Len() > 0 {
		cmd, _ := a.Overlays.UpdateTop(msg)
		return a, cmd
	}
	if a.KeyHandler != nil {
		if consumed, cmd := a.KeyHandler.Handle(msg, a.Mode); consumed {
			return a, cmd
		}
	}

	switch msg.String() {
	case "r":
		if a.Err != nil {
			return a, func() tea.Msg { return RefreshMsg{} }
		}
	case "esc", "b", "backspace":
		if msg.String() == "esc" && a.ShowHelp {
			a.ShowHelp = false
			return a, nil
		}
		if a.Mode == ModeExercises {
			return a, func() tea.Msg { return BackToSessionsMsg{} }
		}
	}

	if a.Loading || a.Err != nil {
		return a, nil
	}
	_, cmd := a.currentTable().Update(msg)
	return a, cmd
}

// removeRow drops the rows whose column equals key, or the row at index when
// key is empty.
func removeRow(rows []api.Row, column, key string, index int) []api.Row {
	if key != "" {
		return api.RemoveByKey(rows, column, key)
	}
	if index < 0 || index >= len(rows) {
		return rows
	}
	out := make([]api.Row, 0, len(rows)-1)
	out = append(out, rows[:index]...)
	return append(out, rows[index+1:]...)
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	var b strings.Builder
	switch {
	case a.Loading:
		b.WriteString(Styles.Title.Render(LoadingTitle) + " " + a.spinner.View() + "\n\n")
		b.WriteString(Styles.Muted.Render(LoadingHint) + "\n")
	case a.Err != nil:
		b.WriteString(Styles.TitleWarning.Render(ErrorTitle) + "\n\n")
		b.WriteString(Styles.Error.Render(a.Err.Error()) + "\n\n")
		b.WriteString(Styles.Hint.Render("r: retry  q: quit") + "\n")
	case a.Mode == ModeExercises:
		b.WriteString(Styles.Hint.Render(BackHint+" (esc)") + "\n")
		if a.SelectedMeta != nil {
			b.WriteString(fmt.Sprintf("%s %s | %s %s\n",
				Styles.Muted.Render("Date:"), a.SelectedMeta.Date,
				Styles.Muted.Render("Split:"), a.SelectedMeta.Split))
		}
		b.WriteString("\n" + a.Exercises.View() + "\n")
		b.WriteString(Styles.Hint.Render("enter: edit  d: delete  esc: back  SPC: commands  ?: keys") + "\n")
	default:
		b.WriteString(a.Sessions.View() + "\n")
		b.WriteString(Styles.Hint.Render("enter: view  d: delete  q: quit  SPC: commands  ?: keys") + "\n")
	}

	if top, ok := a.Overlays.Peek(); ok {
		b.WriteString(top.View() + "\n")
	}
	if a.KeyHandler != nil && a.KeyHandler.LeaderWaiting {
		b.WriteString(RenderKeybindHelp(a.KeyHandler, a.Mode) + "\n")
	} else if a.ShowHelp && a.KeyHandler != nil {
		b.WriteString(RenderFullHelp(a.KeyHandler.Registry, a.Mode) + "\n")
	}
	return b.String()
}
