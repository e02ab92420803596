package ui

import (
	"fmt"

	"atlasui/internal/api"

	tea "github.com/charmbracelet/bubbletea"
)

// ConfirmModal is a generic confirmation modal.
// Enter or y confirms; Esc or n cancels.
type ConfirmModal struct {
	Title     string
	Label     string
	Details   string // Optional warning details
	OnConfirm func() tea.Msg
}

// Ensure ConfirmModal implements View.
var _ View = (*ConfirmModal)(nil)

// NewConfirmModal creates a generic confirmation modal.
func NewConfirmModal(title, label string, onConfirm func() tea.Msg) *ConfirmModal {
	return &ConfirmModal{
		Title:     title,
		Label:     label,
		OnConfirm: onConfirm,
	}
}

// WithDetails adds warning details to the modal.
func (m *ConfirmModal) WithDetails(details string) *ConfirmModal {
	m.Details = details
	return m
}

// NewDeleteSessionConfirmModal asks before hiding a session row.
func NewDeleteSessionConfirmModal(row api.Row, index int) *ConfirmModal {
	return newDeleteRowModal(
		fmt.Sprintf("Are you sure you want to delete session %s?", row.Cell(api.KeyWorkoutID)),
		row.Cell(api.KeyWorkoutID), index,
	)
}

// NewDeleteExerciseConfirmModal asks before hiding an exercise row.
func NewDeleteExerciseConfirmModal(row api.Row, index int) *ConfirmModal {
	return newDeleteRowModal(
		fmt.Sprintf("Are you sure you want to delete exercise %s?", row.Cell(api.KeyExercise)),
		row.Cell(api.KeyWorkoutLogID), index,
	)
}

func newDeleteRowModal(label, key string, index int) *ConfirmModal {
	return NewConfirmModal("Delete?", label, func() tea.Msg {
		return DeleteRowMsg{Key: key, Index: index}
	}).WithDetails("Removed from this view only; reloading brings it back.")
}

// Init implements View.
func (m *ConfirmModal) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (m *ConfirmModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "n":
			return m, func() tea.Msg { return DismissModalMsg{} }
		case "enter", "y":
			if m.OnConfirm != nil {
				return m, m.OnConfirm
			}
		}
	}
	return m, nil
}

// View implements View.
func (m *ConfirmModal) View() string {
	content := Styles.TitleWarning.Render(m.Title) + "\n\n"
	content += Styles.Label.Render(m.Label)
	if m.Details != "" {
		content += "\n" + Styles.Details.Render(m.Details)
	}
	content += "\n\n" + Styles.Hint.Render("y/Enter: confirm  Esc: cancel")
	return Styles.BoxDanger.Render(content)
}
