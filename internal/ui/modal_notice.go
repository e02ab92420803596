package ui

import tea "github.com/charmbracelet/bubbletea"

// NoticeModal shows a message until Enter or Esc.
type NoticeModal struct {
	Title   string
	Message string
}

// Ensure NoticeModal implements View.
var _ View = (*NoticeModal)(nil)

// NewNoticeModal creates a notice.
func NewNoticeModal(title, message string) *NoticeModal {
	return &NoticeModal{Title: title, Message: message}
}

// Init implements View.
func (m *NoticeModal) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (m *NoticeModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "enter", "q":
			return m, func() tea.Msg { return DismissModalMsg{} }
		}
	}
	return m, nil
}

// View implements View.
func (m *NoticeModal) View() string {
	content := Styles.Title.Render(m.Title) + "\n\n" +
		Styles.Label.Render(m.Message) + "\n\n" +
		Styles.Hint.Render("Enter/Esc: close")
	return Styles.Box.Render(content)
}
