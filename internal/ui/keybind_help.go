package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var helpBoxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color(ColorAccent)).
	Padding(0, 1).
	MarginTop(1)

// RenderKeybindHelp produces the transient leader menu shown after SPC.
func RenderKeybindHelp(keyHandler *KeyHandler, mode AppMode) string {
	if keyHandler == nil || keyHandler.Registry == nil {
		return ""
	}
	bindings := NewKeyMap(keyHandler.Registry, mode).ShortHelp()
	if len(bindings) == 0 {
		return ""
	}
	content := Styles.Muted.Render(LeaderSeq) + " " + newHelpModel().ShortHelpView(bindings)
	return helpBoxStyle.Render(content)
}

// RenderFullHelp produces the key reference toggled with ?.
func RenderFullHelp(reg *KeybindRegistry, mode AppMode) string {
	h := newHelpModel()
	h.ShowAll = true
	return helpBoxStyle.Render(Styles.Title.Render("Keys") + "\n" + h.View(NewKeyMap(reg, mode)))
}
