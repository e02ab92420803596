package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeybindRegistry_LookupHonoursMode(t *testing.T) {
	reg := NewKeybindRegistry(appKeybinds()...)

	assert.NotNil(t, reg.Lookup("q", ModeSessions))
	assert.NotNil(t, reg.Lookup("SPC r", ModeExercises))
	assert.NotNil(t, reg.Lookup("SPC b", ModeExercises))
	assert.Nil(t, reg.Lookup("SPC b", ModeSessions), "back has nowhere to go from sessions")
	assert.Nil(t, reg.Lookup("x", ModeSessions))
}

func TestKeybindRegistry_AddReplaces(t *testing.T) {
	reg := NewKeybindRegistry(Keybind{Seq: "space r", Desc: "Refresh", Cmd: tea.Quit})
	reg.Add(Keybind{Seq: "SPC r", Desc: "Reload", Cmd: tea.Quit})

	leader := reg.Leader(ModeSessions)
	require.Len(t, leader, 1)
	assert.Equal(t, "SPC r", leader[0].Seq)
	assert.Equal(t, "Reload", leader[0].Desc)
}

func TestKeybindRegistry_LeaderAndDirect(t *testing.T) {
	reg := NewKeybindRegistry(appKeybinds()...)

	seqs := func(bs []Keybind) []string {
		var out []string
		for _, b := range bs {
			out = append(out, b.Seq)
		}
		return out
	}
	assert.Equal(t, []string{"SPC ?", "SPC q", "SPC r"}, seqs(reg.Leader(ModeSessions)))
	assert.Equal(t, []string{"SPC ?", "SPC b", "SPC q", "SPC r"}, seqs(reg.Leader(ModeExercises)))
	assert.Equal(t, []string{"?", "q"}, seqs(reg.Direct(ModeSessions)))
}

func TestKeyHandler_LeaderSequence(t *testing.T) {
	h := NewKeyHandler(NewKeybindRegistry(appKeybinds()...))

	consumed, cmd := h.Handle(keyMsg(" "), ModeSessions)
	assert.True(t, consumed)
	assert.Nil(t, cmd)
	assert.True(t, h.LeaderWaiting)

	consumed, cmd = h.Handle(keyMsg("r"), ModeSessions)
	assert.True(t, consumed)
	assert.False(t, h.LeaderWaiting)
	require.NotNil(t, cmd)
	assert.Equal(t, RefreshMsg{}, cmd())
}

func TestKeyHandler_LeaderBackFilteredInSessions(t *testing.T) {
	h := NewKeyHandler(NewKeybindRegistry(appKeybinds()...))

	h.Handle(keyMsg(" "), ModeSessions)
	consumed, cmd := h.Handle(keyMsg("b"), ModeSessions)
	assert.True(t, consumed, "the key after the leader never reaches the table")
	assert.Nil(t, cmd)
	assert.False(t, h.LeaderWaiting)

	h.Handle(keyMsg(" "), ModeExercises)
	_, cmd = h.Handle(keyMsg("b"), ModeExercises)
	require.NotNil(t, cmd)
	assert.Equal(t, BackToSessionsMsg{}, cmd())
}

func TestKeyHandler_EscCancelsLeader(t *testing.T) {
	h := NewKeyHandler(NewKeybindRegistry(appKeybinds()...))

	h.Handle(keyMsg(" "), ModeSessions)
	consumed, cmd := h.Handle(keyMsg("esc"), ModeSessions)
	assert.True(t, consumed)
	assert.Nil(t, cmd)
	assert.False(t, h.LeaderWaiting)

	consumed, _ = h.Handle(keyMsg("esc"), ModeExercises)
	assert.False(t, consumed, "esc outside leader mode goes back to the app")
}

func TestKeyHandler_TableKeysFallThrough(t *testing.T) {
	h := NewKeyHandler(NewKeybindRegistry(appKeybinds()...))
	for _, k := range []string{"j", "k", "enter", "d"} {
		consumed, _ := h.Handle(keyMsg(k), ModeSessions)
		assert.False(t, consumed, k)
	}
}

func TestRenderKeybindHelp(t *testing.T) {
	h := NewKeyHandler(NewKeybindRegistry(appKeybinds()...))
	h.Handle(keyMsg(" "), ModeSessions)

	out := RenderKeybindHelp(h, ModeSessions)
	assert.Contains(t, out, "Refresh")
	assert.Contains(t, out, "cancel")
	assert.NotContains(t, out, "Back to sessions")

	assert.Contains(t, RenderKeybindHelp(h, ModeExercises), "Back to sessions")
	assert.Empty(t, RenderKeybindHelp(nil, ModeSessions))
}

func TestRenderFullHelp(t *testing.T) {
	reg := NewKeybindRegistry(appKeybinds()...)

	sessions := RenderFullHelp(reg, ModeSessions)
	for _, want := range []string{"view", "delete", "SPC r", "Refresh", "quit"} {
		assert.Contains(t, sessions, want)
	}
	assert.NotContains(t, sessions, "back")

	exercises := RenderFullHelp(reg, ModeExercises)
	assert.Contains(t, exercises, "edit")
	assert.True(t, strings.Contains(exercises, "esc/b"), "exercises help: %s", exercises)
}

// keyMsg creates a tea.KeyMsg for testing. Bubble Tea uses KeyType and Runes.
// KeySpace.String() returns " ", KeyEsc returns "esc", etc.
func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "space", " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}
