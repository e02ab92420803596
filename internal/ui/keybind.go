package ui

import (
	"slices"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// LeaderSeq is the leader key in binding notation. "SPC r" means space, then r.
const LeaderSeq = "SPC"

// Keybind is one registry entry. Seq is either a single key ("q", "?") or
// LeaderSeq followed by one key ("SPC r").
type Keybind struct {
	Seq   string
	Desc  string
	Modes []AppMode // empty: every mode
	Cmd   tea.Cmd
}

func (k Keybind) appliesTo(mode AppMode) bool {
	return len(k.Modes) == 0 || slices.Contains(k.Modes, mode)
}

func (k Keybind) leader() bool {
	return strings.HasPrefix(k.Seq, LeaderSeq+" ")
}

// KeybindRegistry holds the app's bindings keyed by normalized sequence.
type KeybindRegistry struct {
	bindings map[string]Keybind
}

// NewKeybindRegistry creates a registry holding binds.
func NewKeybindRegistry(binds ...Keybind) *KeybindRegistry {
	r := &KeybindRegistry{bindings: make(map[string]Keybind)}
	for _, b := range binds {
		r.Add(b)
	}
	return r
}

// Add registers b, replacing any binding for the same sequence.
func (r *KeybindRegistry) Add(b Keybind) {
	b.Seq = normalizeSeq(b.Seq)
	r.bindings[b.Seq] = b
}

// Lookup returns the command bound to seq in mode, or nil.
func (r *KeybindRegistry) Lookup(seq string, mode AppMode) tea.Cmd {
	b, ok := r.bindings[normalizeSeq(seq)]
	if !ok || !b.appliesTo(mode) {
		return nil
	}
	return b.Cmd
}

// Leader returns the leader bindings active in mode, sorted by key.
func (r *KeybindRegistry) Leader(mode AppMode) []Keybind {
	return r.collect(mode, true)
}

// Direct returns the single-key bindings active in mode, sorted by key.
func (r *KeybindRegistry) Direct(mode AppMode) []Keybind {
	return r.collect(mode, false)
}

func (r *KeybindRegistry) collect(mode AppMode, leader bool) []Keybind {
	var out []Keybind
	for _, b := range r.bindings {
		if b.Cmd == nil || b.leader() != leader || !b.appliesTo(mode) {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

// normalizeSeq maps tea's space spellings to LeaderSeq.
func normalizeSeq(seq string) string {
	parts := strings.Fields(seq)
	for i, p := range parts {
		if p == "space" {
			parts[i] = LeaderSeq
		}
	}
	if strings.HasPrefix(seq, " ") && len(parts) == 0 {
		return LeaderSeq
	}
	return strings.Join(parts, " ")
}

// KeyHandler tracks whether the leader was pressed and dispatches to the
// registry for the current mode.
type KeyHandler struct {
	Registry      *KeybindRegistry
	LeaderWaiting bool
}

// NewKeyHandler creates a handler over reg.
func NewKeyHandler(reg *KeybindRegistry) *KeyHandler {
	return &KeyHandler{Registry: reg}
}

// Handle processes a key in mode. consumed reports whether the key belonged
// to the keybind system; views never see consumed keys.
func (h *KeyHandler) Handle(msg tea.KeyMsg, mode AppMode) (consumed bool, cmd tea.Cmd) {
	s := msg.String()

	if h.LeaderWaiting {
		h.LeaderWaiting = false
		if s == "esc" {
			return true, nil
		}
		// Unbound or filtered out in this mode: swallow and leave leader mode.
		return true, h.Registry.Lookup(LeaderSeq+" "+s, mode)
	}

	// Bubble Tea reports space as " ".
	if s == " " {
		h.LeaderWaiting = true
		return true, nil
	}

	if c := h.Registry.Lookup(s, mode); c != nil {
		return true, c
	}
	return false, nil
}

// KeyMap implements help.KeyMap for one mode. ShortHelp lists the leader
// menu; FullHelp adds the table keys and the single-key bindings.
type KeyMap struct {
	registry *KeybindRegistry
	mode     AppMode
}

// Ensure KeyMap implements help.KeyMap.
var _ help.KeyMap = KeyMap{}

// NewKeyMap creates a KeyMap over registry for mode.
func NewKeyMap(registry *KeybindRegistry, mode AppMode) KeyMap {
	return KeyMap{registry: registry, mode: mode}
}

// ShortHelp returns the leader bindings plus esc to cancel.
func (km KeyMap) ShortHelp() []key.Binding {
	if km.registry == nil {
		return nil
	}
	leader := km.registry.Leader(km.mode)
	if len(leader) == 0 {
		return nil
	}
	out := make([]key.Binding, 0, len(leader)+1)
	for _, b := range leader {
		k := strings.TrimPrefix(b.Seq, LeaderSeq+" ")
		out = append(out, key.NewBinding(key.WithKeys(k), key.WithHelp(k, b.Desc)))
	}
	return append(out, key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")))
}

// FullHelp returns three columns: table keys, single keys, leader keys.
func (km KeyMap) FullHelp() [][]key.Binding {
	cols := [][]key.Binding{tableKeys(km.mode)}
	if km.registry == nil {
		return cols
	}
	var direct, leader []key.Binding
	for _, b := range km.registry.Direct(km.mode) {
		direct = append(direct, key.NewBinding(key.WithKeys(b.Seq), key.WithHelp(b.Seq, b.Desc)))
	}
	for _, b := range km.registry.Leader(km.mode) {
		leader = append(leader, key.NewBinding(key.WithKeys(b.Seq), key.WithHelp(b.Seq, b.Desc)))
	}
	if len(direct) > 0 {
		cols = append(cols, direct)
	}
	if len(leader) > 0 {
		cols = append(cols, leader)
	}
	return cols
}

// tableKeys describes the row keys handled by TableView and the app in mode.
func tableKeys(mode AppMode) []key.Binding {
	special := "view"
	if mode == ModeExercises {
		special = "edit"
	}
	out := []key.Binding{
		key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", special)),
		key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
	}
	if mode == ModeExercises {
		out = append(out, key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")))
	}
	return out
}
