package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/grid-arcade/internal/config"
	"github.com/vovakirdan/grid-arcade/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions using the
// configured bindings. It is safe to swap bindings between messages.
type KeyMapper struct {
	controls config.Controls
	bindings map[string]core.Action
}

// NewKeyMapper creates a key mapper for the given controls.
// Empty fields fall back to the default bindings.
func NewKeyMapper(controls config.Controls) *KeyMapper {
	km := &KeyMapper{}
	km.SetControls(controls)
	return km
}

// SetControls replaces the active bindings.
func (km *KeyMapper) SetControls(controls config.Controls) {
	km.controls = controls
	km.bindings = controls.Bindings()
}

// Controls returns the active controls, used for help text.
func (km *KeyMapper) Controls() config.Controls {
	return km.controls
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()
	if a, ok := km.bindings[key]; ok {
		return a, a == core.ActionQuit
	}

	// "b" leaves a finished or paused game unless it is bound to something else.
	if key == "b" {
		return core.ActionBack, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action. Menus accept the
// configured direction and quit keys plus the usual fixed navigation keys.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "k": // vim-style k for up
		return MenuActionUp
	case "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "esc", "b":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	switch km.bindings[key] {
	case core.ActionQuit:
		return MenuActionQuit
	case core.ActionUp:
		return MenuActionUp
	case core.ActionDown:
		return MenuActionDown
	case core.ActionPrimary:
		return MenuActionSelect
	}

	return MenuActionNone
}

// ControlsMsg delivers reloaded key bindings to a running program.
type ControlsMsg struct {
	Controls config.Controls
}
