package config

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/grid-arcade/internal/core"
)

// keyAliases maps accepted spellings to the canonical names produced by
// Bubble Tea's KeyMsg.String(). The window frontend emits the same names.
var keyAliases = map[string]string{
	"space":     " ",
	"spacebar":  " ",
	"escape":    "esc",
	"return":    "enter",
	"del":       "delete",
	"bksp":      "backspace",
	"backspace": "backspace",
}

// NormalizeKey returns the canonical name for a configured key.
func NormalizeKey(name string) string {
	if name == " " {
		return name
	}
	k := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := keyAliases[k]; ok {
		return alias
	}
	return k
}

// withDefaults fills empty bindings from DefaultControls.
func (c Controls) withDefaults() Controls {
	def := DefaultControls()
	fill := func(v *string, d string) {
		if strings.TrimSpace(*v) == "" && *v != " " {
			*v = d
		}
	}
	fill(&c.Up, def.Up)
	fill(&c.Down, def.Down)
	fill(&c.Left, def.Left)
	fill(&c.Right, def.Right)
	fill(&c.ActionA, def.ActionA)
	fill(&c.ActionB, def.ActionB)
	fill(&c.Pause, def.Pause)
	fill(&c.Restart, def.Restart)
	fill(&c.Quit, def.Quit)
	return c
}

// Bindings returns the key-name to action table for these controls.
// Arrow keys always map to directions and ctrl+c always quits.
func (c Controls) Bindings() map[string]core.Action {
	c = c.withDefaults()

	b := map[string]core.Action{
		"up":     core.ActionUp,
		"down":   core.ActionDown,
		"left":   core.ActionLeft,
		"right":  core.ActionRight,
		"ctrl+c": core.ActionQuit,
	}

	for _, bind := range []struct {
		key    string
		action core.Action
	}{
		{c.Up, core.ActionUp},
		{c.Down, core.ActionDown},
		{c.Left, core.ActionLeft},
		{c.Right, core.ActionRight},
		{c.ActionA, core.ActionPrimary},
		{c.ActionB, core.ActionSecondary},
		{c.Pause, core.ActionPause},
		{c.Restart, core.ActionRestart},
		{c.Quit, core.ActionQuit},
	} {
		key := NormalizeKey(bind.key)
		if prev, taken := b[key]; taken && prev != bind.action {
			log.Warn("key bound twice, keeping first binding", "key", key, "kept", prev, "ignored", bind.action)
			continue
		}
		b[key] = bind.action
	}

	return b
}

// KeyFor returns the canonical key name bound to an action, for help text.
func (c Controls) KeyFor(a core.Action) string {
	c = c.withDefaults()
	var k string
	switch a {
	case core.ActionUp:
		k = c.Up
	case core.ActionDown:
		k = c.Down
	case core.ActionLeft:
		k = c.Left
	case core.ActionRight:
		k = c.Right
	case core.ActionPrimary:
		k = c.ActionA
	case core.ActionSecondary:
		k = c.ActionB
	case core.ActionPause:
		k = c.Pause
	case core.ActionRestart:
		k = c.Restart
	case core.ActionQuit:
		k = c.Quit
	}
	if NormalizeKey(k) == " " {
		return "space"
	}
	return NormalizeKey(k)
}
