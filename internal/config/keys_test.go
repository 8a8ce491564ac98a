package config

import (
	"testing"

	"github.com/vovakirdan/grid-arcade/internal/core"
)

func TestNormalizeKey(t *testing.T) {
	tests := map[string]string{
		"W":      "w",
		"space":  " ",
		" ":      " ",
		"Escape": "esc",
		"return": "enter",
		" q ":    "q",
	}
	for in, want := range tests {
		if got := NormalizeKey(in); got != want {
			t.Errorf("NormalizeKey(%q) = %q, expected %q", in, got, want)
		}
	}
}

func TestDefaultBindings(t *testing.T) {
	b := DefaultControls().Bindings()

	tests := map[string]core.Action{
		"w":      core.ActionUp,
		"s":      core.ActionDown,
		"a":      core.ActionLeft,
		"d":      core.ActionRight,
		"up":     core.ActionUp,
		"left":   core.ActionLeft,
		" ":      core.ActionPrimary,
		"f":      core.ActionSecondary,
		"esc":    core.ActionPause,
		"r":      core.ActionRestart,
		"q":      core.ActionQuit,
		"ctrl+c": core.ActionQuit,
	}
	for key, want := range tests {
		if got, ok := b[key]; !ok || got != want {
			t.Errorf("binding %q = %v (bound %v), expected %v", key, got, ok, want)
		}
	}
}

func TestBindingsFillEmptyAndKeepFirst(t *testing.T) {
	c := Controls{Up: "k", Down: "j", Restart: "k"}
	b := c.Bindings()

	if b["k"] != core.ActionUp {
		t.Errorf("duplicate key should keep first binding, got %v", b["k"])
	}
	if b["a"] != core.ActionLeft {
		t.Errorf("empty left binding should default to a, got %v", b["a"])
	}
	if _, ok := b["r"]; ok {
		t.Error("restart was rebound, default key r should not be bound")
	}
}

func TestKeyFor(t *testing.T) {
	c := DefaultControls()
	if got := c.KeyFor(core.ActionPrimary); got != "space" {
		t.Errorf("KeyFor(Primary) = %q, expected space", got)
	}
	if got := c.KeyFor(core.ActionPause); got != "esc" {
		t.Errorf("KeyFor(Pause) = %q, expected esc", got)
	}
}
