package window

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/grid-arcade/internal/platform/input"
)

// special maps ebiten key names to the names used in arcade.yaml.
var special = map[string]string{
	"Space":      " ",
	"Enter":      "enter",
	"Escape":     "esc",
	"Tab":        "tab",
	"Backspace":  "backspace",
	"Delete":     "delete",
	"ArrowUp":    "up",
	"ArrowDown":  "down",
	"ArrowLeft":  "left",
	"ArrowRight": "right",
}

// keyName returns the configured name for an ebiten key, or "" for keys
// the arcade does not bind.
func keyName(k ebiten.Key) string {
	s := k.String()
	if name, ok := special[s]; ok {
		return name
	}
	if len(s) == 1 {
		return strings.ToLower(s)
	}
	if digit, ok := strings.CutPrefix(s, "Digit"); ok && len(digit) == 1 {
		return digit
	}
	return ""
}

// heldKeys polls the keyboard once per tick.
func heldKeys(buf []ebiten.Key) ([]input.Key, []ebiten.Key) {
	buf = inpututil.AppendPressedKeys(buf[:0])
	held := make([]input.Key, 0, len(buf))
	for _, k := range buf {
		if name := keyName(k); name != "" {
			held = append(held, input.Key{Name: name, Ticks: inpututil.KeyPressDuration(k)})
		}
	}
	return held, buf
}
