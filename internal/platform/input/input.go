// Package input turns the keys a polling frontend sees as held into
// per-tick input frames. Directions auto-repeat like a keyboard does in a
// terminal; every other action fires once per press.
package input

import (
	"sort"

	"github.com/vovakirdan/grid-arcade/internal/core"
)

const (
	// RepeatDelay is how many ticks a direction must be held before it repeats.
	RepeatDelay = 15
	// RepeatEvery is the repeat period in ticks once repeating.
	RepeatEvery = 4
)

// Key is a held key: its canonical name and how many ticks it has been
// down, counting the current one.
type Key struct {
	Name  string
	Ticks int
}

// Fires reports whether a key held for ticks produces an action this tick.
func Fires(ticks int, repeat bool) bool {
	if ticks == 1 {
		return true
	}
	if !repeat || ticks < RepeatDelay {
		return false
	}
	return (ticks-RepeatDelay)%RepeatEvery == 0
}

// Frame builds the input frame for one tick. When several directions fire
// together the most recently pressed one becomes the frame's direction.
func Frame(bindings map[string]core.Action, held []Key) core.InputFrame {
	keys := make([]Key, 0, len(held))
	for _, k := range held {
		if k.Ticks > 0 {
			keys = append(keys, k)
		}
	}
	// Oldest first, so the newest press is applied last.
	sort.SliceStable(keys, func(i, j int) bool {
		if keys[i].Ticks != keys[j].Ticks {
			return keys[i].Ticks > keys[j].Ticks
		}
		return keys[i].Name < keys[j].Name
	})

	frame := core.NewInputFrame()
	for _, k := range keys {
		action, ok := bindings[k.Name]
		if !ok {
			continue
		}
		if Fires(k.Ticks, action.IsDirection()) {
			frame.Set(action)
		}
	}
	return frame
}
