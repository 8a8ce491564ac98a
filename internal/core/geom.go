// Package core holds the platform-neutral pieces shared by every game: the
// screen buffer, input actions and the runtime contract. It must not import
// Bubble Tea or ebiten so game logic stays testable.
package core

// Rect is an axis-aligned area of screen cells. X and Y name the top-left
// cell; Right and Bottom are exclusive.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a rectangle with the given position and size.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// CenteredRect returns a w x h rectangle centred in an outerW x outerH area.
// Odd leftovers go to the right and bottom.
func CenteredRect(outerW, outerH, w, h int) Rect {
	return NewRect((outerW-w)/2, (outerH-h)/2, w, h)
}

// Right returns the first column past the rectangle.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the first row past the rectangle.
func (r Rect) Bottom() int { return r.Y + r.H }
