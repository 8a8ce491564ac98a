// Package maze provides the static grid used by maze-based games and the
// breadth-first pursuit step that drives chasing enemies across it.
//
// Grids are immutable once parsed. Nothing in this package keeps state
// between calls, so it is safe to share a Grid across goroutines.
package maze

import (
	"errors"
	"fmt"
	"strings"
)

// Cell is the kind of a single grid cell.
type Cell uint8

const (
	Open Cell = iota
	Wall
)

// WallRune marks a wall in a layout. Every other rune is walkable.
const WallRune = '#'

var (
	// ErrEmpty is returned when a layout has no rows or no columns.
	ErrEmpty = errors.New("maze: empty layout")

	// ErrRagged is returned when layout rows differ in length.
	ErrRagged = errors.New("maze: rows have different lengths")
)

// Position identifies a cell by column and row.
type Position struct {
	Col, Row int
}

// Add returns the position offset by d.
func (p Position) Add(d Position) Position {
	return Position{Col: p.Col + d.Col, Row: p.Row + d.Row}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Col, p.Row)
}

// Walkable reports whether a position may be occupied and traversed.
// Implementations must return false for out-of-bounds positions.
type Walkable interface {
	Walkable(p Position) bool
}

// Grid is an immutable 2D maze built from a literal layout.
type Grid struct {
	cols, rows int
	cells      []Cell
	marks      map[rune][]Position
}

// Parse builds a Grid from equal-length rows. '#' is a wall; any other rune
// is open. Runes other than '.' and ' ' are also recorded as markers so that
// spawn points ('P', 'G', ...) can be looked up later.
func Parse(layout []string) (*Grid, error) {
	if len(layout) == 0 {
		return nil, ErrEmpty
	}

	rows := make([][]rune, len(layout))
	for i, line := range layout {
		rows[i] = []rune(line)
	}

	cols := len(rows[0])
	if cols == 0 {
		return nil, ErrEmpty
	}

	g := &Grid{
		cols:  cols,
		rows:  len(rows),
		cells: make([]Cell, cols*len(rows)),
		marks: make(map[rune][]Position),
	}

	for r, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d cells, expected %d: %w", r, len(row), cols, ErrRagged)
		}
		for c, ch := range row {
			switch ch {
			case WallRune:
				g.cells[r*cols+c] = Wall
			case '.', ' ':
				// plain floor
			default:
				g.marks[ch] = append(g.marks[ch], Position{Col: c, Row: r})
			}
		}
	}

	return g, nil
}

// MustParse is like Parse but panics on error. Intended for built-in layouts.
func MustParse(layout []string) *Grid {
	g, err := Parse(layout)
	if err != nil {
		panic(err)
	}
	return g
}

// Cols returns the grid width in cells.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the grid height in cells.
func (g *Grid) Rows() int { return g.rows }

// InBounds reports whether p lies inside the grid.
func (g *Grid) InBounds(p Position) bool {
	return p.Col >= 0 && p.Col < g.cols && p.Row >= 0 && p.Row < g.rows
}

// At returns the cell kind at p. Out-of-bounds positions read as Wall.
func (g *Grid) At(p Position) Cell {
	if !g.InBounds(p) {
		return Wall
	}
	return g.cells[p.Row*g.cols+p.Col]
}

// Walkable implements Walkable.
func (g *Grid) Walkable(p Position) bool {
	return g.At(p) == Open
}

// Marked returns every position holding marker r, in row-major order.
func (g *Grid) Marked(r rune) []Position {
	src := g.marks[r]
	out := make([]Position, len(src))
	copy(out, src)
	return out
}

// Marker returns the first position holding marker r.
func (g *Grid) Marker(r rune) (Position, bool) {
	if ps := g.marks[r]; len(ps) > 0 {
		return ps[0], true
	}
	return Position{}, false
}

// Open returns all walkable positions in row-major order.
func (g *Grid) Open() []Position {
	out := make([]Position, 0, len(g.cells))
	for i, c := range g.cells {
		if c == Open {
			out = append(out, Position{Col: i % g.cols, Row: i / g.cols})
		}
	}
	return out
}

// String renders the grid back to '#' and '.' rows. Markers are not kept.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.cols + 1) * g.rows)
	for r := 0; r < g.rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < g.cols; c++ {
			if g.cells[r*g.cols+c] == Wall {
				sb.WriteRune(WallRune)
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

// Tile maps grid cells to a renderer's coordinate space, either pixels or
// terminal character cells.
type Tile struct {
	W, H int
}

// CharCell is the terminal footprint of one grid cell: two characters wide
// and one tall, which keeps mazes roughly square in a terminal.
var CharCell = Tile{W: 2, H: 1}

// Origin returns the top-left corner of p's tile.
func (t Tile) Origin(p Position) (x, y int) {
	return p.Col * t.W, p.Row * t.H
}

// Center returns the centre of p's tile, where entity markers are drawn.
func (t Tile) Center(p Position) (x, y int) {
	return p.Col*t.W + t.W/2, p.Row*t.H + t.H/2
}
