package mines

import (
	"math/rand"

	"github.com/vovakirdan/grid-arcade/internal/maze"
)

// Cell is one square of the minefield.
type Cell struct {
	Mine     bool
	Revealed bool
	Flagged  bool
	Adjacent int // Mines among the 8 neighbours
}

// Board is a minefield. Mines are placed lazily on the first reveal so the
// opening move and its neighbours are always safe.
type Board struct {
	rows, cols int
	mines      int
	cells      []Cell
	rng        *rand.Rand

	placed    bool
	remaining int // Safe cells still hidden
	exploded  bool
	cleared   bool
}

var neighbors8 = [8]maze.Position{
	{Col: -1, Row: -1}, {Col: 0, Row: -1}, {Col: 1, Row: -1},
	{Col: -1, Row: 0}, {Col: 1, Row: 0},
	{Col: -1, Row: 1}, {Col: 0, Row: 1}, {Col: 1, Row: 1},
}

// NewBoard creates an empty board. mines is clamped so the first reveal
// always has room for its safe 3x3 neighbourhood.
func NewBoard(rows, cols, mines int, rng *rand.Rand) *Board {
	mines = max(0, min(mines, rows*cols-9))
	return &Board{
		rows:      rows,
		cols:      cols,
		mines:     mines,
		cells:     make([]Cell, rows*cols),
		rng:       rng,
		remaining: rows*cols - mines,
	}
}

// Rows returns the board height.
func (b *Board) Rows() int { return b.rows }

// Cols returns the board width.
func (b *Board) Cols() int { return b.cols }

// Mines returns the number of mines on the board.
func (b *Board) Mines() int { return b.mines }

// Remaining returns how many safe cells are still hidden.
func (b *Board) Remaining() int { return b.remaining }

// Revealed returns how many safe cells have been uncovered.
func (b *Board) Revealed() int { return b.rows*b.cols - b.mines - b.remaining }

// Exploded reports whether a mine was revealed.
func (b *Board) Exploded() bool { return b.exploded }

// Cleared reports whether every safe cell has been revealed.
func (b *Board) Cleared() bool { return b.cleared }

// InBounds reports whether p lies on the board.
func (b *Board) InBounds(p maze.Position) bool {
	return p.Col >= 0 && p.Col < b.cols && p.Row >= 0 && p.Row < b.rows
}

// At returns the cell at p. p must be in bounds.
func (b *Board) At(p maze.Position) Cell {
	return b.cells[b.index(p)]
}

// Flags returns how many cells are flagged.
func (b *Board) Flags() int {
	n := 0
	for _, c := range b.cells {
		if c.Flagged {
			n++
		}
	}
	return n
}

func (b *Board) index(p maze.Position) int {
	return p.Row*b.cols + p.Col
}

// place scatters mines anywhere outside the 3x3 block around safe.
func (b *Board) place(safe maze.Position) {
	eligible := make([]int, 0, len(b.cells))
	for i := range b.cells {
		p := maze.Position{Col: i % b.cols, Row: i / b.cols}
		if abs(p.Col-safe.Col) <= 1 && abs(p.Row-safe.Row) <= 1 {
			continue
		}
		eligible = append(eligible, i)
	}

	if len(eligible) < b.mines {
		b.remaining += b.mines - len(eligible)
		b.mines = len(eligible)
	}

	b.rng.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})
	for _, i := range eligible[:b.mines] {
		b.cells[i].Mine = true
	}

	b.countAdjacent()
	b.placed = true
}

func (b *Board) countAdjacent() {
	for i := range b.cells {
		p := maze.Position{Col: i % b.cols, Row: i / b.cols}
		b.cells[i].Adjacent = 0
		for _, d := range neighbors8 {
			if n := p.Add(d); b.InBounds(n) && b.cells[b.index(n)].Mine {
				b.cells[i].Adjacent++
			}
		}
	}
}

// Reveal uncovers p. A zero cell opens its whole zero region and the
// numbered border around it. Revealing a mine ends the game. It returns
// the number of safe cells uncovered.
func (b *Board) Reveal(p maze.Position) int {
	if b.exploded || b.cleared || !b.InBounds(p) {
		return 0
	}
	if c := b.cells[b.index(p)]; c.Revealed || c.Flagged {
		return 0
	}
	if !b.placed {
		b.place(p)
	}

	if b.cells[b.index(p)].Mine {
		b.explode()
		return 0
	}

	opened := 0
	queue := []maze.Position{p}
	b.cells[b.index(p)].Revealed = true

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		opened++
		if b.cells[b.index(cur)].Adjacent != 0 {
			continue
		}
		for _, d := range neighbors8 {
			n := cur.Add(d)
			if !b.InBounds(n) {
				continue
			}
			c := &b.cells[b.index(n)]
			if c.Revealed || c.Flagged || c.Mine {
				continue
			}
			c.Revealed = true
			queue = append(queue, n)
		}
	}

	b.remaining -= opened
	if b.remaining == 0 {
		b.cleared = true
	}
	return opened
}

// ToggleFlag flags or unflags a hidden cell.
func (b *Board) ToggleFlag(p maze.Position) {
	if b.exploded || b.cleared || !b.InBounds(p) {
		return
	}
	c := &b.cells[b.index(p)]
	if !c.Revealed {
		c.Flagged = !c.Flagged
	}
}

func (b *Board) explode() {
	b.exploded = true
	for i := range b.cells {
		if b.cells[i].Mine {
			b.cells[i].Revealed = true
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
