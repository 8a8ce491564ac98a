package maze

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	g, err := Parse([]string{
		"#####",
		"#P.G#",
		"#####",
	})
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if g.Cols() != 5 || g.Rows() != 3 {
		t.Fatalf("dimensions = %dx%d, expected 5x3", g.Cols(), g.Rows())
	}

	tests := []struct {
		name string
		pos  Position
		want Cell
	}{
		{"corner wall", Position{0, 0}, Wall},
		{"player marker is open", Position{1, 1}, Open},
		{"floor", Position{2, 1}, Open},
		{"pursuer marker is open", Position{3, 1}, Open},
		{"out of bounds reads as wall", Position{-1, 1}, Wall},
		{"past right edge", Position{5, 1}, Wall},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := g.At(tc.pos); got != tc.want {
				t.Errorf("At(%v) = %v, expected %v", tc.pos, got, tc.want)
			}
		})
	}

	p, ok := g.Marker('P')
	if !ok || p != (Position{1, 1}) {
		t.Errorf("Marker('P') = %v, %v; expected (1,1), true", p, ok)
	}
	if _, ok := g.Marker('X'); ok {
		t.Error("Marker('X') should not be found")
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse(nil); !errors.Is(err, ErrEmpty) {
		t.Errorf("Parse(nil) error = %v, expected ErrEmpty", err)
	}
	if _, err := Parse([]string{""}); !errors.Is(err, ErrEmpty) {
		t.Errorf("Parse(empty row) error = %v, expected ErrEmpty", err)
	}
	if _, err := Parse([]string{"###", "##"}); !errors.Is(err, ErrRagged) {
		t.Errorf("Parse(ragged) error = %v, expected ErrRagged", err)
	}
}

func TestMarkedOrder(t *testing.T) {
	g := MustParse([]string{
		"c.c",
		".#.",
		"c..",
	})

	got := g.Marked('c')
	want := []Position{{0, 0}, {2, 0}, {0, 2}}
	if len(got) != len(want) {
		t.Fatalf("Marked('c') returned %d positions, expected %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Marked('c')[%d] = %v, expected %v", i, got[i], want[i])
		}
	}

	// Returned slice is a copy
	got[0] = Position{9, 9}
	if p, _ := g.Marker('c'); p != (Position{0, 0}) {
		t.Error("Marked() must not expose internal storage")
	}
}

func TestOpenAndString(t *testing.T) {
	g := MustParse([]string{
		"#.#",
		"P..",
	})

	open := g.Open()
	if len(open) != 4 {
		t.Errorf("Open() returned %d cells, expected 4", len(open))
	}
	if open[0] != (Position{1, 0}) {
		t.Errorf("Open()[0] = %v, expected (1,0)", open[0])
	}

	if got, want := g.String(), "#.#\n..."; got != want {
		t.Errorf("String() = %q, expected %q", got, want)
	}
}

func TestTileCenter(t *testing.T) {
	tests := []struct {
		tile       Tile
		pos        Position
		wantX      int
		wantY      int
		wantOrignX int
		wantOrignY int
	}{
		{Tile{40, 40}, Position{0, 0}, 20, 20, 0, 0},
		{Tile{40, 40}, Position{3, 2}, 140, 100, 120, 80},
		{CharCell, Position{5, 7}, 11, 7, 10, 7},
	}

	for _, tc := range tests {
		x, y := tc.tile.Center(tc.pos)
		if x != tc.wantX || y != tc.wantY {
			t.Errorf("%v.Center(%v) = (%d, %d), expected (%d, %d)", tc.tile, tc.pos, x, y, tc.wantX, tc.wantY)
		}
		ox, oy := tc.tile.Origin(tc.pos)
		if ox != tc.wantOrignX || oy != tc.wantOrignY {
			t.Errorf("%v.Origin(%v) = (%d, %d), expected (%d, %d)", tc.tile, tc.pos, ox, oy, tc.wantOrignX, tc.wantOrignY)
		}
	}
}
