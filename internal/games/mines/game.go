// Package mines implements Minesweeper driven by a keyboard cursor.
package mines

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/grid-arcade/internal/config"
	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/maze"
	"github.com/vovakirdan/grid-arcade/internal/registry"
)

const hudHeight = 2

// cell renders each square three characters wide so the cursor can
// bracket it: "[3]".
var cell = maze.Tile{W: 3, H: 1}

var digitColors = [9]core.Color{
	core.ColorDefault,
	core.ColorBrightBlue,
	core.ColorGreen,
	core.ColorBrightRed,
	core.ColorBlue,
	core.ColorRed,
	core.ColorCyan,
	core.ColorMagenta,
	core.ColorGray,
}

// Game implements Minesweeper.
type Game struct {
	cfg        config.MinesConfig
	difficulty *config.DifficultyManager
	keys       config.Controls
	logger     *log.Logger

	rng    *rand.Rand
	board  *Board
	cursor maze.Position
	tick   uint64

	paused   bool
	tooSmall bool

	screenW, screenH int
	offsetX, offsetY int
}

func init() {
	registry.Register(registry.GameInfo{
		ID:          "mines",
		Title:       "Minesweeper",
		Description: "Clear the field without touching a mine",
	}, func(env registry.Env) (registry.Game, error) {
		cfg, err := config.LoadMines(env.ConfigPath)
		if err != nil {
			env.Log().Warn("config rejected", "game", "mines", "path", env.ConfigPath, "error", err)
			return nil, err
		}
		cfg.Difficulty.Apply(env.Difficulty)
		g := New(cfg, env.Controls)
		g.logger = env.Log().With("game", "mines")
		return g, nil
	})
}

// New creates a Minesweeper game.
func New(cfg config.MinesConfig, keys config.Controls) *Game {
	cfg.Rows = max(2, cfg.Rows)
	cfg.Cols = max(2, cfg.Cols)
	cfg.CellPoints = max(1, cfg.CellPoints)
	return &Game{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		keys:       keys,
		logger:     log.Default(),
	}
}

// ID returns the game identifier.
func (g *Game) ID() string { return "mines" }

// Title returns the display name.
func (g *Game) Title() string { return "Minesweeper" }

// Reset lays out a fresh board. Mines are placed on the first reveal.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.paused = false

	mines := g.difficulty.Count(g.cfg.Mines, 0, 0)
	g.board = NewBoard(g.cfg.Rows, g.cfg.Cols, mines, g.rng)
	g.logger.Debug("board laid out", "rows", g.cfg.Rows, "cols", g.cfg.Cols, "mines", mines)
	g.cursor = maze.Position{Col: g.cfg.Cols / 2, Row: g.cfg.Rows / 2}

	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize recentres the board without restarting.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h

	boardW, boardH := g.cfg.Cols*cell.W, g.cfg.Rows*cell.H
	g.tooSmall = w < boardW || h < boardH+hudHeight
	g.offsetX = max(0, (w-boardW)/2)
	g.offsetY = hudHeight
}

// Step applies one tick of input: cursor movement, reveal and flag.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) {
		g.Reset(core.RuntimeConfig{
			Seed:    g.rng.Int63(),
			ScreenW: g.screenW,
			ScreenH: g.screenH,
		})
		return core.StepResult{State: g.State()}
	}

	over := g.board.Exploded() || g.board.Cleared()
	if in.Has(core.ActionPause) && !over {
		g.paused = !g.paused
	}
	if over || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	g.tick++

	if d := in.Direction(); d != core.ActionNone {
		g.moveCursor(d)
	}
	switch {
	case in.Has(core.ActionPrimary):
		g.board.Reveal(g.cursor)
		switch {
		case g.board.Exploded():
			g.logger.Info("mine hit", "at", g.cursor, "tick", g.tick)
		case g.board.Cleared():
			g.logger.Info("field cleared", "tick", g.tick, "score", g.State().Score)
		}
	case in.Has(core.ActionSecondary):
		g.board.ToggleFlag(g.cursor)
	}

	return core.StepResult{State: g.State()}
}

// moveCursor moves one cell, wrapping at the edges.
func (g *Game) moveCursor(a core.Action) {
	rows, cols := g.board.Rows(), g.board.Cols()
	switch a {
	case core.ActionUp:
		g.cursor.Row = (g.cursor.Row - 1 + rows) % rows
	case core.ActionDown:
		g.cursor.Row = (g.cursor.Row + 1) % rows
	case core.ActionLeft:
		g.cursor.Col = (g.cursor.Col - 1 + cols) % cols
	case core.ActionRight:
		g.cursor.Col = (g.cursor.Col + 1) % cols
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	status := core.StatusPlaying
	switch {
	case g.board.Exploded():
		status = core.StatusLost
	case g.board.Cleared():
		status = core.StatusWon
	}
	return core.GameState{
		Score:  g.board.Revealed() * g.cfg.CellPoints,
		Status: status,
		Paused: g.paused,
	}
}

// Render draws the HUD and the minefield.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	hud := fmt.Sprintf(" Minesweeper  Mines: %d  Flags: %d  Hidden: %d  Score: %d",
		g.board.Mines(), g.board.Flags(), g.board.Remaining(), g.State().Score)
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')

	if g.tooSmall {
		dst.DrawOverlay("Window too small", "Resize to continue")
		return
	}

	for row := 0; row < g.board.Rows(); row++ {
		for col := 0; col < g.board.Cols(); col++ {
			p := maze.Position{Col: col, Row: row}
			r, c := g.glyph(g.board.At(p))
			x, y := cell.Center(p)
			dst.SetColor(g.offsetX+x, g.offsetY+y, r, c)
		}
	}

	ox, oy := cell.Origin(g.cursor)
	dst.SetColor(g.offsetX+ox, g.offsetY+oy, '[', core.ColorBrightYellow)
	dst.SetColor(g.offsetX+ox+cell.W-1, g.offsetY+oy, ']', core.ColorBrightYellow)

	restart := g.keys.KeyFor(core.ActionRestart)
	switch {
	case g.board.Cleared():
		dst.DrawOverlay("Field cleared!", fmt.Sprintf("Score: %d", g.State().Score), "Press "+restart+" for a new board")
	case g.board.Exploded():
		dst.DrawOverlay("Boom!", "Press "+restart+" to try again")
	case g.paused:
		dst.DrawOverlay("Paused", "Press "+g.keys.KeyFor(core.ActionPause)+" to continue")
	}
}

func (g *Game) glyph(c Cell) (rune, core.Color) {
	switch {
	case c.Revealed && c.Mine:
		return '*', core.ColorBrightRed
	case c.Revealed && c.Adjacent == 0:
		return ' ', core.ColorDefault
	case c.Revealed:
		return rune('0' + c.Adjacent), digitColors[c.Adjacent]
	case c.Flagged:
		return 'F', core.ColorYellow
	default:
		return '·', core.ColorGray
	}
}
