package mines

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/grid-arcade/internal/config"
	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/maze"
	"github.com/vovakirdan/grid-arcade/internal/registry"
)

func newGame(t *testing.T, cfg config.MinesConfig) *Game {
	t.Helper()
	g := New(cfg, config.DefaultControls())
	g.Reset(core.RuntimeConfig{Seed: 42, ScreenW: 80, ScreenH: 24})
	return g
}

func press(a core.Action) core.InputFrame {
	in := core.NewInputFrame()
	in.Set(a)
	return in
}

func TestCursorWraps(t *testing.T) {
	g := newGame(t, config.DefaultMinesConfig())
	start := g.cursor

	for i := 0; i < g.cfg.Cols; i++ {
		g.Step(press(core.ActionRight))
	}
	if g.cursor != start {
		t.Errorf("cursor after a full lap = %v, expected %v", g.cursor, start)
	}

	g.cursor = maze.Position{}
	g.Step(press(core.ActionUp))
	if g.cursor.Row != g.cfg.Rows-1 {
		t.Errorf("cursor row = %d, expected wrap to %d", g.cursor.Row, g.cfg.Rows-1)
	}
}

func TestRevealScores(t *testing.T) {
	cfg := config.DefaultMinesConfig()
	cfg.CellPoints = 2
	g := newGame(t, cfg)

	res := g.Step(press(core.ActionPrimary))

	if res.State.Status != core.StatusPlaying && res.State.Status != core.StatusWon {
		t.Fatalf("first reveal ended the game: %v", res.State.Status)
	}
	revealed := g.board.Revealed()
	if revealed < 9 {
		t.Errorf("first reveal opened %d cells, expected at least the safe 3x3", revealed)
	}
	if res.State.Score != revealed*2 {
		t.Errorf("score = %d, expected %d", res.State.Score, revealed*2)
	}
}

func TestFlagAction(t *testing.T) {
	g := newGame(t, config.DefaultMinesConfig())

	g.Step(press(core.ActionSecondary))
	if !g.board.At(g.cursor).Flagged {
		t.Error("action_b should flag the cursor cell")
	}
	g.Step(press(core.ActionPrimary))
	if g.board.At(g.cursor).Revealed {
		t.Error("a flagged cell should not be revealed")
	}
}

func TestLoseAndRestart(t *testing.T) {
	g := newGame(t, config.DefaultMinesConfig())
	g.board = fixedBoard(g.cfg.Rows, g.cfg.Cols, maze.Position{Col: 0, Row: 0})
	g.cursor = maze.Position{}

	res := g.Step(press(core.ActionPrimary))
	if res.State.Status != core.StatusLost {
		t.Fatalf("status = %v, expected lost", res.State.Status)
	}

	g.Step(press(core.ActionRight))
	if g.cursor != (maze.Position{}) {
		t.Error("cursor moved after the game ended")
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Boom!") {
		t.Error("loss overlay not rendered")
	}

	g.Step(press(core.ActionRestart))
	if g.State().Status != core.StatusPlaying || g.board.Revealed() != 0 {
		t.Errorf("restart did not produce a fresh board: %+v", g.State())
	}
}

func TestWin(t *testing.T) {
	g := newGame(t, config.DefaultMinesConfig())
	g.board = fixedBoard(g.cfg.Rows, g.cfg.Cols, maze.Position{Col: g.cfg.Cols - 1, Row: g.cfg.Rows - 1})
	g.cursor = maze.Position{}

	res := g.Step(press(core.ActionPrimary))
	if res.State.Status != core.StatusWon {
		t.Errorf("status = %v, expected won", res.State.Status)
	}
}

func TestDifficultyScalesMines(t *testing.T) {
	cfg := config.DefaultMinesConfig()
	cfg.Difficulty.Apply(config.DifficultyHard)
	g := newGame(t, cfg)

	// 30 + round(30 * 0.7 * 0.6) = 43
	if g.board.Mines() != 43 {
		t.Errorf("Mines() = %d, expected 43 on hard", g.board.Mines())
	}

	easy := config.DefaultMinesConfig()
	easy.Difficulty.Apply(config.DifficultyEasy)
	if got := newGame(t, easy).board.Mines(); got != 30 {
		t.Errorf("Mines() = %d, expected 30 on easy", got)
	}
}

func TestRenderCursor(t *testing.T) {
	g := newGame(t, config.DefaultMinesConfig())
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	ox, oy := cell.Origin(g.cursor)
	if got := screen.Get(g.offsetX+ox, g.offsetY+oy); got != '[' {
		t.Errorf("cursor left bracket = %q, expected '['", got)
	}
	if !strings.Contains(screen.Row(0), "Minesweeper") {
		t.Errorf("HUD = %q", screen.Row(0))
	}
}

func TestOutcomeUsesEnvLogger(t *testing.T) {
	var buf bytes.Buffer
	game, err := registry.Create("mines", registry.Env{Logger: log.New(&buf)})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	g := game.(*Game)
	g.Reset(core.RuntimeConfig{Seed: 42, ScreenW: 80, ScreenH: 24})
	g.board = fixedBoard(g.cfg.Rows, g.cfg.Cols, maze.Position{})
	g.cursor = maze.Position{}

	g.Step(press(core.ActionPrimary))

	out := buf.String()
	if !strings.Contains(out, "mine hit") || !strings.Contains(out, "game=mines") {
		t.Errorf("log output = %q, expected a mine hit entry tagged with the game", out)
	}
}
