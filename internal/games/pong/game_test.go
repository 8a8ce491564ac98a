package pong

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/grid-arcade/internal/config"
	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/registry"
)

func newGame(t *testing.T, cfg config.PongConfig, versus bool) *Game {
	t.Helper()
	g := New(cfg, config.DefaultControls(), versus)
	g.Reset(core.RuntimeConfig{Seed: 7, ScreenW: 80, ScreenH: 24})
	return g
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// inPlay skips the serve so the next Step moves the ball.
func inPlay(g *Game) {
	g.serving = false
	g.serveDelay = 0
}

func TestServeWaitsBeforeLaunch(t *testing.T) {
	cfg := config.DefaultPongConfig()
	cfg.ServeDelay = 5
	g := newGame(t, cfg, false)

	startX, startY := g.ballX, g.ballY
	for range cfg.ServeDelay - 1 {
		g.Step(press())
	}
	if g.ballX != startX || g.ballY != startY {
		t.Fatalf("ball moved during serve: (%v, %v)", g.ballX, g.ballY)
	}
	if g.ballVX >= 0 {
		t.Errorf("opening serve VX = %v, expected towards player 1", g.ballVX)
	}

	g.Step(press())
	g.Step(press())
	if g.ballX == startX {
		t.Error("ball did not leave the centre after the serve delay")
	}
}

func TestSameSeedSameMatch(t *testing.T) {
	a := newGame(t, config.DefaultPongConfig(), false)
	b := newGame(t, config.DefaultPongConfig(), false)

	inputs := []core.Action{core.ActionUp, core.ActionNone, core.ActionDown, core.ActionDown}
	for i := range 600 {
		in := press(inputs[i%len(inputs)])
		a.Step(in)
		b.Step(in)
	}
	if a.ballX != b.ballX || a.ballY != b.ballY || a.score != b.score || a.rightY != b.rightY {
		t.Errorf("matches diverged: ball (%v,%v) vs (%v,%v), score %v vs %v",
			a.ballX, a.ballY, b.ballX, b.ballY, a.score, b.score)
	}
}

func TestPaddleClampedToCourt(t *testing.T) {
	g := newGame(t, config.DefaultPongConfig(), false)

	for range 50 {
		g.Step(press(core.ActionUp))
	}
	if g.leftY != 1 {
		t.Errorf("leftY after holding up = %v, expected 1", g.leftY)
	}

	for range 50 {
		g.Step(press(core.ActionDown))
	}
	if expected := float64(24 - g.paddleH - 1); g.leftY != expected {
		t.Errorf("leftY after holding down = %v, expected %v", g.leftY, expected)
	}
}

func TestBallBouncesOffPaddle(t *testing.T) {
	cfg := config.DefaultPongConfig()
	g := newGame(t, cfg, false)
	inPlay(g)

	g.ballX = paddleOffset + 1.3
	g.ballY = g.leftY + float64(g.paddleH)/2
	g.ballVX, g.ballVY = -cfg.BallSpeed, 0

	g.Step(press())

	if g.ballVX <= 0 {
		t.Fatalf("VX after paddle hit = %v, expected positive", g.ballVX)
	}
	if want := cfg.BallSpeed * 1.02; math.Abs(g.ballVX-want) > 1e-9 {
		t.Errorf("VX after paddle hit = %v, expected %v", g.ballVX, want)
	}
	if g.ballX != paddleOffset+1 {
		t.Errorf("ballX = %v, expected it placed against the paddle", g.ballX)
	}
}

func TestBallBouncesOffWalls(t *testing.T) {
	g := newGame(t, config.DefaultPongConfig(), false)
	inPlay(g)

	g.ballX, g.ballY = 40, 1.2
	g.ballVX, g.ballVY = 0.5, -0.5

	g.Step(press())
	if g.ballY != 1 || g.ballVY <= 0 {
		t.Errorf("after top wall: y = %v, VY = %v, expected 1 and downward", g.ballY, g.ballVY)
	}
}

func TestMissScoresAndServesToLoser(t *testing.T) {
	tests := []struct {
		name     string
		ballX    float64
		ballVX   float64
		scorer   side
		serveDir float64
	}{
		{"player 1 misses", 0.2, -0.5, right, -1},
		{"cpu misses", 79.8, 0.5, left, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGame(t, config.DefaultPongConfig(), false)
			inPlay(g)
			g.leftY, g.rightY = 1, 1
			g.ballX, g.ballY = tt.ballX, 20
			g.ballVX, g.ballVY = tt.ballVX, 0

			g.Step(press())

			if g.score[tt.scorer] != 1 {
				t.Fatalf("score = %v, expected a point for side %d", g.score, tt.scorer)
			}
			if !g.serving || g.ballX != 40 {
				t.Errorf("serving = %v at x = %v, expected a serve from the centre", g.serving, g.ballX)
			}
			if math.Signbit(g.ballVX) != math.Signbit(tt.serveDir) {
				t.Errorf("serve VX = %v, expected towards the side that conceded", g.ballVX)
			}
		})
	}
}

func TestMatchOutcome(t *testing.T) {
	tests := []struct {
		name   string
		versus bool
		scorer side
		status core.Status
		score  int
	}{
		{"player beats cpu", false, left, core.StatusWon, 3},
		{"cpu beats player", false, right, core.StatusLost, 0},
		{"versus is unscored", true, right, core.StatusWon, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultPongConfig()
			cfg.WinScore = 3
			g := newGame(t, cfg, tt.versus)
			g.score[tt.scorer] = cfg.WinScore - 1

			g.point(tt.scorer)

			st := g.State()
			if st.Status != tt.status || st.Score != tt.score {
				t.Errorf("State() = %+v, expected status %v score %d", st, tt.status, tt.score)
			}

			// A finished match ignores input until restarted.
			g.Step(press(core.ActionUp))
			if g.tick != 0 {
				t.Error("match kept running after it was won")
			}
			g.Step(press(core.ActionRestart))
			if g.State().Over() || g.score != [3]int{} {
				t.Errorf("restart left %+v, score %v", g.State(), g.score)
			}
		})
	}
}

func TestVersusActionKeysDriveRightPaddle(t *testing.T) {
	cfg := config.DefaultPongConfig()
	g := newGame(t, cfg, true)
	start := g.rightY

	g.Step(press(core.ActionPrimary))
	if g.rightY != start-cfg.PaddleSpeed {
		t.Errorf("rightY after action_a = %v, expected %v", g.rightY, start-cfg.PaddleSpeed)
	}
	g.Step(press(core.ActionSecondary))
	g.Step(press(core.ActionSecondary))
	if g.rightY != start+cfg.PaddleSpeed {
		t.Errorf("rightY after action_b = %v, expected %v", g.rightY, start+cfg.PaddleSpeed)
	}

	// Without action keys the right paddle stays put.
	inPlay(g)
	g.ballX, g.ballY, g.ballVX = 60, 2, 0.5
	before := g.rightY
	g.Step(press())
	if g.rightY != before {
		t.Errorf("right paddle moved on its own in versus mode: %v -> %v", before, g.rightY)
	}
}

func TestCPUSkillFollowsDifficulty(t *testing.T) {
	tests := []struct {
		name   string
		preset config.DifficultyPreset
		want   float64
	}{
		{"progression reaches max skill", "", 0.85},
		{"fixed keeps base skill", config.DifficultyFixed, 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultPongConfig()
			cfg.Difficulty.Progression.MaxAt = 100
			cfg.Difficulty.Apply(tt.preset)
			g := newGame(t, cfg, false)

			for range 100 {
				g.Step(press(core.ActionPause))
				g.Step(press(core.ActionPause))
			}
			if g.tick != 100 {
				t.Fatalf("tick = %d, expected 100", g.tick)
			}
			if math.Abs(g.cpuSkill-tt.want) > 1e-9 {
				t.Errorf("cpuSkill = %v, expected %v", g.cpuSkill, tt.want)
			}
		})
	}
}

func TestCPUTracksIncomingBall(t *testing.T) {
	g := newGame(t, config.DefaultPongConfig(), false)
	inPlay(g)
	g.rightY = 1
	g.ballX, g.ballY, g.ballVX, g.ballVY = 40, 20, 0.5, 0

	g.Step(press())
	if g.rightY <= 1 {
		t.Errorf("CPU paddle stayed at %v with the ball incoming", g.rightY)
	}

	g.rightY = 1
	g.ballVX = -0.5
	g.Step(press())
	if g.rightY != 1 {
		t.Errorf("CPU paddle moved to %v with the ball leaving", g.rightY)
	}
}

func TestPauseFreezesMatch(t *testing.T) {
	g := newGame(t, config.DefaultPongConfig(), false)
	inPlay(g)

	g.Step(press(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("pause action did not pause")
	}
	x := g.ballX
	g.Step(press(core.ActionDown))
	if g.ballX != x || g.tick != 0 {
		t.Error("ball moved while paused")
	}
	g.Step(press(core.ActionPause))
	if g.State().Paused {
		t.Error("second pause action did not resume")
	}
}

func TestResizeKeepsScore(t *testing.T) {
	g := newGame(t, config.DefaultPongConfig(), false)
	g.score[left] = 2

	g.Resize(120, 40)
	if g.score[left] != 2 {
		t.Errorf("score after resize = %v", g.score)
	}
	if g.paddleH != 7 || g.ballX != 60 {
		t.Errorf("paddleH = %d, ballX = %v, expected 7 and a serve from 60", g.paddleH, g.ballX)
	}

	g.Resize(10, 5)
	g.Step(press())
	if g.tick != 0 {
		t.Error("match ran on a screen that is too small")
	}
}

func TestRender(t *testing.T) {
	g := newGame(t, config.DefaultPongConfig(), false)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if got := screen.Get(40, 1); got != netChar {
		t.Errorf("net = %q, expected %q", got, netChar)
	}
	if got := screen.Get(paddleOffset, int(g.leftY)); got != paddleChar {
		t.Errorf("left paddle = %q, expected %q", got, paddleChar)
	}
	if got := screen.Get(80-paddleOffset-1, int(g.rightY)); got != paddleChar {
		t.Errorf("right paddle = %q, expected %q", got, paddleChar)
	}
	if row := screen.Row(0); !strings.Contains(row, "P1") || !strings.Contains(row, "CPU") {
		t.Errorf("HUD = %q, expected P1 and CPU labels", row)
	}

	g.score[left] = g.cfg.WinScore - 1
	g.point(left)
	g.Render(screen)
	if !strings.Contains(screen.String(), "You win!") {
		t.Error("win overlay not rendered")
	}
}

func TestFactoriesLogThroughEnv(t *testing.T) {
	for _, id := range []string{"pong", "pong_versus"} {
		t.Run(id, func(t *testing.T) {
			var buf bytes.Buffer
			game, err := registry.Create(id, registry.Env{Logger: log.New(&buf)})
			if err != nil {
				t.Fatalf("Create(%q) error = %v", id, err)
			}
			g := game.(*Game)
			if g.ID() != id {
				t.Errorf("ID() = %q, expected %q", g.ID(), id)
			}
			g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 24})

			g.score[left] = g.cfg.WinScore - 1
			g.point(left)

			out := buf.String()
			if !strings.Contains(out, "match over") || !strings.Contains(out, "game="+id) {
				t.Errorf("log output = %q, expected a match over entry tagged with the game", out)
			}
		})
	}
}
