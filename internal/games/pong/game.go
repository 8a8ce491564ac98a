// Package pong implements Pong against a CPU paddle or a second player on
// the same keyboard. Player 1 holds the left paddle.
package pong

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/grid-arcade/internal/config"
	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/registry"
)

const (
	paddleChar = '█'
	ballChar   = '●'
	netChar    = '│'

	paddleOffset = 2 // Columns between the screen edge and a paddle
	minW, minH   = 20, 10
)

// side identifies a paddle.
type side int

const (
	left side = iota + 1
	right
)

// Game implements Pong.
type Game struct {
	cfg        config.PongConfig
	difficulty *config.DifficultyManager
	keys       config.Controls
	versus     bool
	logger     *log.Logger

	rng  *rand.Rand
	tick int

	paddleH        int
	leftY, rightY  float64
	ballX, ballY   float64
	ballVX, ballVY float64
	cpuSkill       float64

	score  [3]int // indexed by side
	winner side

	serving    bool
	serveDelay int
	paused     bool
	tooSmall   bool

	screenW, screenH int
}

func init() {
	register("pong", "Pong", "First to the target score against the CPU paddle", false)
	register("pong_versus", "Pong (2P)", "Two players on one keyboard: action keys move the right paddle", true)
}

func register(id, title, desc string, versus bool) {
	registry.Register(registry.GameInfo{ID: id, Title: title, Description: desc},
		func(env registry.Env) (registry.Game, error) {
			cfg, err := config.LoadPong(env.ConfigPath)
			if err != nil {
				env.Log().Warn("config rejected", "game", id, "path", env.ConfigPath, "error", err)
				return nil, err
			}
			cfg.Difficulty.Apply(env.Difficulty)
			g := New(cfg, env.Controls, versus)
			g.logger = env.Log().With("game", id)
			return g, nil
		})
}

// New creates a Pong game. With versus set the right paddle follows the
// action keys instead of the CPU.
func New(cfg config.PongConfig, keys config.Controls, versus bool) *Game {
	cfg.WinScore = max(1, cfg.WinScore)
	return &Game{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		keys:       keys,
		versus:     versus,
		logger:     log.Default(),
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.versus {
		return "pong_versus"
	}
	return "pong"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.versus {
		return "Pong (2P)"
	}
	return "Pong"
}

// Reset starts a new match.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.score = [3]int{}
	g.winner = 0
	g.paused = false
	g.cpuSkill = g.cfg.CPUSkill

	g.layout(cfg.ScreenW, cfg.ScreenH)
	g.leftY = g.centredPaddle()
	g.rightY = g.centredPaddle()
	g.serve(left)
}

// Resize fits the court to a new screen. Scores survive; the ball is
// served again from the centre.
func (g *Game) Resize(w, h int) {
	g.layout(w, h)
	g.leftY = g.clampPaddle(g.leftY)
	g.rightY = g.clampPaddle(g.rightY)
	if g.rng != nil && !g.over() {
		g.serve(left)
	}
}

func (g *Game) layout(w, h int) {
	g.screenW, g.screenH = w, h
	g.tooSmall = w < minW || h < minH
	g.paddleH = min(max(h/5, 3), 7)
}

func (g *Game) centredPaddle() float64 {
	return float64(g.screenH)/2 - float64(g.paddleH)/2
}

// clampPaddle keeps a paddle between the HUD row and the bottom edge.
func (g *Game) clampPaddle(y float64) float64 {
	return math.Max(1, math.Min(y, float64(g.screenH-g.paddleH-1)))
}

// serve parks the ball at the centre, aimed at the given side.
func (g *Game) serve(towards side) {
	g.serving = true
	g.serveDelay = g.cfg.ServeDelay
	g.ballX = float64(g.screenW) / 2
	g.ballY = float64(g.screenH) / 2

	g.ballVX = g.cfg.BallSpeed
	if towards == left {
		g.ballVX = -g.cfg.BallSpeed
	}
	g.ballVY = g.cfg.BallSpeed * (g.rng.Float64() - 0.5) * 0.6
}

func (g *Game) over() bool { return g.winner != 0 }

// Step advances the match by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) {
		g.Reset(core.RuntimeConfig{
			Seed:    g.rng.Int63(),
			ScreenW: g.screenW,
			ScreenH: g.screenH,
		})
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.over() {
		g.paused = !g.paused
	}
	if g.over() || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	g.tick++
	if g.serving {
		g.serveDelay--
		g.serving = g.serveDelay > 0
	}

	g.movePaddles(in)
	if !g.serving {
		g.moveBall()
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) movePaddles(in core.InputFrame) {
	g.leftY = g.clampPaddle(g.leftY + g.cfg.PaddleSpeed*axis(in, core.ActionUp, core.ActionDown))

	if g.versus {
		g.rightY = g.clampPaddle(g.rightY + g.cfg.PaddleSpeed*axis(in, core.ActionPrimary, core.ActionSecondary))
		return
	}

	level := g.difficulty.Level(g.score[left], g.tick)
	g.cpuSkill = g.cfg.CPUSkill + level*(g.cfg.CPUMaxSkill-g.cfg.CPUSkill)

	// The CPU only reacts to a ball heading its way.
	if g.ballVX <= 0 {
		return
	}
	step := g.cfg.PaddleSpeed * g.cpuSkill
	diff := g.ballY - float64(g.paddleH)/2 - g.rightY
	if math.Abs(diff) > step {
		g.rightY = g.clampPaddle(g.rightY + math.Copysign(step, diff))
	}
}

// axis returns -1 for up, 1 for down and 0 for neither or both.
func axis(in core.InputFrame, up, down core.Action) float64 {
	var d float64
	if in.Has(up) {
		d--
	}
	if in.Has(down) {
		d++
	}
	return d
}

func (g *Game) moveBall() {
	g.ballX += g.ballVX
	g.ballY += g.ballVY

	top, bottom := 1.0, float64(g.screenH-2)
	if g.ballY <= top {
		g.ballY = top
		g.ballVY = -g.ballVY
	}
	if g.ballY >= bottom {
		g.ballY = bottom
		g.ballVY = -g.ballVY
	}

	leftX := float64(paddleOffset)
	rightX := float64(g.screenW - paddleOffset - 1)

	if g.ballVX < 0 && g.ballX <= leftX+1 && g.onPaddle(g.leftY) {
		g.ballX = leftX + 1
		g.deflect(g.leftY)
	}
	if g.ballVX > 0 && g.ballX >= rightX && g.onPaddle(g.rightY) {
		g.ballX = rightX - 1
		g.deflect(g.rightY)
	}

	limit := g.cfg.BallSpeed * 3
	if math.Abs(g.ballVX) > limit {
		g.ballVX = math.Copysign(limit, g.ballVX)
	}
	if math.Abs(g.ballVY) > limit/2 {
		g.ballVY = math.Copysign(limit/2, g.ballVY)
	}

	switch {
	case g.ballX < 0:
		g.point(right)
	case g.ballX > float64(g.screenW):
		g.point(left)
	}
}

func (g *Game) onPaddle(y float64) bool {
	return g.ballY >= y && g.ballY <= y+float64(g.paddleH)
}

// deflect returns the ball, adding spin from where it struck the paddle
// and a little speed.
func (g *Game) deflect(paddleY float64) {
	hit := (g.ballY - paddleY) / float64(g.paddleH)
	g.ballVX = -g.ballVX * 1.02
	g.ballVY += (hit - 0.5) * 0.3
}

func (g *Game) point(scorer side) {
	g.score[scorer]++
	g.logger.Debug("point", "left", g.score[left], "right", g.score[right], "tick", g.tick)

	if g.score[scorer] >= g.cfg.WinScore {
		g.winner = scorer
		g.serving = false
		g.logger.Info("match over", "winner", g.sideName(scorer),
			"left", g.score[left], "right", g.score[right], "tick", g.tick)
		return
	}

	conceded := left
	if scorer == left {
		conceded = right
	}
	g.serve(conceded)
}

func (g *Game) sideName(s side) string {
	switch {
	case s == left && g.versus:
		return "Player 1"
	case s == left:
		return "You"
	case g.versus:
		return "Player 2"
	default:
		return "CPU"
	}
}

// State returns the current game state. Against the CPU the score is the
// player's points; a two-player match is not scored.
func (g *Game) State() core.GameState {
	status := core.StatusPlaying
	switch {
	case g.winner == left || (g.versus && g.over()):
		status = core.StatusWon
	case g.winner == right:
		status = core.StatusLost
	}

	score := g.score[left]
	if g.versus {
		score = 0
	}
	return core.GameState{Score: score, Status: status, Paused: g.paused}
}

// Render draws the court, paddles, ball and scores.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		dst.DrawOverlay("Window too small", fmt.Sprintf("Need at least %dx%d", minW, minH))
		return
	}

	mid := dst.Width() / 2
	for y := 1; y < dst.Height()-1; y += 2 {
		dst.SetColor(mid, y, netChar, core.ColorGray)
	}

	leftX, rightX := paddleOffset, dst.Width()-paddleOffset-1
	for i := range g.paddleH {
		dst.SetColor(leftX, int(g.leftY)+i, paddleChar, core.ColorBrightBlue)
		dst.SetColor(rightX, int(g.rightY)+i, paddleChar, core.ColorBrightRed)
	}

	// The ball blinks while waiting to be served.
	if !g.over() && (!g.serving || (g.serveDelay/10)%2 == 0) {
		dst.SetColor(int(g.ballX), int(g.ballY), ballChar, core.ColorBrightYellow)
	}

	dst.DrawText(1, 0, "P1")
	rightLabel := "CPU"
	if g.versus {
		rightLabel = "P2"
	}
	dst.DrawText(dst.Width()-len(rightLabel)-1, 0, rightLabel)
	dst.DrawText(mid-5, 0, fmt.Sprintf("%d", g.score[left]))
	dst.DrawText(mid+4, 0, fmt.Sprintf("%d", g.score[right]))

	restart := g.keys.KeyFor(core.ActionRestart)
	switch {
	case g.over():
		headline := g.sideName(g.winner) + " wins!"
		if g.winner == left && !g.versus {
			headline = "You win!"
		}
		dst.DrawOverlay(headline,
			fmt.Sprintf("%d - %d", g.score[left], g.score[right]),
			"Press "+restart+" for a rematch")
	case g.paused:
		dst.DrawOverlay("Paused", "Press "+g.keys.KeyFor(core.ActionPause)+" to continue")
	}
}
