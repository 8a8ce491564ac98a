// Package coins implements Coin Chase: collect every coin in a maze while a
// pursuer closes in along the shortest path.
package coins

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/grid-arcade/internal/config"
	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/maze"
	"github.com/vovakirdan/grid-arcade/internal/registry"
)

const (
	hudHeight = 2

	playerMarker  = 'P'
	pursuerMarker = 'G'
)

var cell = maze.CharCell

// Game implements Coin Chase.
type Game struct {
	cfg        config.CoinsConfig
	grid       *maze.Grid
	difficulty *config.DifficultyManager
	keys       config.Controls
	logger     *log.Logger

	tick  uint64
	score int
	coins map[maze.Position]bool

	player  maze.Position
	pursuer maze.Position

	// pending is the latest direction pressed and not yet used.
	pending         core.Action
	playerCooldown  int
	pursuerCooldown int

	status   core.Status
	paused   bool
	tooSmall bool

	screenW, screenH int
	offsetX, offsetY int
}

func init() {
	registry.Register(registry.GameInfo{
		ID:          "coins",
		Title:       "Coin Chase",
		Description: "Grab every coin before the pursuer catches you",
	}, func(env registry.Env) (registry.Game, error) {
		logger := env.Log().With("game", "coins")
		cfg, err := config.LoadCoins(env.ConfigPath)
		if err != nil {
			logger.Warn("config rejected", "path", env.ConfigPath, "error", err)
			return nil, err
		}
		cfg.Difficulty.Apply(env.Difficulty)
		g, err := New(cfg, env.Controls)
		if err != nil {
			logger.Warn("maze rejected", "error", err)
			return nil, err
		}
		g.logger = logger
		return g, nil
	})
}

// New creates a Coin Chase game. An empty cfg.Maze selects the built-in maze.
// keys is only used for on-screen hints.
func New(cfg config.CoinsConfig, keys config.Controls) (*Game, error) {
	layout := cfg.Maze
	if len(layout) == 0 {
		layout = config.DefaultChaseMaze
	}

	grid, err := maze.Parse(layout)
	if err != nil {
		return nil, fmt.Errorf("coins: %w", err)
	}
	for _, m := range []rune{playerMarker, pursuerMarker} {
		if _, ok := grid.Marker(m); !ok {
			return nil, fmt.Errorf("coins: maze has no %q spawn: %w", m, config.ErrInvalid)
		}
	}

	cfg.Movement.PlayerMoveTicks = max(1, cfg.Movement.PlayerMoveTicks)
	cfg.Movement.PursuerMoveTicks = max(1, cfg.Movement.PursuerMoveTicks)

	return &Game{
		cfg:        cfg,
		grid:       grid,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		keys:       keys,
		logger:     log.Default(),
	}, nil
}

// ID returns the game identifier.
func (g *Game) ID() string { return "coins" }

// Title returns the display name.
func (g *Game) Title() string { return "Coin Chase" }

// Reset starts a new round on the configured maze.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.tick = 0
	g.score = 0
	g.status = core.StatusPlaying
	g.paused = false
	g.pending = core.ActionNone

	g.player, _ = g.grid.Marker(playerMarker)
	g.pursuer, _ = g.grid.Marker(pursuerMarker)
	g.playerCooldown = 0
	g.pursuerCooldown = g.cfg.Movement.PursuerStartDelay

	g.coins = make(map[maze.Position]bool)
	for _, p := range g.grid.Open() {
		if p != g.player {
			g.coins[p] = true
		}
	}

	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize recentres the maze without restarting the round.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h

	mazeW, mazeH := g.grid.Cols()*cell.W, g.grid.Rows()*cell.H
	g.tooSmall = w < mazeW || h < mazeH+hudHeight
	g.offsetX = max(0, (w-mazeW)/2)
	g.offsetY = hudHeight
}

// Step advances the game by one tick: input, player move, pursuer step,
// then collision and win checks.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) {
		g.Reset(core.RuntimeConfig{ScreenW: g.screenW, ScreenH: g.screenH})
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && g.status == core.StatusPlaying {
		g.paused = !g.paused
	}
	if g.status != core.StatusPlaying || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	g.tick++

	if d := in.Direction(); d != core.ActionNone {
		g.pending = d
	}

	// The player moves first, so the two can never pass through each other
	// within a tick and a plain equality check catches every collision.
	g.movePlayer()
	g.movePursuer()

	switch {
	case g.player == g.pursuer:
		g.status = core.StatusLost
		g.logger.Info("caught", "tick", g.tick, "score", g.score, "coins_left", len(g.coins), "at", g.player)
	case len(g.coins) == 0:
		g.status = core.StatusWon
		g.logger.Info("all coins collected", "tick", g.tick, "score", g.score)
	}

	return core.StepResult{State: g.State()}
}

// movePlayer spends the buffered direction once the cooldown has run out.
// Walls consume the input without moving.
func (g *Game) movePlayer() {
	if g.playerCooldown > 0 {
		g.playerCooldown--
	}
	if g.playerCooldown > 0 || g.pending == core.ActionNone {
		return
	}

	next := g.player.Add(delta(g.pending))
	g.pending = core.ActionNone
	if !g.grid.Walkable(next) {
		return
	}

	g.player = next
	g.playerCooldown = g.cfg.Movement.PlayerMoveTicks
	if g.coins[next] {
		delete(g.coins, next)
		g.score += g.cfg.Scoring.CoinPoints
	}
}

// movePursuer advances the pursuer one cell along a shortest path to the
// player's current cell. The path is recomputed on every move.
func (g *Game) movePursuer() {
	if g.pursuerCooldown > 0 {
		g.pursuerCooldown--
	}
	if g.pursuerCooldown > 0 {
		return
	}

	g.pursuer = maze.NextStep(g.grid, g.pursuer, g.player)
	g.pursuerCooldown = g.difficulty.Interval(g.cfg.Movement.PursuerMoveTicks, g.score, int(g.tick))
}

func delta(a core.Action) maze.Position {
	switch a {
	case core.ActionUp:
		return maze.Position{Row: -1}
	case core.ActionDown:
		return maze.Position{Row: 1}
	case core.ActionLeft:
		return maze.Position{Col: -1}
	case core.ActionRight:
		return maze.Position{Col: 1}
	}
	return maze.Position{}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:  g.score,
		Status: g.status,
		Paused: g.paused,
	}
}

// CoinsLeft returns how many coins remain in the maze.
func (g *Game) CoinsLeft() int {
	return len(g.coins)
}

// Render draws the maze, coins, both actors and the HUD.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		dst.DrawOverlay("Window too small",
			fmt.Sprintf("Need %dx%d", g.grid.Cols()*cell.W, g.grid.Rows()*cell.H+hudHeight))
		return
	}

	g.renderHUD(dst)

	for _, p := range g.grid.Open() {
		if g.coins[p] {
			g.drawMarker(dst, p, '·', core.ColorYellow)
		}
	}
	for row := 0; row < g.grid.Rows(); row++ {
		for col := 0; col < g.grid.Cols(); col++ {
			p := maze.Position{Col: col, Row: row}
			if g.grid.At(p) != maze.Wall {
				continue
			}
			x, y := cell.Origin(p)
			for dx := 0; dx < cell.W; dx++ {
				dst.SetColor(g.offsetX+x+dx, g.offsetY+y, '█', core.ColorBlue)
			}
		}
	}

	g.drawMarker(dst, g.player, '@', core.ColorBrightGreen)
	g.drawMarker(dst, g.pursuer, 'G', core.ColorBrightRed)

	keys := g.keys
	switch {
	case g.status == core.StatusWon:
		dst.DrawOverlay("All coins collected!", fmt.Sprintf("Score: %d", g.score), "Press "+keys.KeyFor(core.ActionRestart)+" to play again")
	case g.status == core.StatusLost:
		dst.DrawOverlay("Caught!", fmt.Sprintf("Score: %d", g.score), "Press "+keys.KeyFor(core.ActionRestart)+" to restart")
	case g.paused:
		dst.DrawOverlay("Paused", "Press "+keys.KeyFor(core.ActionPause)+" to continue")
	}
}

func (g *Game) drawMarker(dst *core.Screen, p maze.Position, r rune, c core.Color) {
	x, y := cell.Center(p)
	dst.SetColor(g.offsetX+x, g.offsetY+y, r, c)
}

func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" Coin Chase  Score: %d  Coins: %d  ", g.score, len(g.coins))
	dst.DrawText(0, 0, hud)

	dist := maze.Distance(g.grid, g.pursuer, g.player)
	label := fmt.Sprintf("Pursuer: %d", dist)
	if dist < 0 {
		label = "Pursuer: --"
	}
	color := core.ColorDefault
	if dist >= 0 && dist <= g.cfg.Scoring.DangerRange {
		color = core.ColorBrightRed
	}
	dst.DrawTextColor(len(hud), 0, label, color)

	dst.DrawHLine(0, 1, dst.Width(), '─')
}
