package snake

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/grid-arcade/internal/config"
	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/maze"
	"github.com/vovakirdan/grid-arcade/internal/registry"
)

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

func (d Direction) delta() maze.Position {
	switch d {
	case DirUp:
		return maze.Position{Row: -1}
	case DirDown:
		return maze.Position{Row: 1}
	case DirLeft:
		return maze.Position{Col: -1}
	default:
		return maze.Position{Col: 1}
	}
}

func (d Direction) opposite(o Direction) bool {
	return (d+2)%4 == o
}

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeEndless  Mode = "endless"
)

const (
	spawnMarker     = 'S'
	hudHeight       = 2
	levelClearDelay = 90 // ~1.5 seconds at 60 ticks/s
	endlessFood     = 10 // Food per level in endless mode
)

var cell = maze.CharCell

// Game implements the Snake game.
type Game struct {
	mode       Mode
	cfg        config.SnakeConfig
	difficulty *config.DifficultyManager
	keys       config.Controls
	logger     *log.Logger

	rng        *rand.Rand
	tick       uint64
	score      int
	foodEaten  int // Food eaten in current level
	levelIndex int // Current level (0-indexed, grows past LevelCount in endless)
	moveTicker int // Counts ticks until next move

	grid      *maze.Grid
	snake     []maze.Position // Head at index 0
	direction Direction
	nextDir   Direction // Buffered direction for next move
	food      maze.Position
	hasFood   bool

	screenW, screenH int
	offsetX, offsetY int

	gameOver        bool
	levelCleared    bool
	won             bool
	paused          bool
	tooSmall        bool
	levelClearTicks int
}

// New creates a campaign mode Snake game.
func New(cfg config.SnakeConfig, keys config.Controls) *Game {
	return newGame(ModeCampaign, cfg, keys)
}

// NewEndless creates an endless mode Snake game.
func NewEndless(cfg config.SnakeConfig, keys config.Controls) *Game {
	return newGame(ModeEndless, cfg, keys)
}

func newGame(mode Mode, cfg config.SnakeConfig, keys config.Controls) *Game {
	return &Game{
		mode:       mode,
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		keys:       keys,
		logger:     log.Default(),
	}
}

func init() {
	factory := func(mode Mode) registry.Factory {
		return func(env registry.Env) (registry.Game, error) {
			cfg, err := config.LoadSnake(env.ConfigPath)
			if err != nil {
				env.Log().Warn("config rejected", "game", "snake", "path", env.ConfigPath, "error", err)
				return nil, err
			}
			cfg.Difficulty.Apply(env.Difficulty)
			g := newGame(mode, cfg, env.Controls)
			g.logger = env.Log().With("game", g.ID())
			return g, nil
		}
	}

	registry.Register(registry.GameInfo{
		ID:          "snake",
		Title:       "Snake",
		Description: "Eat your way through five walled levels",
	}, factory(ModeCampaign))
	registry.Register(registry.GameInfo{
		ID:          "snake_endless",
		Title:       "Snake (Endless)",
		Description: "Levels loop and speed up every cycle",
	}, factory(ModeEndless))
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "snake_endless"
	}
	return "snake"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Snake (Endless)"
	}
	return "Snake"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.score = 0
	g.levelIndex = 0
	g.gameOver = false
	g.won = false
	g.paused = false
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	g.loadLevel()
}

// Resize recentres the map without restarting.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
	g.layout()
}

func (g *Game) layout() {
	if g.grid == nil {
		return
	}
	mazeW, mazeH := g.grid.Cols()*cell.W, g.grid.Rows()*cell.H
	g.tooSmall = g.screenW < mazeW || g.screenH < mazeH+hudHeight
	g.offsetX = max(0, (g.screenW-mazeW)/2)
	g.offsetY = hudHeight
}

// loadLevel loads the current level's map and spawns the snake.
func (g *Game) loadLevel() {
	g.grid = levelGrid(g.levelIndex % LevelCount())
	g.moveTicker = 0
	g.foodEaten = 0
	g.levelCleared = false
	g.levelClearTicks = 0
	g.layout()

	head, _ := g.grid.Marker(spawnMarker)
	g.snake = []maze.Position{
		head,
		{Col: head.Col - 1, Row: head.Row},
		{Col: head.Col - 2, Row: head.Row},
	}
	g.direction = DirRight
	g.nextDir = DirRight

	g.spawnFood()
}

// moveInterval returns the ticks between moves for the current level,
// score and endless cycle.
func (g *Game) moveInterval() int {
	base := GetLevel(g.levelIndex % LevelCount()).MoveEveryTicks
	if g.cfg.MoveEveryTicks > 0 {
		base = g.cfg.MoveEveryTicks
	}
	if g.mode == ModeEndless {
		base -= g.levelIndex / LevelCount()
	}
	return g.difficulty.Interval(max(1, base), g.score, int(g.tick))
}

// spawnFood places food at a random free open cell.
func (g *Game) spawnFood() {
	var free []maze.Position
	for _, p := range g.grid.Open() {
		if !g.isSnakeAt(p) {
			free = append(free, p)
		}
	}

	if len(free) == 0 {
		g.hasFood = false
		return
	}

	g.food = free[g.rng.Intn(len(free))]
	g.hasFood = true
}

// isSnakeAt checks if the snake occupies the given cell.
func (g *Game) isSnakeAt(p maze.Position) bool {
	for _, seg := range g.snake {
		if seg == p {
			return true
		}
	}
	return false
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	if input.Has(core.ActionRestart) && (g.gameOver || g.won) {
		g.Reset(core.RuntimeConfig{
			Seed:    g.rng.Int63(),
			ScreenW: g.screenW,
			ScreenH: g.screenH,
		})
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) && !g.gameOver && !g.won {
		g.paused = !g.paused
	}

	if g.gameOver || g.won || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	g.tick++

	if g.levelCleared {
		g.levelClearTicks++
		if g.levelClearTicks >= levelClearDelay {
			g.advanceLevel()
		}
		return core.StepResult{State: g.State()}
	}

	g.processInput(input)

	g.moveTicker++
	if g.moveTicker >= g.moveInterval() {
		g.moveTicker = 0
		g.moveSnake()
	}

	return core.StepResult{State: g.State()}
}

// processInput buffers the latest direction unless it would reverse the snake.
func (g *Game) processInput(input core.InputFrame) {
	var newDir Direction
	switch input.Direction() {
	case core.ActionUp:
		newDir = DirUp
	case core.ActionDown:
		newDir = DirDown
	case core.ActionLeft:
		newDir = DirLeft
	case core.ActionRight:
		newDir = DirRight
	default:
		return
	}

	if !newDir.opposite(g.direction) {
		g.nextDir = newDir
	}
}

// moveSnake moves the snake one cell in the buffered direction.
func (g *Game) moveSnake() {
	if len(g.snake) == 0 {
		return
	}

	g.direction = g.nextDir
	newHead := g.snake[0].Add(g.direction.delta())

	if !g.grid.Walkable(newHead) {
		g.crash("wall", newHead)
		return
	}

	eating := g.hasFood && newHead == g.food

	// The tail moves out of the way unless the snake is growing.
	body := g.snake
	if !eating {
		body = body[:len(body)-1]
	}
	for _, seg := range body {
		if seg == newHead {
			g.crash("self", newHead)
			return
		}
	}

	g.snake = append([]maze.Position{newHead}, body...)

	if eating {
		g.score += g.cfg.FoodPoints
		g.foodEaten++
		g.spawnFood()
		g.checkLevelCompletion()
	}
}

func (g *Game) crash(into string, at maze.Position) {
	g.gameOver = true
	g.logger.Info("crashed", "into", into, "at", at, "level", g.levelIndex+1, "score", g.score)
}

// checkLevelCompletion checks if the level is complete.
func (g *Game) checkLevelCompletion() {
	switch g.mode {
	case ModeCampaign:
		if level := GetLevel(g.levelIndex); level != nil && g.foodEaten >= level.TargetFood {
			g.levelCleared = true
			g.levelClearTicks = 0
		}
	case ModeEndless:
		if g.foodEaten >= endlessFood {
			g.levelIndex++
			g.logger.Info("level advanced", "level", g.levelIndex+1, "interval", g.moveInterval(), "score", g.score)
			g.loadLevel()
		}
	}
}

// advanceLevel moves to the next level.
func (g *Game) advanceLevel() {
	g.levelIndex++
	if g.mode == ModeCampaign && g.levelIndex >= LevelCount() {
		g.levelIndex = LevelCount() - 1
		g.levelCleared = false
		g.won = true
		g.logger.Info("campaign won", "score", g.score, "tick", g.tick)
		return
	}
	g.logger.Info("level advanced", "level", g.levelIndex+1, "name", GetLevel(g.levelIndex%LevelCount()).Name, "score", g.score)
	g.loadLevel()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	status := core.StatusPlaying
	switch {
	case g.won:
		status = core.StatusWon
	case g.gameOver:
		status = core.StatusLost
	}
	return core.GameState{
		Score:  g.score,
		Status: status,
		Paused: g.paused,
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	if g.tooSmall {
		dst.DrawOverlay("Window too small", "Resize to continue")
		return
	}

	for row := 0; row < g.grid.Rows(); row++ {
		for col := 0; col < g.grid.Cols(); col++ {
			p := maze.Position{Col: col, Row: row}
			if g.grid.At(p) != maze.Wall {
				continue
			}
			x, y := cell.Origin(p)
			for dx := range cell.W {
				dst.SetColor(g.offsetX+x+dx, g.offsetY+y, '#', core.ColorGray)
			}
		}
	}

	for i, seg := range g.snake {
		r := 'o'
		if i == 0 {
			r = 'O'
		}
		g.drawMarker(dst, seg, r, core.ColorBrightGreen)
	}

	if g.hasFood {
		g.drawMarker(dst, g.food, '*', core.ColorBrightRed)
	}

	restart := g.keys.KeyFor(core.ActionRestart)
	switch {
	case g.won:
		dst.DrawOverlay("You Win!", fmt.Sprintf("Final Score: %d", g.score))
	case g.gameOver:
		dst.DrawOverlay("Game Over", "Press "+restart+" to restart")
	case g.levelCleared:
		dst.DrawOverlay(fmt.Sprintf("Level %d cleared!", g.levelIndex+1), GetLevel(g.levelIndex).Name)
	case g.paused:
		dst.DrawOverlay("Paused", "Press "+g.keys.KeyFor(core.ActionPause)+" to continue")
	}
}

func (g *Game) drawMarker(dst *core.Screen, p maze.Position, r rune, c core.Color) {
	x, y := cell.Center(p)
	dst.SetColor(g.offsetX+x, g.offsetY+y, r, c)
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	var hud string
	if g.mode == ModeEndless {
		hud = fmt.Sprintf(" Snake (Endless)  Score: %d  Cycle: %d  Interval: %d",
			g.score, g.levelIndex/LevelCount()+1, g.moveInterval())
	} else {
		hud = fmt.Sprintf(" Snake  Score: %d  Level: %d/%d  Food: %d/%d",
			g.score, g.levelIndex+1, LevelCount(), g.foodEaten, GetLevel(g.levelIndex).TargetFood)
	}
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}
