package snake

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

func newCampaign(seed int64) *Game {
	g := New(config.DefaultSnakeConfig(), config.DefaultControls())
	g.Reset(core.RuntimeConfig{Seed: seed, ScreenW: 80, ScreenH: 24})
	return g
}

func TestDeterminism(t *testing.T) {
	// Two games with the same seed should produce identical snapshots
	g1 := newCampaign(12345)
	g2 := newCampaign(12345)

	input := core.NewInputFrame()
	for i := 0; i < 200; i++ {
		input.Clear()
		switch i {
		case 20:
			input.Set(core.ActionDown)
		case 60:
			input.Set(core.ActionRight)
		case 90:
			input.Set(core.ActionUp)
		}

		g1.Step(input)
		g2.Step(input)
	}

	if s1, s2 := g1.Snapshot(), g2.Snapshot(); s1 != s2 {
		t.Errorf("snapshots differ:\n%+v\n%+v", s1, s2)
	}
}

func TestSpawnFromMarker(t *testing.T) {
	g := newCampaign(1)

	spawn, ok := levelGrid(0).Marker('S')
	if !ok {
		t.Fatal("level 1 has no spawn marker")
	}
	if g.snake[0] != spawn {
		t.Errorf("head = %v, expected spawn %v", g.snake[0], spawn)
	}
	if len(g.snake) != 3 || g.snake[2] != (maze.Position{Col: spawn.Col - 2, Row: spawn.Row}) {
		t.Errorf("body = %v, expected two cells trailing left", g.snake)
	}
}

func TestNoImmediateReversal(t *testing.T) {
	g := newCampaign(42)

	if g.direction != DirRight {
		t.Fatalf("Expected initial direction Right, got %v", g.direction)
	}

	input := core.NewInputFrame()
	input.Set(core.ActionLeft)
	g.Step(input)

	if g.nextDir == DirLeft {
		t.Error("Should not allow immediate reversal from Right to Left")
	}

	input.Clear()
	input.Set(core.ActionDown)
	g.Step(input)

	if g.nextDir != DirDown {
		t.Errorf("Expected nextDir to be Down, got %v", g.nextDir)
	}
}

func TestFoodSpawnValidity(t *testing.T) {
	g := newCampaign(999)

	for i := 0; i < 100; i++ {
		g.spawnFood()

		if !g.hasFood {
			t.Fatal("no food spawned on an almost empty map")
		}
		if !g.grid.Walkable(g.food) {
			t.Errorf("Food spawned on wall or out of bounds at %v", g.food)
		}
		if g.isSnakeAt(g.food) {
			t.Errorf("Food spawned on snake at %v", g.food)
		}
	}
}

func TestLevelCompletion(t *testing.T) {
	g := newCampaign(123)
	level := GetLevel(0)

	g.foodEaten = level.TargetFood - 1
	g.checkLevelCompletion()
	if g.levelCleared {
		t.Fatal("Level cleared before reaching TargetFood")
	}

	g.foodEaten = level.TargetFood
	g.checkLevelCompletion()
	if !g.levelCleared {
		t.Fatal("Level should be cleared after eating TargetFood")
	}

	empty := core.NewInputFrame()
	for i := 0; i < levelClearDelay; i++ {
		g.Step(empty)
	}
	if g.levelIndex != 1 || g.levelCleared {
		t.Errorf("Expected level 2 to be loaded, got index %d (cleared=%v)", g.levelIndex, g.levelCleared)
	}
	if g.grid != levelGrid(1) {
		t.Error("Level 2 grid not loaded")
	}
}

func TestCampaignWin(t *testing.T) {
	g := newCampaign(5)
	g.levelIndex = LevelCount() - 1
	g.loadLevel()

	g.foodEaten = GetLevel(g.levelIndex).TargetFood
	g.checkLevelCompletion()
	g.advanceLevel()

	if !g.won {
		t.Fatal("Clearing the last level should win")
	}
	if g.State().Status != core.StatusWon {
		t.Errorf("Status = %v, expected won", g.State().Status)
	}
	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "You Win!") {
		t.Error("Win overlay not rendered")
	}
}

func TestEndlessProgression(t *testing.T) {
	g := NewEndless(config.DefaultSnakeConfig(), config.Controls{})
	g.Reset(core.RuntimeConfig{Seed: 456, ScreenW: 80, ScreenH: 24})

	initialInterval := g.moveInterval()

	g.foodEaten = endlessFood
	g.checkLevelCompletion()
	if g.levelIndex != 1 {
		t.Errorf("Expected level index 1 after %d food in endless, got %d", endlessFood, g.levelIndex)
	}

	// Complete a full cycle; the first level comes back faster.
	for g.levelIndex < LevelCount() {
		g.foodEaten = endlessFood
		g.checkLevelCompletion()
	}
	if g.moveInterval() >= initialInterval {
		t.Errorf("Expected a shorter interval after one cycle, got %d vs initial %d",
			g.moveInterval(), initialInterval)
	}
}

func TestCollisionDetection(t *testing.T) {
	g := newCampaign(789)

	// Head in the top-left corner, moving up into the border.
	g.snake = []maze.Position{{Col: 1, Row: 1}, {Col: 2, Row: 1}, {Col: 3, Row: 1}}
	g.direction = DirUp
	g.nextDir = DirUp

	g.moveSnake()

	if !g.gameOver {
		t.Error("Game should be over after hitting wall")
	}
	if g.State().Status != core.StatusLost {
		t.Errorf("Status = %v, expected lost", g.State().Status)
	}
}

func TestSelfCollision(t *testing.T) {
	g := newCampaign(111)

	g.snake = []maze.Position{
		{Col: 5, Row: 5}, // Head
		{Col: 5, Row: 6},
		{Col: 6, Row: 6},
		{Col: 6, Row: 5},
		{Col: 6, Row: 4},
	}
	g.direction = DirRight
	g.nextDir = DirRight
	g.hasFood = false

	g.moveSnake()

	if !g.gameOver {
		t.Error("Game should be over after self collision")
	}
}

func TestChasingTailIsSafe(t *testing.T) {
	g := newCampaign(112)

	// A 2x2 loop: the head moves into the cell the tail is leaving.
	g.snake = []maze.Position{
		{Col: 5, Row: 5},
		{Col: 5, Row: 6},
		{Col: 6, Row: 6},
		{Col: 6, Row: 5},
	}
	g.direction = DirUp
	g.nextDir = DirRight
	g.hasFood = false

	g.moveSnake()

	if g.gameOver {
		t.Error("Moving into the vacating tail cell should be allowed")
	}
}

func TestSnakeGrowth(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	cfg.FoodPoints = 3
	g := New(cfg, config.Controls{})
	g.Reset(core.RuntimeConfig{Seed: 222, ScreenW: 80, ScreenH: 24})

	initialLen := len(g.snake)
	g.food = g.snake[0].Add(maze.Position{Col: 1})
	g.hasFood = true

	g.moveSnake()

	if len(g.snake) != initialLen+1 {
		t.Errorf("Snake should grow by 1 after eating food, got %d vs %d", len(g.snake), initialLen+1)
	}
	if g.score != 3 {
		t.Errorf("Score should be food_points (3) after eating, got %d", g.score)
	}
	if g.foodEaten != 1 {
		t.Errorf("foodEaten = %d, expected 1", g.foodEaten)
	}
}

func TestMoveEveryTicksOverride(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	cfg.MoveEveryTicks = 2
	cfg.Difficulty.Enabled = false
	g := New(cfg, config.Controls{})
	g.Reset(core.RuntimeConfig{Seed: 7, ScreenW: 80, ScreenH: 24})

	start := g.snake[0]
	empty := core.NewInputFrame()
	for i := 0; i < 6; i++ {
		g.Step(empty)
	}
	if moved := g.snake[0].Col - start.Col; moved != 3 {
		t.Errorf("head moved %d cells in 6 ticks, expected 3", moved)
	}
}

func TestAllLevelsValid(t *testing.T) {
	for i := 0; i < LevelCount(); i++ {
		level := GetLevel(i)
		if level.Name == "" {
			t.Errorf("Level %d has empty name", i)
		}
		if level.TargetFood <= 0 || level.MoveEveryTicks <= 0 {
			t.Errorf("Level %d has invalid targets: %+v", i, level)
		}

		grid := levelGrid(i)
		spawn, ok := grid.Marker('S')
		if !ok {
			t.Errorf("Level %d has no spawn", i)
			continue
		}
		for d := 0; d <= 2; d++ {
			if p := (maze.Position{Col: spawn.Col - d, Row: spawn.Row}); !grid.Walkable(p) {
				t.Errorf("Level %d: spawn body cell %v is blocked", i, p)
			}
		}
		if grid.Rows()+hudHeight > 24 || grid.Cols() > 80 {
			t.Errorf("Level %d does not fit an 80x24 terminal", i)
		}
	}

	if GetLevel(-1) != nil || GetLevel(LevelCount()) != nil {
		t.Error("GetLevel should return nil out of range")
	}
}

func TestGameIDs(t *testing.T) {
	campaign := New(config.SnakeConfig{}, config.Controls{})
	if campaign.ID() != "snake" || campaign.Title() != "Snake" {
		t.Errorf("campaign = %q/%q", campaign.ID(), campaign.Title())
	}

	endless := NewEndless(config.SnakeConfig{}, config.Controls{})
	if endless.ID() != "snake_endless" || endless.Title() != "Snake (Endless)" {
		t.Errorf("endless = %q/%q", endless.ID(), endless.Title())
	}
}

func TestWindowTooSmall(t *testing.T) {
	g := New(config.DefaultSnakeConfig(), config.Controls{})
	g.Reset(core.RuntimeConfig{Seed: 333, ScreenW: 10, ScreenH: 5})

	if snap := g.Snapshot(); snap.State != StatePausedSmall {
		t.Errorf("State should be paused_small_window, got %s", snap.State)
	}

	g.Resize(80, 24)
	if g.tooSmall {
		t.Error("Resize to 80x24 should clear the too-small flag")
	}
}

func TestRender(t *testing.T) {
	g := newCampaign(444)

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	content := screen.String()
	if !strings.Contains(content, "Snake") {
		t.Error("HUD should contain 'Snake'")
	}

	head := g.snake[0]
	hx, hy := maze.CharCell.Center(head)
	if got := screen.Get(g.offsetX+hx, g.offsetY+hy); got != 'O' {
		t.Errorf("head rendered as %q, expected 'O'", got)
	}
	for dx := range maze.CharCell.W {
		if got := screen.Get(g.offsetX+dx, g.offsetY); got != '#' {
			t.Errorf("top-left wall column %d rendered as %q, expected '#'", dx, got)
		}
	}
}

func TestMazeCellsAreTwoCharactersWide(t *testing.T) {
	g := New(config.DefaultSnakeConfig(), config.Controls{})
	cols := levelGrid(0).Cols()

	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: cols*2 - 1, ScreenH: 24})
	if !g.tooSmall {
		t.Errorf("a %d-column screen cannot hold %d double-width cells", cols*2-1, cols)
	}

	g.Resize(cols*2, 24)
	if g.tooSmall || g.offsetX != 0 {
		t.Errorf("exact fit: tooSmall=%v offsetX=%d, expected false and 0", g.tooSmall, g.offsetX)
	}
}

func TestLevelEventsUseEnvLogger(t *testing.T) {
	var buf bytes.Buffer
	created, err := registry.Create("snake", registry.Env{Logger: log.New(&buf)})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	g, ok := created.(*Game)
	if !ok {
		t.Fatalf("Create() returned %T", created)
	}
	g.Reset(core.RuntimeConfig{Seed: 9, ScreenW: 80, ScreenH: 24})

	g.foodEaten = GetLevel(0).TargetFood
	g.checkLevelCompletion()
	g.advanceLevel()

	out := buf.String()
	if !strings.Contains(out, "level advanced") || !strings.Contains(out, "game=snake") {
		t.Errorf("logger output = %q, expected a level advance tagged with the game", out)
	}

	// Drive the head into the left wall.
	g.snake = []maze.Position{{Col: 1, Row: 1}, {Col: 2, Row: 1}, {Col: 3, Row: 1}}
	g.direction, g.nextDir = DirLeft, DirLeft
	g.moveSnake()
	if !g.gameOver || !strings.Contains(buf.String(), "crashed") {
		t.Errorf("gameOver=%v, log=%q, expected a logged wall crash", g.gameOver, buf.String())
	}
}
