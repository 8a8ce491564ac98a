package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll() failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
}

func TestEmbeddedDefaultsMatchBuiltins(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	coins, err := LoadCoins("")
	if err != nil {
		t.Fatalf("LoadCoins() failed: %v", err)
	}
	def := DefaultCoinsConfig()
	if coins.Movement != def.Movement {
		t.Errorf("coins movement = %+v, expected %+v", coins.Movement, def.Movement)
	}
	if coins.Scoring != def.Scoring {
		t.Errorf("coins scoring = %+v, expected %+v", coins.Scoring, def.Scoring)
	}

	arcade, err := LoadArcade("")
	if err != nil {
		t.Fatalf("LoadArcade() failed: %v", err)
	}
	if arcade != DefaultArcadeConfig() {
		t.Errorf("arcade = %+v, expected %+v", arcade, DefaultArcadeConfig())
	}

	mines, err := LoadMines("")
	if err != nil {
		t.Fatalf("LoadMines() failed: %v", err)
	}
	if mines.Rows != 12 || mines.Cols != 16 || mines.Mines != 30 {
		t.Errorf("mines board = %dx%d/%d, expected 12x16/30", mines.Rows, mines.Cols, mines.Mines)
	}

	snake, err := LoadSnake("")
	if err != nil {
		t.Fatalf("LoadSnake() failed: %v", err)
	}
	if snake.FoodPoints != 1 || snake.Difficulty.Progression.MaxAt != 60 {
		t.Errorf("snake = %+v, expected embedded defaults", snake)
	}

	pong, err := LoadPong("")
	if err != nil {
		t.Fatalf("LoadPong() failed: %v", err)
	}
	if pong != DefaultPongConfig() {
		t.Errorf("pong = %+v, expected %+v", pong, DefaultPongConfig())
	}
}

func TestUserConfigOverridesEmbedded(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	writeFile(t, filepath.Join(home, ".arcade", "configs", "coins.yaml"), `
movement:
  pursuer_move_ticks: 3
scoring:
  coin_points: 25
`)

	cfg, err := LoadCoins("")
	if err != nil {
		t.Fatalf("LoadCoins() failed: %v", err)
	}
	if cfg.Movement.PursuerMoveTicks != 3 {
		t.Errorf("PursuerMoveTicks = %d, expected 3", cfg.Movement.PursuerMoveTicks)
	}
	if cfg.Scoring.CoinPoints != 25 {
		t.Errorf("CoinPoints = %d, expected 25", cfg.Scoring.CoinPoints)
	}
	// Keys missing from the file keep their defaults.
	if cfg.Movement.PlayerMoveTicks != 7 {
		t.Errorf("PlayerMoveTicks = %d, expected default 7", cfg.Movement.PlayerMoveTicks)
	}
}

func TestBrokenUserConfigFallsThrough(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	writeFile(t, filepath.Join(home, ".arcade", "configs", "coins.yaml"), "movement: [not, a, map")

	cfg, err := LoadCoins("")
	if err != nil {
		t.Fatalf("LoadCoins() should fall back, got error: %v", err)
	}
	if cfg.Movement != DefaultCoinsConfig().Movement {
		t.Errorf("movement = %+v, expected defaults", cfg.Movement)
	}
}

func TestCustomPathMustLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	if _, err := LoadCoins(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing custom file: error = %v, expected os.ErrNotExist", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "movement:\n  player_move_ticks: 0\n")
	if _, err := LoadCoins(bad); !errors.Is(err, ErrInvalid) {
		t.Errorf("zero move ticks: error = %v, expected ErrInvalid", err)
	}

	good := filepath.Join(dir, "good.yaml")
	writeFile(t, good, "scoring:\n  coin_points: 5\n")
	cfg, err := LoadCoins(good)
	if err != nil {
		t.Fatalf("LoadCoins(good) failed: %v", err)
	}
	if cfg.Scoring.CoinPoints != 5 {
		t.Errorf("CoinPoints = %d, expected 5", cfg.Scoring.CoinPoints)
	}
}

func TestValidateCoinsMaze(t *testing.T) {
	tests := []struct {
		name    string
		maze    []string
		wantErr bool
	}{
		{"empty uses built-in", nil, false},
		{"valid", []string{"#####", "#P.G#", "#####"}, false},
		{"missing pursuer", []string{"#####", "#P..#", "#####"}, true},
		{"two players", []string{"#####", "#PPG#", "#####"}, true},
		{"ragged", []string{"#####", "#P.G", "#####"}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultCoinsConfig()
			cfg.Maze = tc.maze
			err := validateCoins(&cfg)
			if (err != nil) != tc.wantErr {
				t.Errorf("validateCoins() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestValidateMines(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
		mines      int
		wantErr    bool
	}{
		{"default", 12, 16, 30, false},
		{"too small", 1, 5, 1, true},
		{"no mines", 5, 5, 0, true},
		{"leaves first reveal room", 5, 5, 16, false},
		{"too many", 5, 5, 17, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultMinesConfig()
			cfg.Rows, cfg.Cols, cfg.Mines = tc.rows, tc.cols, tc.mines
			err := validateMines(&cfg)
			if (err != nil) != tc.wantErr {
				t.Errorf("validateMines() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestValidatePong(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*PongConfig)
		wantErr bool
	}{
		{"default", func(*PongConfig) {}, false},
		{"no win score", func(c *PongConfig) { c.WinScore = 0 }, true},
		{"negative serve delay", func(c *PongConfig) { c.ServeDelay = -1 }, true},
		{"ball too fast", func(c *PongConfig) { c.BallSpeed = 2.5 }, true},
		{"still paddle", func(c *PongConfig) { c.PaddleSpeed = 0 }, true},
		{"skill above max", func(c *PongConfig) { c.CPUSkill = 0.9 }, true},
		{"perfect cpu", func(c *PongConfig) { c.CPUSkill, c.CPUMaxSkill = 1, 1 }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultPongConfig()
			tc.mutate(&cfg)
			err := validatePong(&cfg)
			if (err != nil) != tc.wantErr {
				t.Errorf("validatePong() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestLocate(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if got := Locate("snake", ""); got != "" {
		t.Errorf("Locate() with no files = %q, expected empty", got)
	}
	if got := Locate("snake", "/tmp/custom.yaml"); got != "/tmp/custom.yaml" {
		t.Errorf("Locate() with custom path = %q", got)
	}

	path := filepath.Join(home, ".arcade", "configs", "snake.yaml")
	writeFile(t, path, "food_points: 2\n")
	if got := Locate("snake", ""); got != path {
		t.Errorf("Locate() = %q, expected %q", got, path)
	}
}

func TestWatchSeesWritesAndRenames(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "coins.yaml")
	writeFile(t, path, "movement:\n  move_ticks: 4\n")

	changes := make(chan struct{}, 64)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func() {
			select {
			case changes <- struct{}{}:
			default:
			}
		})
	}()

	// Repeat each save until it is seen; the watcher may not be armed yet.
	waitFor := func(what string, save func()) {
		t.Helper()
		deadline := time.After(3 * time.Second)
		for {
			save()
			select {
			case <-changes:
				time.Sleep(50 * time.Millisecond)
				for len(changes) > 0 {
					<-changes
				}
				return
			case <-time.After(100 * time.Millisecond):
			case <-deadline:
				t.Fatalf("onChange not called after %s", what)
			}
		}
	}

	waitFor("write", func() {
		writeFile(t, path, "movement:\n  move_ticks: 5\n")
	})

	waitFor("rename-save", func() {
		tmp := filepath.Join(dir, ".coins.yaml.swp")
		writeFile(t, tmp, "movement:\n  move_ticks: 6\n")
		if err := os.Rename(tmp, path); err != nil {
			t.Fatalf("Rename() failed: %v", err)
		}
	})

	// Unrelated files in the same directory are ignored.
	writeFile(t, filepath.Join(dir, "snake.yaml"), "levels: []\n")
	select {
	case <-changes:
		t.Error("onChange called for a different file")
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch() = %v after cancel, expected nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Watch() did not return after cancel")
	}
}
