package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/grid-arcade/internal/maze"
)

// ErrInvalid is wrapped by validation failures.
var ErrInvalid = errors.New("config: invalid value")

// LoadArcade loads the shared arcade configuration.
// Search order: customPath -> ~/.arcade/configs/arcade.yaml -> ./configs/arcade.yaml -> embedded default
func LoadArcade(customPath string) (Arcade, error) {
	return load("arcade", customPath, DefaultArcadeConfig, validateArcade)
}

// LoadCoins loads Coin Chase configuration.
// Search order: customPath -> ~/.arcade/configs/coins.yaml -> ./configs/coins.yaml -> embedded default
func LoadCoins(customPath string) (CoinsConfig, error) {
	return load("coins", customPath, DefaultCoinsConfig, validateCoins)
}

// LoadSnake loads Snake configuration.
// Search order: customPath -> ~/.arcade/configs/snake.yaml -> ./configs/snake.yaml -> embedded default
func LoadSnake(customPath string) (SnakeConfig, error) {
	return load("snake", customPath, DefaultSnakeConfig, validateSnake)
}

// LoadMines loads Minesweeper configuration.
// Search order: customPath -> ~/.arcade/configs/mines.yaml -> ./configs/mines.yaml -> embedded default
func LoadMines(customPath string) (MinesConfig, error) {
	return load("mines", customPath, DefaultMinesConfig, validateMines)
}

// LoadPong loads Pong configuration.
// Search order: customPath -> ~/.arcade/configs/pong.yaml -> ./configs/pong.yaml -> embedded default
func LoadPong(customPath string) (PongConfig, error) {
	return load("pong", customPath, DefaultPongConfig, validatePong)
}

// UserConfigDir returns ~/.arcade/configs, or empty if home is unavailable.
func UserConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs")
}

// candidatePaths lists the non-custom locations searched for name.yaml.
func candidatePaths(name string) []string {
	var paths []string
	if dir := UserConfigDir(); dir != "" {
		paths = append(paths, filepath.Join(dir, name+".yaml"))
	}
	return append(paths, filepath.Join("configs", name+".yaml"))
}

// load walks the search order for name.yaml. A custom path must succeed;
// every other source is best-effort and falls through on failure.
func load[T any](name, customPath string, fallback func() T, validate func(*T) error) (T, error) {
	if customPath != "" {
		cfg, err := decodeFile(customPath, fallback, validate)
		if err != nil {
			return fallback(), err
		}
		log.Debug("config loaded", "name", name, "source", customPath)
		return cfg, nil
	}

	for _, path := range candidatePaths(name) {
		cfg, err := decodeFile(path, fallback, validate)
		if err == nil {
			log.Debug("config loaded", "name", name, "source", path)
			return cfg, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn("ignoring config file", "name", name, "path", path, "error", err)
		}
	}

	cfg, err := decode(GetDefaultYAML(name), fallback, validate)
	if err != nil {
		log.Warn("embedded config unusable, using built-in defaults", "name", name, "error", err)
		return fallback(), nil
	}
	return cfg, nil
}

func decodeFile[T any](path string, fallback func() T, validate func(*T) error) (T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fallback(), fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := decode(data, fallback, validate)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// decode unmarshals data over the built-in defaults, so keys missing from
// the file keep their default values.
func decode[T any](data []byte, fallback func() T, validate func(*T) error) (T, error) {
	cfg := fallback()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fallback(), err
	}
	if validate != nil {
		if err := validate(&cfg); err != nil {
			return fallback(), err
		}
	}
	return cfg, nil
}

func validateArcade(cfg *Arcade) error {
	def := DefaultArcadeConfig()
	if cfg.Display.Width <= 0 || cfg.Display.Height <= 0 {
		cfg.Display.Width, cfg.Display.Height = def.Display.Width, def.Display.Height
	}
	if cfg.Display.Tile <= 0 {
		cfg.Display.Tile = def.Display.Tile
	}
	cfg.Controls = cfg.Controls.withDefaults()
	return nil
}

func validateCoins(cfg *CoinsConfig) error {
	if cfg.Movement.PlayerMoveTicks < 1 || cfg.Movement.PursuerMoveTicks < 1 {
		return fmt.Errorf("move ticks must be at least 1: %w", ErrInvalid)
	}
	if cfg.Movement.PursuerStartDelay < 0 {
		return fmt.Errorf("pursuer_start_delay must not be negative: %w", ErrInvalid)
	}
	if len(cfg.Maze) == 0 {
		return nil
	}

	g, err := maze.Parse(cfg.Maze)
	if err != nil {
		return fmt.Errorf("maze: %w", err)
	}
	for _, marker := range []rune{'P', 'G'} {
		if n := len(g.Marked(marker)); n != 1 {
			return fmt.Errorf("maze needs exactly one %q, found %d: %w", marker, n, ErrInvalid)
		}
	}
	return nil
}

func validateSnake(cfg *SnakeConfig) error {
	if cfg.MoveEveryTicks < 0 {
		return fmt.Errorf("move_every_ticks must not be negative: %w", ErrInvalid)
	}
	if cfg.FoodPoints < 1 {
		cfg.FoodPoints = 1
	}
	return nil
}

func validateMines(cfg *MinesConfig) error {
	if cfg.Rows < 2 || cfg.Cols < 2 {
		return fmt.Errorf("board must be at least 2x2: %w", ErrInvalid)
	}
	// The first reveal keeps its 3x3 neighbourhood clear.
	if cfg.Mines < 1 || cfg.Mines > cfg.Rows*cfg.Cols-9 {
		return fmt.Errorf("mines must be between 1 and %d: %w", cfg.Rows*cfg.Cols-9, ErrInvalid)
	}
	if cfg.CellPoints < 1 {
		cfg.CellPoints = 1
	}
	return nil
}

func validatePong(cfg *PongConfig) error {
	if cfg.WinScore < 1 {
		return fmt.Errorf("win_score must be at least 1: %w", ErrInvalid)
	}
	if cfg.ServeDelay < 0 {
		return fmt.Errorf("serve_delay must not be negative: %w", ErrInvalid)
	}
	// A ball faster than two cells a tick can pass through a paddle.
	if cfg.BallSpeed <= 0 || cfg.BallSpeed > 2 {
		return fmt.Errorf("ball_speed must be in (0, 2]: %w", ErrInvalid)
	}
	if cfg.PaddleSpeed <= 0 {
		return fmt.Errorf("paddle_speed must be positive: %w", ErrInvalid)
	}
	if cfg.CPUSkill < 0 || cfg.CPUMaxSkill > 1 || cfg.CPUSkill > cfg.CPUMaxSkill {
		return fmt.Errorf("cpu skills must satisfy 0 <= cpu_skill <= cpu_max_skill <= 1: %w", ErrInvalid)
	}
	return nil
}
