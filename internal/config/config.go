// Package config provides YAML-based configuration for the arcade: the shared
// display and key-binding settings read by every game, per-game tuning files,
// and difficulty management.
package config

// Arcade is the configuration shared by all games.
type Arcade struct {
	Display  Display  `yaml:"display"`
	Controls Controls `yaml:"controls"`
}

// Display defines window geometry for the graphical frontend.
type Display struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	Tile       int  `yaml:"tile"` // Pixel size of one grid cell
}

// Controls maps each logical input to a key name such as "w", "space" or "esc".
type Controls struct {
	Up      string `yaml:"up"`
	Down    string `yaml:"down"`
	Left    string `yaml:"left"`
	Right   string `yaml:"right"`
	ActionA string `yaml:"action_a"`
	ActionB string `yaml:"action_b"`
	Pause   string `yaml:"pause"`
	Restart string `yaml:"restart"`
	Quit    string `yaml:"quit"`
}

// CoinsConfig contains all configuration for the Coin Chase game.
type CoinsConfig struct {
	Maze       []string         `yaml:"maze"` // Empty means the built-in maze
	Movement   CoinsMovement    `yaml:"movement"`
	Scoring    CoinsScoring     `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// CoinsMovement defines how often each entity may move, in ticks.
type CoinsMovement struct {
	PlayerMoveTicks   int `yaml:"player_move_ticks"`
	PursuerMoveTicks  int `yaml:"pursuer_move_ticks"`
	PursuerStartDelay int `yaml:"pursuer_start_delay"`
}

// CoinsScoring defines point values for Coin Chase.
type CoinsScoring struct {
	CoinPoints  int `yaml:"coin_points"`
	DangerRange int `yaml:"danger_range"` // HUD warns when the pursuer is this close
}

// SnakeConfig contains all configuration for the Snake game.
type SnakeConfig struct {
	MoveEveryTicks int              `yaml:"move_every_ticks"` // Overrides level speed when > 0
	FoodPoints     int              `yaml:"food_points"`
	Difficulty     DifficultyConfig `yaml:"difficulty"`
}

// MinesConfig contains all configuration for Minesweeper.
type MinesConfig struct {
	Rows       int              `yaml:"rows"`
	Cols       int              `yaml:"cols"`
	Mines      int              `yaml:"mines"`
	CellPoints int              `yaml:"cell_points"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PongConfig contains all configuration for Pong.
type PongConfig struct {
	WinScore    int              `yaml:"win_score"`
	ServeDelay  int              `yaml:"serve_delay"`  // Ticks the ball waits at centre before each serve
	BallSpeed   float64          `yaml:"ball_speed"`   // Cells per tick
	PaddleSpeed float64          `yaml:"paddle_speed"` // Cells per tick
	CPUSkill    float64          `yaml:"cpu_skill"`    // Fraction of paddle speed the CPU tracks with at level 0
	CPUMaxSkill float64          `yaml:"cpu_max_skill"`
	Difficulty  DifficultyConfig `yaml:"difficulty"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes at level 1.0.
type ScalingConfig struct {
	IntervalReduction int     `yaml:"interval_reduction"` // Ticks removed from move intervals
	CountMultiplier   float64 `yaml:"count_multiplier"`   // Fraction added to counts (e.g. mines)
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means "keep config".
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// Apply modifies a difficulty config for a preset. An empty preset is a no-op.
func (d *DifficultyConfig) Apply(preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		d.Enabled = false
	default:
		d.Enabled = true
		d.InitialLevel = InitialLevelForPreset(preset)
	}
}
