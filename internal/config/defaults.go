package config

import (
	_ "embed"
)

//go:embed defaults/arcade.yaml
var defaultArcadeYAML []byte

//go:embed defaults/coins.yaml
var defaultCoinsYAML []byte

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

//go:embed defaults/mines.yaml
var defaultMinesYAML []byte

//go:embed defaults/pong.yaml
var defaultPongYAML []byte

// DefaultChaseMaze is the built-in Coin Chase level.
// '#' = wall, 'P' = player spawn, 'G' = pursuer spawn.
var DefaultChaseMaze = []string{
	"####################",
	"#P.......#.........#",
	"#.#####..#..###....#",
	"#.....#.....#......#",
	"###.#.###.###.###..#",
	"#...#.....#....#...#",
	"#.#######.#.###.#..#",
	"#.......#.#.....#..#",
	"#.###.#.#.#####.#..#",
	"#...#.#.#.....#.#..#",
	"#.#.#.#.###.#.#.#..#",
	"#.#...#.....#...#..#",
	"#.#####.#####.###..#",
	"#........G.........#",
	"####################",
}

// DefaultArcadeConfig returns the built-in shared configuration.
func DefaultArcadeConfig() Arcade {
	return Arcade{
		Display: Display{
			Width:  800,
			Height: 600,
			Tile:   40,
		},
		Controls: DefaultControls(),
	}
}

// DefaultControls returns the built-in key bindings.
func DefaultControls() Controls {
	return Controls{
		Up:      "w",
		Down:    "s",
		Left:    "a",
		Right:   "d",
		ActionA: "space",
		ActionB: "f",
		Pause:   "esc",
		Restart: "r",
		Quit:    "q",
	}
}

// DefaultCoinsConfig returns the default Coin Chase configuration.
func DefaultCoinsConfig() CoinsConfig {
	return CoinsConfig{
		Movement: CoinsMovement{
			PlayerMoveTicks:   7,
			PursuerMoveTicks:  11,
			PursuerStartDelay: 60,
		},
		Scoring: CoinsScoring{
			CoinPoints:  10,
			DangerRange: 3,
		},
		Difficulty: DifficultyConfig{
			Enabled: true,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 1200,
			},
			Scaling: ScalingConfig{
				IntervalReduction: 5,
			},
		},
	}
}

// DefaultSnakeConfig returns the default Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		FoodPoints: 1,
		Difficulty: DifficultyConfig{
			Enabled: true,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 60,
			},
			Scaling: ScalingConfig{
				IntervalReduction: 2,
			},
		},
	}
}

// DefaultMinesConfig returns the default Minesweeper configuration.
func DefaultMinesConfig() MinesConfig {
	return MinesConfig{
		Rows:       12,
		Cols:       16,
		Mines:      30,
		CellPoints: 1,
		Difficulty: DifficultyConfig{
			Progression: ProgressionConfig{
				Type: "none",
			},
			Scaling: ScalingConfig{
				CountMultiplier: 0.6,
			},
		},
	}
}

// DefaultPongConfig returns the default Pong configuration.
func DefaultPongConfig() PongConfig {
	return PongConfig{
		WinScore:    5,
		ServeDelay:  60,
		BallSpeed:   0.5,
		PaddleSpeed: 1,
		CPUSkill:    0.6,
		CPUMaxSkill: 0.85,
		Difficulty: DifficultyConfig{
			Enabled: true,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 7200,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a config name
// ("arcade" or a game ID), or nil if there is none.
func GetDefaultYAML(name string) []byte {
	switch name {
	case "arcade":
		return defaultArcadeYAML
	case "coins":
		return defaultCoinsYAML
	case "snake":
		return defaultSnakeYAML
	case "mines":
		return defaultMinesYAML
	case "pong":
		return defaultPongYAML
	default:
		return nil
	}
}
