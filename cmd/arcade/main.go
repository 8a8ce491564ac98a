// arcade is a grid arcade for the terminal, a desktop window, or SSH.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade scores <game>     - Show, export or import high scores
//	arcade config            - Show where configuration is read from
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.arcade/scores.db)
//	--config <path>      - Shared arcade.yaml (display and controls)
//	--log-file <path>    - Log destination (default: ~/.arcade/arcade.log)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/grid-arcade/internal/config"

	// Import games to register them
	_ "github.com/vovakirdan/grid-arcade/internal/games/coins"
	_ "github.com/vovakirdan/grid-arcade/internal/games/mines"
	_ "github.com/vovakirdan/grid-arcade/internal/games/pong"
	_ "github.com/vovakirdan/grid-arcade/internal/games/snake"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogFile  string
	flagLogLevel string
	flagPlayer   string

	// arcadeCfg is loaded before any subcommand runs.
	arcadeCfg config.Arcade
	logFile   *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Grid Arcade - maze and board games in your terminal",
	Long: `Grid Arcade is a small collection of grid games: Coin Chase, Snake,
Minesweeper and Pong. Play them in the terminal, in a desktop window, or host them
over SSH.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View, export or import high scores
  config   - Show configuration sources

Examples:
  arcade list
  arcade play coins
  arcade play coins --window
  arcade menu
  arcade serve --ssh :2222
  arcade scores coins`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to arcade.yaml (display and controls)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.arcade/arcade.log", "Log file, '-' for stderr")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Name stored with your scores (default: $USER)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// setup configures logging and loads the shared arcade config.
func setup(cmd *cobra.Command, _ []string) error {
	if flagFPS < 1 {
		return fmt.Errorf("--fps must be at least 1, got %d", flagFPS)
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}

	logger, err := newLogger(flagLogFile)
	if err != nil {
		return err
	}
	logger.SetLevel(level)
	log.SetDefault(logger)

	arcadeCfg, err = config.LoadArcade(flagConfig)
	if err != nil {
		return err
	}
	log.Debug("command started", "command", cmd.CommandPath())
	return nil
}

// newLogger writes to a file so log lines never land on the game screen.
func newLogger(path string) (*log.Logger, error) {
	opts := log.Options{ReportTimestamp: true, Prefix: "arcade"}
	if path == "-" {
		return log.NewWithOptions(os.Stderr, opts), nil
	}

	path = expandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logFile = f
	return log.NewWithOptions(f, opts), nil
}

func expandHome(path string) string {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}

// playerName returns the name stored with local scores.
func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}
