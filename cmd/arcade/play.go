package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/grid-arcade/internal/config"
	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/platform/tui"
	"github.com/vovakirdan/grid-arcade/internal/platform/window"
	"github.com/vovakirdan/grid-arcade/internal/registry"
	"github.com/vovakirdan/grid-arcade/internal/storage"
)

var (
	flagGameConfig string
	flagDifficulty string
	flagWindow     bool
	flagWatch      bool
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Default controls (change them in arcade.yaml):
  W/A/S/D, arrows  - Move
  Space            - Action A (reveal, right paddle up in pong_versus)
  F                - Action B (flag, right paddle down in pong_versus)
  Esc              - Pause
  R                - Restart
  Q/Ctrl+C         - Quit
  Ctrl+S           - Save a text screenshot (terminal only)

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  arcade play coins
  arcade play coins --difficulty hard
  arcade play mines --game-config ./my-mines.yaml
  arcade play snake --window
  arcade play pong_versus
  arcade play coins --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagGameConfig, "game-config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagWindow, "window", false, "Open a desktop window instead of using the terminal")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload key bindings when arcade.yaml changes")
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := args[0]

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'arcade list' to see available games", gameID)
	}

	preset, ok := config.ParsePreset(flagDifficulty)
	if !ok {
		return fmt.Errorf("unknown difficulty %q, use easy, normal, hard or fixed", flagDifficulty)
	}

	game, err := registry.Create(gameID, registry.Env{
		ConfigPath: flagGameConfig,
		Difficulty: preset,
		Controls:   arcadeCfg.Controls,
	})
	if err != nil {
		return err
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		log.Warn("could not open scores database, scores will not be saved", "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if flagWindow {
		w := window.New(game, store, cfg, window.Options{
			Display:  arcadeCfg.Display,
			Controls: arcadeCfg.Controls,
			Player:   playerName(),
		})
		if flagWatch {
			watchControls(ctx, w.SetControls)
		}
		return w.Run()
	}

	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}

	p := tui.NewProgram(game, store, cfg, tui.Options{
		Player:   playerName(),
		Controls: arcadeCfg.Controls,
	})
	if flagWatch {
		watchControls(ctx, func(c config.Controls) {
			p.Send(tui.ControlsMsg{Controls: c})
		})
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// watchControls reloads arcade.yaml on change and hands the new controls to
// apply. It stops when ctx is cancelled.
func watchControls(ctx context.Context, apply func(config.Controls)) {
	path := config.Locate("arcade", flagConfig)
	if path == "" {
		log.Warn("--watch ignored, no arcade.yaml on disk", "searched", config.UserConfigDir())
		return
	}

	go func() {
		err := config.Watch(ctx, path, func() {
			cfg, err := config.LoadArcade(path)
			if err != nil {
				log.Warn("keeping previous controls", "path", path, "error", err)
				return
			}
			apply(cfg.Controls)
		})
		if err != nil {
			log.Error("config watch stopped", "path", path, "error", err)
		}
	}()
}
