package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/grid-arcade/internal/config"
	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/registry"
	"github.com/vovakirdan/grid-arcade/internal/storage"
)

// TickMsg advances the running game by one simulation step.
type TickMsg struct {
	At time.Time
}

// tick schedules the next TickMsg at the given rate per second.
func tick(rate int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(rate), func(t time.Time) tea.Msg {
		return TickMsg{At: t}
	})
}

// Options controls how a game session behaves inside the terminal.
type Options struct {
	Player    string          // Name stored with scores, "" for anonymous
	Controls  config.Controls // Key bindings, zero value means defaults
	Logger    *log.Logger     // nil means log.Default()
	AllowBack bool            // "b" on a finished or paused game returns to the menu
}

// Model is the Bubble Tea model for running arcade games.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	opts       Options
	logger     *log.Logger
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
	newBest    bool // Whether the saved score is the game's new high score
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		opts:       opts,
		logger:     logger,
		keyMapper:  NewKeyMapper(opts.Controls),
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Debug("game started", "game", m.game.ID(), "seed", m.config.Seed, "player", m.opts.Player)

	return tick(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case ControlsMsg:
		m.keyMapper.SetControls(msg.Controls)
		m.logger.Info("key bindings reloaded", "game", m.game.ID())
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		if m.opts.AllowBack && (m.gameState.Over() || m.gameState.Paused) {
			m.backToMenu = true
		}
		return m, nil
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events. Games that can re-centre
// themselves keep their state; the rest restart at the new size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}
	if !m.gameState.Over() {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	wasOver := m.gameState.Over()

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// A restart handled by the game itself re-arms score saving.
	if wasOver && !m.gameState.Over() {
		m.scoreSaved = false
		m.newBest = false
	}

	if m.gameState.Over() && !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tick(m.config.TickRate)
}

// saveScore records a finished game. Zero scores are not stored.
func (m *Model) saveScore() {
	m.logger.Info("game over", "game", m.game.ID(), "status", m.gameState.Status, "score", m.gameState.Score)
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	best, err := m.store.Record(m.game.ID(), m.opts.Player, m.gameState.Score)
	if err != nil {
		m.logger.Error("could not save score", "game", m.game.ID(), "error", err)
		return
	}
	if best {
		m.newBest = true
		m.logger.Info("new high score", "game", m.game.ID(), "score", m.gameState.Score)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	if m.newBest && m.gameState.Over() {
		drawNewBest(m.screen, m.gameState.Score)
	}
	return RenderScreen(m.screen)
}

// drawNewBest announces a new high score on the bottom row.
func drawNewBest(s *core.Screen, score int) {
	y := s.Height() - 1
	if y < 0 {
		return
	}
	text := fmt.Sprintf(" New high score: %d! ", score)
	s.DrawTextColor((s.Width()-len(text))/2, y, text, core.ColorYellow)
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// NewBest reports whether the finished game set a new high score.
func (m Model) NewBest() bool {
	return m.newBest && m.gameState.Over()
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// NewProgram wraps a game model in a Bubble Tea program. Callers that
// reload bindings at runtime send ControlsMsg through the returned program.
func NewProgram(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) *tea.Program {
	return tea.NewProgram(
		NewModel(game, store, cfg, opts),
		tea.WithAltScreen(),
	)
}

// Run starts the Bubble Tea program for a single game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) error {
	_, err := NewProgram(game, store, cfg, opts).Run()
	return err
}
