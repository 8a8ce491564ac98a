// Package window runs arcade games in a desktop window. It draws the same
// Screen buffer the terminal frontend uses, one glyph cell at a time, so
// games need no window-specific code.
package window

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/grid-arcade/internal/config"
	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/platform/input"
	"github.com/vovakirdan/grid-arcade/internal/registry"
	"github.com/vovakirdan/grid-arcade/internal/storage"
)

var glyphFace = text.NewGoXFace(basicfont.Face7x13)

const (
	glyphW = 7
	glyphH = 13
)

// Options configures a window session.
type Options struct {
	Display  config.Display
	Controls config.Controls
	Player   string
	Logger   *log.Logger
}

// Window adapts a registry.Game to ebiten.Game. A character cell is half a
// display tile wide and one tile tall, the proportions of a terminal cell.
type Window struct {
	game    registry.Game
	store   *storage.Store
	cfg     core.RuntimeConfig
	opts    Options
	logger  *log.Logger
	screen  *core.Screen
	cellW   int
	cellH   int
	scale   float64
	pressed []ebiten.Key

	mu       sync.Mutex
	bindings map[string]core.Action

	state      core.GameState
	scoreSaved bool
	newBest    bool
}

// New creates a window for game. The grid size comes from cfg.
func New(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) *Window {
	def := core.DefaultConfig()
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		cfg.ScreenW, cfg.ScreenH = def.ScreenW, def.ScreenH
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = def.TickRate
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Display.Tile <= 0 {
		opts.Display = config.DefaultArcadeConfig().Display
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	w := &Window{
		game:   game,
		store:  store,
		cfg:    cfg,
		opts:   opts,
		logger: logger,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		cellW:  max(glyphW, opts.Display.Tile/2),
		cellH:  max(glyphH, opts.Display.Tile),
	}
	w.scale = float64(max(1, min(w.cellW/glyphW, w.cellH/glyphH)))
	w.SetControls(opts.Controls)
	return w
}

// SetControls swaps the key bindings. Safe to call from another goroutine.
func (w *Window) SetControls(c config.Controls) {
	b := c.Bindings()
	w.mu.Lock()
	w.bindings = b
	w.mu.Unlock()
}

// Update advances the game by one tick.
func (w *Window) Update() error {
	var held []input.Key
	held, w.pressed = heldKeys(w.pressed)

	w.mu.Lock()
	frame := input.Frame(w.bindings, held)
	w.mu.Unlock()

	if frame.Has(core.ActionQuit) {
		return ebiten.Termination
	}

	wasOver := w.state.Over()
	w.state = w.game.Step(frame).State
	if wasOver && !w.state.Over() {
		w.scoreSaved = false
		w.newBest = false
	}
	if w.state.Over() && !w.scoreSaved {
		w.saveScore()
		w.scoreSaved = true
	}
	return nil
}

func (w *Window) saveScore() {
	w.logger.Info("game over", "game", w.game.ID(), "status", w.state.Status, "score", w.state.Score)
	if w.store == nil || w.state.Score <= 0 {
		return
	}
	best, err := w.store.Record(w.game.ID(), w.opts.Player, w.state.Score)
	if err != nil {
		w.logger.Error("could not save score", "game", w.game.ID(), "error", err)
		return
	}
	if best {
		w.newBest = true
		w.logger.Info("new high score", "game", w.game.ID(), "score", w.state.Score)
	}
}

// Draw paints the game's screen buffer.
func (w *Window) Draw(dst *ebiten.Image) {
	dst.Fill(background)

	w.screen.Clear()
	w.game.Render(w.screen)
	if w.newBest && w.state.Over() {
		msg := fmt.Sprintf(" New high score: %d! ", w.state.Score)
		w.screen.DrawTextColor((w.screen.Width()-len(msg))/2, w.screen.Height()-1, msg, core.ColorYellow)
	}

	for y := range w.screen.Height() {
		for x := range w.screen.Width() {
			c := w.screen.GetCell(x, y)
			w.drawCell(dst, x, y, c)
		}
	}
}

func (w *Window) drawCell(dst *ebiten.Image, x, y int, c core.Cell) {
	px, py := float32(x*w.cellW), float32(y*w.cellH)
	clr := rgba(c.Color)

	switch c.Rune {
	case ' ', 0:
		return
	case '█', '#':
		vector.DrawFilledRect(dst, px, py, float32(w.cellW), float32(w.cellH), clr, false)
	case '·':
		r := float32(min(w.cellW, w.cellH)) / 5
		vector.DrawFilledCircle(dst, px+float32(w.cellW)/2, py+float32(w.cellH)/2, r, clr, true)
	case '●':
		r := float32(min(w.cellW, w.cellH)) / 2
		vector.DrawFilledCircle(dst, px+float32(w.cellW)/2, py+float32(w.cellH)/2, r, clr, true)
	case '│':
		lw := max(float32(w.cellW)/6, 1)
		vector.DrawFilledRect(dst, px+(float32(w.cellW)-lw)/2, py, lw, float32(w.cellH), clr, false)
	default:
		op := &text.DrawOptions{}
		op.GeoM.Scale(w.scale, w.scale)
		gx := float64(w.cellW) - glyphW*w.scale
		gy := float64(w.cellH) - glyphH*w.scale
		op.GeoM.Translate(float64(px)+gx/2, float64(py)+gy/2)
		op.ColorScale.ScaleWithColor(clr)
		text.Draw(dst, string(c.Rune), glyphFace, op)
	}
}

// Layout returns the logical size of the grid; ebiten scales it to the window.
func (w *Window) Layout(_, _ int) (int, int) {
	return w.cfg.ScreenW * w.cellW, w.cfg.ScreenH * w.cellH
}

// Run opens the window and blocks until it is closed or the quit key is pressed.
func (w *Window) Run() error {
	ebiten.SetWindowSize(w.opts.Display.Width, w.opts.Display.Height)
	ebiten.SetWindowTitle(fmt.Sprintf("Arcade - %s", w.game.Title()))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(w.opts.Display.Fullscreen)
	ebiten.SetTPS(w.cfg.TickRate)

	w.game.Reset(w.cfg)
	w.logger.Debug("window started", "game", w.game.ID(), "grid", fmt.Sprintf("%dx%d", w.cfg.ScreenW, w.cfg.ScreenH))

	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}

// Run is a shortcut for New followed by Window.Run.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) error {
	return New(game, store, cfg, opts).Run()
}
