// Package sumstack drives the engine from the platform tick loop: it owns
// the cursor, the Timed-mode countdown and the mode-specific row injection.
package sumstack

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sumstack/internal/core"
	"github.com/vovakirdan/sumstack/internal/engine"
	"github.com/vovakirdan/sumstack/internal/registry"
)

// Theme selects how tile values are colored.
type Theme string

const (
	ThemeColor Theme = "color"
	ThemeMono  Theme = "mono"
)

// Options are package-wide defaults applied to every registered game.
type Options struct {
	Logger *log.Logger
	Theme  Theme
}

var (
	defaultsMu sync.RWMutex
	defaults   = Options{
		Logger: log.New(io.Discard),
		Theme:  ThemeColor,
	}
)

// Configure sets the logger and theme used by games created through the
// registry. Zero fields keep the current value.
func Configure(opts Options) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()

	if opts.Logger != nil {
		defaults.Logger = opts.Logger
	}
	if opts.Theme != "" {
		defaults.Theme = opts.Theme
	}
}

func currentOptions() Options {
	defaultsMu.RLock()
	defer defaultsMu.RUnlock()
	return defaults
}

func init() {
	registry.Register(string(engine.ModeClassic), "A new row arrives after every match", func() registry.Game {
		return New(engine.ModeClassic, currentOptions())
	})
	registry.Register(string(engine.ModeTimed), "A new row arrives every 10 seconds", func() registry.Game {
		return New(engine.ModeTimed, currentOptions())
	})
}

// messageSeconds is how long feedback stays on screen.
const messageSeconds = 1

// Game is one mode of SumStack wired to the platform.
type Game struct {
	mode  engine.Mode
	log   *log.Logger
	theme Theme

	eng       *engine.Engine
	session   engine.Session
	cursor    Cursor
	countdown *Countdown
	tick      uint64
	tickRate  int

	message      string
	messageColor core.Color
	messageTicks int

	screenW int
	screenH int
}

// New creates a game for the given mode. Call Reset before stepping it.
func New(mode engine.Mode, opts Options) *Game {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Theme == "" {
		opts.Theme = ThemeColor
	}
	return &Game{
		mode:  mode,
		log:   opts.Logger.With("mode", string(mode)),
		theme: opts.Theme,
	}
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	return "SumStack " + g.mode.Title()
}

// Reset starts a new run, dropping the old session and its countdown.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if g.countdown != nil {
		g.countdown.Stop()
	}

	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	g.eng = engine.New(cfg.Seed)
	g.session = g.eng.Restart(g.mode)
	g.cursor = startCursor()
	g.countdown = NewCountdown(g.tickRate)
	g.tick = 0
	g.clearMessage()
	g.syncCountdown()

	g.log.Debug("run started", "seed", cfg.Seed, "target", g.session.TargetSum)
}

// Resize updates the screen dimensions without touching the run.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.decayMessage()

	// Nothing moves, the clock included, until the window is big enough
	if g.tooSmall() {
		return core.StepResult{State: g.State(), Message: g.message}
	}

	if in.Has(core.ActionPause) && !g.session.Over {
		g.session = g.eng.SetPaused(g.session, !g.session.Paused)
		g.syncCountdown()
	}

	if g.session.Active() {
		g.cursor = g.cursor.Move(in)
		lay := newLayout(g.screenW, g.screenH)
		for _, p := range in.Clicks {
			if row, col, ok := lay.cellAt(p.X, p.Y); ok {
				g.cursor = Cursor{Row: row, Col: col}
				g.toggleAtCursor()
			}
		}
		if in.Has(core.ActionSelect) {
			g.toggleAtCursor()
		}
	}

	if g.countdown.Tick() {
		g.advanceSecond()
	}

	return core.StepResult{State: g.State(), Message: g.message}
}

// toggleAtCursor toggles the tile under the cursor. Empty cells are ignored.
func (g *Game) toggleAtCursor() {
	if !g.session.Active() {
		return
	}
	tile, ok := g.session.Board.At(g.cursor.Row, g.cursor.Col)
	if !ok {
		return
	}

	next, res, err := g.eng.ToggleSelection(g.session, tile.ID)
	if err != nil {
		g.log.Error("toggle failed", "err", err)
		return
	}
	g.session = next

	switch res.Kind {
	case engine.ResultMatch:
		g.log.Debug("match", "sum", res.Sum, "tiles", len(res.Cleared), "points", res.Points, "score", g.session.Score)
		g.setMessage(fmt.Sprintf("Match! +%d", res.Points), core.ColorBrightGreen)
		if g.mode == engine.ModeClassic {
			g.injectRow("match")
		} else {
			g.countdown.Restart()
		}
	case engine.ResultBust:
		g.log.Debug("bust", "sum", res.Sum, "target", g.session.TargetSum)
		g.setMessage(fmt.Sprintf("Bust! %d > %d", res.Sum, g.session.TargetSum), core.ColorBrightRed)
	}
}

// advanceSecond runs one second of the Timed-mode clock.
func (g *Game) advanceSecond() {
	next, timedOut, err := g.eng.AdvanceTime(g.session)
	if err != nil {
		if errors.Is(err, engine.ErrNotTimed) {
			g.countdown.Stop()
			return
		}
		g.log.Error("advance time failed", "err", err)
		return
	}
	g.session = next
	if timedOut {
		g.log.Debug("timeout")
		g.setMessage("Time's up!", core.ColorOrange)
		g.injectRow("timeout")
	}
}

// injectRow adds a row and keeps the countdown in step with the result.
func (g *Game) injectRow(reason string) {
	g.session = g.eng.InjectRow(g.session)
	if g.session.Over {
		g.log.Info("game over", "score", g.session.Score, "matches", g.session.Matches, "rows", g.session.RowsInjected)
		g.setMessage("Stack overflow!", core.ColorBrightRed)
		g.syncCountdown()
		return
	}
	g.log.Debug("row injected", "reason", reason, "rows", g.session.RowsInjected, "highest", g.session.Board.HighestRow())
	if g.countdown.Running() {
		g.countdown.Restart()
	}
}

// syncCountdown runs the countdown exactly while a Timed run is live.
func (g *Game) syncCountdown() {
	if g.mode == engine.ModeTimed && g.session.Active() {
		g.countdown.Start()
		return
	}
	g.countdown.Stop()
}

func (g *Game) setMessage(msg string, c core.Color) {
	g.message = msg
	g.messageColor = c
	g.messageTicks = messageSeconds * g.tickRate
}

func (g *Game) clearMessage() {
	g.message = ""
	g.messageTicks = 0
}

func (g *Game) decayMessage() {
	if g.messageTicks == 0 {
		return
	}
	g.messageTicks--
	if g.messageTicks == 0 && !g.session.Over {
		g.clearMessage()
	}
}

func (g *Game) tooSmall() bool {
	return g.screenW < minWidth || g.screenH < minHeight
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.session.Score,
		GameOver: g.session.Over,
		Paused:   g.session.Paused || g.tooSmall(),
	}
}

// Stats returns the counters of the current run.
func (g *Game) Stats() core.RunStats {
	return core.RunStats{
		Score:        g.session.Score,
		Matches:      g.session.Matches,
		TilesCleared: g.session.TilesCleared,
		RowsAdded:    g.session.RowsInjected,
	}
}

// Session returns the current engine session.
func (g *Game) Session() engine.Session {
	return g.session
}

// Cursor returns the cursor position.
func (g *Game) Cursor() Cursor {
	return g.cursor
}

// CountdownRunning reports whether the Timed-mode clock is ticking.
func (g *Game) CountdownRunning() bool {
	return g.countdown != nil && g.countdown.Running()
}
