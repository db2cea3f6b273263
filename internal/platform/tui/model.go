package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sumstack/internal/core"
	"github.com/vovakirdan/sumstack/internal/registry"
	"github.com/vovakirdan/sumstack/internal/storage"
)

// resizer is implemented by games that can follow the window without
// restarting the run.
type resizer interface {
	Resize(w, h int)
}

// stateDumper is implemented by games that can describe their state for
// screenshots.
type stateDumper interface {
	DumpState() ([]byte, error)
}

// GameModel runs one game inside Bubble Tea: it owns the tick loop, maps
// keys and mouse to actions and saves each finished run once.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	player     string
	logger     *log.Logger
	inputFrame core.InputFrame
	keyMapper  *KeyMapper
	help       help.Model
	gameState  core.GameState
	liveTicks  int // Ticks spent unpaused in the current run
	fixedSeed  bool
	standalone bool // No menu to go back to; Back quits instead
	quitting   bool
	backToMenu bool
	scoreSaved bool
}

// NewGameModel creates a model for the given game.
// A zero seed means every run gets a fresh time-based seed.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, player string, logger *log.Logger) GameModel {
	fixed := cfg.Seed != 0
	if !fixed {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if player == "" {
		player = storage.DefaultPlayer
	}

	h := help.New()
	h.Width = cfg.ScreenW

	cfg.ScreenH = gameHeight(cfg.ScreenH)

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		player:     player,
		logger:     logger,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		help:       h,
		fixedSeed:  fixed,
	}
}

// gameHeight leaves the last terminal line for the help bar.
func gameHeight(h int) int {
	return max(h-1, 1)
}

// Init starts the run and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Info("run started", "game", m.game.ID(), "player", m.player)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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
		// Leaving drops the run, so only allow it when nothing is moving
		if m.gameState.GameOver || m.gameState.Paused {
			m.logger.Info("back to menu", "game", m.game.ID(), "score", m.gameState.Score)
			m.backToMenu = true
			if m.standalone {
				m.quitting = true
				return m, tea.Quit
			}
		}
		return m, nil

	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize follows the terminal size without restarting the run.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = gameHeight(msg.Height)
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)
	m.help.Width = msg.Width

	if r, ok := m.game.(resizer); ok {
		r.Resize(m.config.ScreenW, m.config.ScreenH)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	if m.inputFrame.Has(core.ActionRestart) {
		m.restart()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	if !m.gameState.Paused && !m.gameState.GameOver {
		m.liveTicks++
	}

	if m.gameState.GameOver && !m.scoreSaved {
		m.saveRun()
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// restart throws the current run away and starts a new one.
func (m *GameModel) restart() {
	if !m.fixedSeed {
		m.config.Seed = time.Now().UnixNano()
	}
	m.logger.Info("run restarted", "game", m.game.ID(), "abandoned_score", m.gameState.Score)
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.liveTicks = 0
	m.scoreSaved = false
	m.inputFrame.Clear()
}

// saveRun records the finished run on the leaderboard. Empty runs are skipped.
func (m *GameModel) saveRun() {
	stats := m.game.Stats()
	m.logger.Info("run finished", "game", m.game.ID(), "player", m.player,
		"score", stats.Score, "matches", stats.Matches, "rows", stats.RowsAdded)

	if m.store == nil || stats.Score <= 0 {
		return
	}
	_, err := m.store.SaveRun(storage.Run{
		GameID:       m.game.ID(),
		Player:       m.player,
		Score:        stats.Score,
		Matches:      stats.Matches,
		TilesCleared: stats.TilesCleared,
		RowsAdded:    stats.RowsAdded,
		Duration:     time.Duration(m.liveTicks) * time.Second / time.Duration(m.config.TickRate),
	})
	if err != nil {
		m.logger.Error("could not save run", "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".sumstack", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	base := filepath.Join(dir, fmt.Sprintf("%s_%s", m.game.ID(), timestamp))
	if err := os.WriteFile(base+".txt", []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "err", err)
		return
	}

	if d, ok := m.game.(stateDumper); ok {
		state, err := d.DumpState()
		if err == nil {
			err = os.WriteFile(base+".yaml", state, 0o600)
		}
		if err != nil {
			m.logger.Warn("could not save game state", "err", err)
		}
	}
	m.logger.Info("screenshot saved", "path", base+".txt")
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return renderWithFooter(m.screen, m.help.View(m.keyMapper.Keys()))
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last observed game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Run plays a single game until the player quits.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, player string, logger *log.Logger) error {
	model := NewGameModel(game, store, cfg, player, logger)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
