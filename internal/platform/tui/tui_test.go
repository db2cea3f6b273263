package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/sumstack/internal/core"
	_ "github.com/vovakirdan/sumstack/internal/games/sumstack" // Register modes
	"github.com/vovakirdan/sumstack/internal/registry"
	"github.com/vovakirdan/sumstack/internal/storage"
)

// fakeGame ends its run after a fixed number of steps.
type fakeGame struct {
	steps    int
	endAfter int
	resets   int
	paused   bool
	last     core.InputFrame
}

func (g *fakeGame) ID() string    { return "classic" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.steps = 0
	g.paused = false
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.last = in.Clone()
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if !g.paused && g.steps < g.endAfter {
		g.steps++
	}
	return core.StepResult{State: g.State()}
}

func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "fake") }

func (g *fakeGame) State() core.GameState {
	return core.GameState{Score: g.steps * 10, GameOver: g.steps >= g.endAfter, Paused: g.paused}
}

func (g *fakeGame) Stats() core.RunStats {
	return core.RunStats{Score: g.steps * 10, Matches: g.steps, TilesCleared: 2 * g.steps, RowsAdded: 1}
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 10, Seed: 1}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// tick feeds one tick to a game model.
func tick(t *testing.T, m GameModel) GameModel {
	t.Helper()
	next, _ := m.Update(TickMsg{})
	gm, ok := next.(GameModel)
	require.True(t, ok)
	return gm
}

func send(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	gm, ok := next.(GameModel)
	require.True(t, ok)
	return gm
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{runeKey("w"), core.ActionUp, false},
		{tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{runeKey("a"), core.ActionLeft, false},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{tea.KeyMsg{Type: tea.KeySpace}, core.ActionSelect, false},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionSelect, false},
		{runeKey("p"), core.ActionPause, false},
		{runeKey("r"), core.ActionRestart, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{runeKey("q"), core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{runeKey("z"), core.ActionNone, false},
	}

	for _, tt := range tests {
		action, quit := km.MapKey(tt.msg)
		assert.Equal(t, tt.action, action, "key %q", tt.msg.String())
		assert.Equal(t, tt.quit, quit, "key %q", tt.msg.String())
	}
}

func TestMapMouse(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	assert.False(t, km.MapMouseToFrame(tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionMotion}, &frame))
	assert.False(t, km.MapMouseToFrame(tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonRight}, &frame))
	assert.True(t, km.MapMouseToFrame(tea.MouseMsg{X: 7, Y: 9, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, &frame))

	assert.Equal(t, []core.Point{{X: 7, Y: 9}}, frame.Clicks)
}

func TestMenuActions(t *testing.T) {
	km := NewKeyMapper()

	assert.Equal(t, MenuActionUp, km.MapKeyToMenuAction(runeKey("k")))
	assert.Equal(t, MenuActionDown, km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyDown}))
	assert.Equal(t, MenuActionSelect, km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, MenuActionScoreboard, km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyTab}))
	assert.Equal(t, MenuActionQuit, km.MapKeyToMenuAction(runeKey("q")))
}

func TestGameModelForwardsInputOnTick(t *testing.T) {
	g := &fakeGame{endAfter: 100}
	m := NewGameModel(g, nil, testConfig(), "", nil)
	m.Init()

	m = send(t, m, runeKey("d"))
	m = send(t, m, tea.MouseMsg{X: 4, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = tick(t, m)

	assert.True(t, g.last.Has(core.ActionRight))
	assert.Equal(t, []core.Point{{X: 4, Y: 5}}, g.last.Clicks)

	// Consumed input does not repeat
	tick(t, m)
	assert.True(t, g.last.Empty())
}

func TestGameModelSavesFinishedRunOnce(t *testing.T) {
	store := openStore(t)
	g := &fakeGame{endAfter: 3}
	m := NewGameModel(g, store, testConfig(), "ana", nil)
	m.Init()

	for i := 0; i < 10; i++ {
		m = tick(t, m)
	}
	require.True(t, m.State().GameOver)

	runs, err := store.TopScores("classic", 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "ana", runs[0].Player)
	assert.Equal(t, 30, runs[0].Score)
	assert.Equal(t, 3, runs[0].Matches)
	assert.Equal(t, 6, runs[0].TilesCleared)
}

func TestGameModelRestartStartsNewRun(t *testing.T) {
	store := openStore(t)
	g := &fakeGame{endAfter: 2}
	m := NewGameModel(g, store, testConfig(), "", nil)
	m.Init()
	require.Equal(t, 1, g.resets)

	m = tick(t, m)
	m = tick(t, m)
	require.True(t, m.State().GameOver)

	m = send(t, m, runeKey("r"))
	m = tick(t, m)
	assert.Equal(t, 2, g.resets)
	assert.False(t, m.State().GameOver)

	for i := 0; i < 3; i++ {
		m = tick(t, m)
	}
	runs, err := store.AllScores("classic")
	require.NoError(t, err)
	assert.Len(t, runs, 2, "each finished run is saved once")
}

func TestGameModelBackOnlyWhenStopped(t *testing.T) {
	g := &fakeGame{endAfter: 100}
	m := NewGameModel(g, nil, testConfig(), "", nil)
	m.Init()
	m = tick(t, m)

	m = send(t, m, runeKey("b"))
	assert.False(t, m.BackToMenu(), "back is ignored while the run is live")

	m = send(t, m, runeKey("p"))
	m = tick(t, m)
	require.True(t, m.State().Paused)

	m = send(t, m, runeKey("b"))
	assert.True(t, m.BackToMenu())
}

func TestGameModelQuit(t *testing.T) {
	m := NewGameModel(&fakeGame{endAfter: 5}, nil, testConfig(), "", nil)
	next, cmd := m.Update(runeKey("q"))
	require.NotNil(t, cmd)
	assert.True(t, next.(GameModel).IsQuitting())
	assert.Empty(t, next.(GameModel).View())
}

func TestGameModelViewHasHelpBar(t *testing.T) {
	m := NewGameModel(&fakeGame{endAfter: 5}, nil, testConfig(), "", nil)
	m.Init()

	view := m.View()
	assert.True(t, strings.HasPrefix(view, "fake"))
	assert.Contains(t, view, "select")
	assert.Contains(t, view, "pause")
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd")
	s.SetColored(0, 1, '9', core.ColorOrange)

	lines := strings.Split(RenderScreen(s), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "ab")
	assert.Contains(t, lines[0], "cd")
	assert.Contains(t, lines[1], "9")
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	store := openStore(t)
	m := NewSessionModel(store, testConfig(), "ana", "timed", nil)

	view := m.View()
	assert.Contains(t, view, "SumStack Classic")
	assert.Contains(t, view, "SumStack Timed")
	assert.Contains(t, view, "High Scores")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(SessionModel)
	require.NotNil(t, cmd)
	require.Equal(t, screenGame, m.screen)
	assert.Equal(t, "timed", m.gameModel.game.ID(), "default mode is preselected")

	next, _ = m.Update(runeKey("p"))
	m = next.(SessionModel)
	next, _ = m.Update(TickMsg{})
	m = next.(SessionModel)
	next, _ = m.Update(runeKey("b"))
	m = next.(SessionModel)

	assert.Equal(t, screenMenu, m.screen)
	assert.Nil(t, m.gameModel)
}

func TestSessionScoreboard(t *testing.T) {
	store := openStore(t)
	_, err := store.SaveRun(storage.Run{GameID: "classic", Player: "ana", Score: 120, Matches: 4})
	require.NoError(t, err)

	m := NewSessionModel(store, testConfig(), "ana", "classic", nil)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(SessionModel)
	require.Equal(t, screenScores, m.screen)

	view := m.View()
	assert.Contains(t, view, "HIGH SCORES")
	assert.Contains(t, view, "120")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(SessionModel)
	assert.Equal(t, screenMenu, m.screen)
	assert.Contains(t, m.View(), "best 120")
}

func TestScoreboardWithoutStore(t *testing.T) {
	sb := NewScoreboardModel(nil, 80, 24)
	assert.Contains(t, sb.View(), "no database")

	next, _ := sb.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Contains(t, next.(ScoreboardModel).View(), "HIGH SCORES")
}

func TestScreenshotStoresScreenAndState(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	game, err := registry.Create("timed")
	require.NoError(t, err)
	m := NewGameModel(game, nil, testConfig(), "", nil)
	m.Init()
	m = tick(t, m)
	send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	dir := filepath.Join(home, ".sumstack", "screenshots")
	txt, err := filepath.Glob(filepath.Join(dir, "timed_*.txt"))
	require.NoError(t, err)
	require.Len(t, txt, 1)
	screen, err := os.ReadFile(txt[0])
	require.NoError(t, err)
	assert.Contains(t, string(screen), "Target")

	state, err := os.ReadFile(strings.TrimSuffix(txt[0], ".txt") + ".yaml")
	require.NoError(t, err)
	assert.Contains(t, string(state), "mode: timed")
	assert.Contains(t, string(state), "time_remaining: 10")
}
