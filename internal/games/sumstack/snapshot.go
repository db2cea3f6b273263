package sumstack

import (
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/sumstack/internal/engine"
)

// RunState summarizes where a run is.
type RunState string

const (
	StatePlaying     RunState = "playing"
	StatePaused      RunState = "paused"
	StateGameOver    RunState = "game_over"
	StatePausedSmall RunState = "paused_small_window"
)

// Snapshot captures the observable game state. Tests use it to compare
// replays; screenshots store it next to the rendered screen.
type Snapshot struct {
	Tick          uint64                                `yaml:"tick"`
	Mode          string                                `yaml:"mode"`
	Score         int                                   `yaml:"score"`
	Target        int                                   `yaml:"target"`
	TimeRemaining int                                   `yaml:"time_remaining"`
	SelectionSum  int                                   `yaml:"selection_sum"`
	Tiles         int                                   `yaml:"tiles"`
	HighestRow    int                                   `yaml:"highest_row"`
	Grid          [engine.GridRows][engine.GridCols]int `yaml:"grid,flow"`
	Cursor        Cursor                                `yaml:"cursor,flow"`
	State         RunState                              `yaml:"state"`
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall():
		state = StatePausedSmall
	case g.session.Over:
		state = StateGameOver
	case g.session.Paused:
		state = StatePaused
	}

	return Snapshot{
		Tick:          g.tick,
		Mode:          string(g.mode),
		Score:         g.session.Score,
		Target:        g.session.TargetSum,
		TimeRemaining: g.session.TimeRemaining,
		SelectionSum:  g.session.SelectionSum(),
		Tiles:         g.session.Board.Len(),
		HighestRow:    g.session.Board.HighestRow(),
		Grid:          g.session.Board.Grid(),
		Cursor:        g.cursor,
		State:         state,
	}
}

// DumpState encodes the snapshot as YAML.
func (g *Game) DumpState() ([]byte, error) {
	return yaml.Marshal(g.Snapshot())
}
