// Package engine implements the SumStack rules as a deterministic state
// machine. It has no knowledge of timers, terminals or input devices: the
// caller owns the clock and decides when to inject rows.
package engine

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/google/uuid"
)

// Contract violations reported by engine operations.
var (
	ErrUnknownTile = errors.New("engine: tile is not on the board")
	ErrNotTimed    = errors.New("engine: time only advances in timed mode")
)

// Source supplies the random numbers used for tile values and targets.
// *rand.Rand satisfies it.
type Source interface {
	// Intn returns a value in [0, n).
	Intn(n int) int
}

// Engine applies the game rules. It is not safe for concurrent use; callers
// serialize operations the same way they serialize sessions.
type Engine struct {
	src Source
	ids io.Reader
}

// Option customizes an Engine.
type Option func(*Engine)

// WithSource replaces the random source for values and targets.
func WithSource(src Source) Option {
	return func(e *Engine) {
		e.src = src
	}
}

// WithIDReader replaces the byte stream tile ids are drawn from.
func WithIDReader(r io.Reader) Option {
	return func(e *Engine) {
		e.ids = r
	}
}

// New creates an engine seeded for reproducible runs.
func New(seed int64, opts ...Option) *Engine {
	rng := rand.New(rand.NewSource(seed))
	e := &Engine{
		src: rng,
		ids: rng,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Initialize starts a new run: the bottom InitialRows rows are filled with
// fresh tiles, everything above is empty.
func (e *Engine) Initialize(mode Mode) Session {
	if !mode.Valid() {
		panic(fmt.Sprintf("engine: initialize with unknown mode %q", mode))
	}

	board := make(Board, 0, GridRows*GridCols)
	for row := GridRows - InitialRows; row < GridRows; row++ {
		for col := 0; col < GridCols; col++ {
			board = append(board, e.newTile(row, col))
		}
	}

	return Session{
		Board:         board,
		Selection:     []TileID{},
		TargetSum:     e.newTarget(),
		Score:         0,
		Mode:          mode,
		TimeRemaining: TimeLimit,
	}
}

// Restart discards whatever came before and starts a new run.
func (e *Engine) Restart(mode Mode) Session {
	return e.Initialize(mode)
}

func (e *Engine) newTile(row, col int) Tile {
	return Tile{
		ID:    e.newID(),
		Value: 1 + e.src.Intn(MaxValue),
		Row:   row,
		Col:   col,
	}
}

func (e *Engine) newTarget() int {
	return MinTarget + e.src.Intn(MaxTarget-MinTarget+1)
}

func (e *Engine) newID() TileID {
	id, err := uuid.NewRandomFromReader(e.ids)
	if err != nil {
		// The id stream ran dry; fall back to the process-wide generator.
		id = uuid.New()
	}
	return TileID(id.String())
}
