package sumstack

import (
	"github.com/vovakirdan/sumstack/internal/core"
	"github.com/vovakirdan/sumstack/internal/engine"
)

// Cursor is the highlighted board cell. It always stays on the grid.
type Cursor struct {
	Row, Col int
}

// startCursor sits on the bottom-left cell, where the first tiles are.
func startCursor() Cursor {
	return Cursor{Row: engine.GridRows - 1, Col: 0}
}

// Move applies the movement actions in the frame and clamps to the grid.
func (c Cursor) Move(in core.InputFrame) Cursor {
	if in.Has(core.ActionUp) {
		c.Row--
	}
	if in.Has(core.ActionDown) {
		c.Row++
	}
	if in.Has(core.ActionLeft) {
		c.Col--
	}
	if in.Has(core.ActionRight) {
		c.Col++
	}
	c.Row = core.Clamp(c.Row, 0, engine.GridRows-1)
	c.Col = core.Clamp(c.Col, 0, engine.GridCols-1)
	return c
}

// layout places the board on screen.
type layout struct {
	board core.Rect // Outer frame, including the border
}

const (
	cellWidth = 4 // "[7] " - brackets, value, gap
	hudHeight = 4
	minWidth  = engine.GridCols*cellWidth + 8
	minHeight = engine.GridRows + hudHeight + 4
)

func newLayout(screenW, screenH int) layout {
	w := engine.GridCols*cellWidth + 3
	h := engine.GridRows + 2
	x := (screenW - w) / 2
	return layout{board: core.NewRect(x, hudHeight, w, h)}
}

// cellOrigin returns the screen position of a cell's left bracket.
func (l layout) cellOrigin(row, col int) (int, int) {
	return l.board.X + 2 + col*cellWidth, l.board.Y + 1 + row
}

// cellAt maps a screen position to a board cell.
func (l layout) cellAt(x, y int) (row, col int, ok bool) {
	inner := core.NewRect(l.board.X+2, l.board.Y+1, engine.GridCols*cellWidth, engine.GridRows)
	if !inner.Contains(x, y) {
		return 0, 0, false
	}
	return y - inner.Y, (x - inner.X) / cellWidth, true
}
