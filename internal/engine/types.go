package engine

import (
	"fmt"
	"strings"
)

// Board geometry and scoring rules.
const (
	GridRows      = 10 // Row 0 is the danger row, GridRows-1 the spawn row
	GridCols      = 6
	InitialRows   = 4  // Rows filled by Initialize
	MaxValue      = 9  // Tile values are drawn from [1, MaxValue]
	TimeLimit     = 10 // Countdown length in seconds (Timed mode)
	MinTarget     = 5
	MaxTarget     = 20
	PointsPerTile = 10
)

// Mode selects how row injection is paced.
type Mode string

const (
	ModeClassic Mode = "classic" // A row after every match
	ModeTimed   Mode = "timed"   // A row whenever the countdown expires
)

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	return m == ModeClassic || m == ModeTimed
}

// String returns the mode name.
func (m Mode) String() string {
	return string(m)
}

// Title returns the display name of the mode.
func (m Mode) Title() string {
	switch m {
	case ModeClassic:
		return "Classic"
	case ModeTimed:
		return "Timed"
	default:
		return "Unknown"
	}
}

// ParseMode converts a user-supplied name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "classic":
		return ModeClassic, nil
	case "timed", "time":
		return ModeTimed, nil
	default:
		return "", fmt.Errorf("engine: unknown mode %q", s)
	}
}

// TileID identifies a tile for its whole lifetime.
type TileID string

// Tile is a numbered block on the board.
type Tile struct {
	ID    TileID
	Value int
	Row   int
	Col   int
}

// Board holds the live tiles. No two tiles share a (row, col) cell.
type Board []Tile

// Len returns the number of tiles on the board.
func (b Board) Len() int {
	return len(b)
}

// Find returns the tile with the given id.
func (b Board) Find(id TileID) (Tile, bool) {
	for _, t := range b {
		if t.ID == id {
			return t, true
		}
	}
	return Tile{}, false
}

// At returns the tile occupying the given cell.
func (b Board) At(row, col int) (Tile, bool) {
	for _, t := range b {
		if t.Row == row && t.Col == col {
			return t, true
		}
	}
	return Tile{}, false
}

// RowOccupied reports whether any tile sits on the given row.
func (b Board) RowOccupied(row int) bool {
	for _, t := range b {
		if t.Row == row {
			return true
		}
	}
	return false
}

// HighestRow returns the smallest occupied row index, or GridRows when empty.
func (b Board) HighestRow() int {
	top := GridRows
	for _, t := range b {
		if t.Row < top {
			top = t.Row
		}
	}
	return top
}

// Grid returns the board as a [row][col] value matrix (0 for empty cells).
func (b Board) Grid() [GridRows][GridCols]int {
	var g [GridRows][GridCols]int
	for _, t := range b {
		if inBounds(t.Row, t.Col) {
			g[t.Row][t.Col] = t.Value
		}
	}
	return g
}

func (b Board) clone() Board {
	out := make(Board, len(b))
	copy(out, b)
	return out
}

// Session is the complete state of one run. Sessions are values: every
// engine operation returns a new Session and leaves its input untouched.
type Session struct {
	Board         Board
	Selection     []TileID // Ordered by selection time
	TargetSum     int
	Score         int
	Mode          Mode
	TimeRemaining int // Meaningful in Timed mode only
	Paused        bool
	Over          bool

	// Run statistics, reported with the final score.
	Matches      int
	TilesCleared int
	RowsInjected int
}

// SelectionSum returns the total value of the selected tiles.
func (s Session) SelectionSum() int {
	return sumOf(s.Board, s.Selection)
}

// IsSelected reports whether the tile is part of the current selection.
func (s Session) IsSelected(id TileID) bool {
	return indexOf(s.Selection, id) >= 0
}

// Active reports whether the session still accepts player input.
func (s Session) Active() bool {
	return !s.Over && !s.Paused
}

func (s Session) clone() Session {
	out := s
	out.Board = s.Board.clone()
	out.Selection = append([]TileID(nil), s.Selection...)
	return out
}

func sumOf(b Board, ids []TileID) int {
	sum := 0
	for _, id := range ids {
		if t, ok := b.Find(id); ok {
			sum += t.Value
		}
	}
	return sum
}

func indexOf(ids []TileID, id TileID) int {
	for i, sid := range ids {
		if sid == id {
			return i
		}
	}
	return -1
}

func inBounds(row, col int) bool {
	return row >= 0 && row < GridRows && col >= 0 && col < GridCols
}
