package engine

import "fmt"

// ResultKind classifies what a selection toggle did.
type ResultKind int

const (
	ResultIgnored  ResultKind = iota // Session paused or over
	ResultProgress                   // Sum still below target
	ResultMatch                      // Sum hit the target, tiles cleared
	ResultBust                       // Sum overshot, selection dropped
)

// String returns a short name for the result kind.
func (k ResultKind) String() string {
	switch k {
	case ResultIgnored:
		return "ignored"
	case ResultProgress:
		return "progress"
	case ResultMatch:
		return "match"
	case ResultBust:
		return "bust"
	default:
		return "unknown"
	}
}

// Result describes the outcome of ToggleSelection.
// A ResultMatch is the match event: Classic mode injects a row on it.
type Result struct {
	Kind    ResultKind
	Sum     int    // Selection sum that was evaluated
	Cleared []Tile // Tiles removed by a match
	Points  int    // Score awarded by a match
}

// ToggleSelection adds the tile to the selection, or removes it when it is
// already selected, then evaluates the selection against the target.
// Toggling while paused or over returns s unchanged.
func (e *Engine) ToggleSelection(s Session, id TileID) (Session, Result, error) {
	if !s.Active() {
		return s, Result{Kind: ResultIgnored, Sum: s.SelectionSum()}, nil
	}
	if _, ok := s.Board.Find(id); !ok {
		return s, Result{}, fmt.Errorf("%w: %s", ErrUnknownTile, id)
	}

	next := s.clone()
	if i := indexOf(next.Selection, id); i >= 0 {
		next.Selection = append(next.Selection[:i], next.Selection[i+1:]...)
	} else {
		next.Selection = append(next.Selection, id)
	}

	sum := sumOf(next.Board, next.Selection)
	switch {
	case sum == next.TargetSum:
		cleared := removeTiles(&next, next.Selection)
		points := PointsPerTile * len(cleared)
		next.Selection = []TileID{}
		next.TargetSum = e.newTarget()
		next.Score += points
		next.Matches++
		next.TilesCleared += len(cleared)
		if next.Mode == ModeTimed {
			next.TimeRemaining = TimeLimit
		}
		return next, Result{Kind: ResultMatch, Sum: sum, Cleared: cleared, Points: points}, nil

	case sum > next.TargetSum:
		next.Selection = []TileID{}
		return next, Result{Kind: ResultBust, Sum: sum}, nil

	default:
		return next, Result{Kind: ResultProgress, Sum: sum}, nil
	}
}

// removeTiles drops exactly the referenced tiles from the board and returns them.
func removeTiles(s *Session, ids []TileID) []Tile {
	cleared := make([]Tile, 0, len(ids))
	kept := s.Board[:0]
	for _, t := range s.Board {
		if indexOf(ids, t.ID) >= 0 {
			cleared = append(cleared, t)
			continue
		}
		kept = append(kept, t)
	}
	s.Board = kept
	return cleared
}

// InjectRow pushes every tile up one row and fills the bottom row with fresh
// tiles. If a tile already sits on row 0 the run ends instead and the board
// is left exactly as it was. An ended session is returned unchanged.
func (e *Engine) InjectRow(s Session) Session {
	if s.Over {
		return s
	}
	if s.Board.RowOccupied(0) {
		next := s.clone()
		next.Over = true
		return next
	}

	next := s.clone()
	for i := range next.Board {
		next.Board[i].Row--
	}
	for col := 0; col < GridCols; col++ {
		next.Board = append(next.Board, e.newTile(GridRows-1, col))
	}
	next.TimeRemaining = TimeLimit
	next.RowsInjected++
	return next
}

// AdvanceTime counts one second off the Timed-mode countdown. The boolean
// result is the timeout event: the countdown would have gone below zero, so
// it has been reset to TimeLimit and the caller is expected to inject a row.
// Paused or ended sessions are returned unchanged; Classic sessions are
// returned unchanged together with ErrNotTimed.
func (e *Engine) AdvanceTime(s Session) (Session, bool, error) {
	if s.Mode != ModeTimed {
		return s, false, ErrNotTimed
	}
	if !s.Active() {
		return s, false, nil
	}

	next := s.clone()
	if next.TimeRemaining-1 < 0 {
		next.TimeRemaining = TimeLimit
		return next, true, nil
	}
	next.TimeRemaining--
	return next, false, nil
}

// SetPaused sets the pause flag. Allowed in every state.
func (e *Engine) SetPaused(s Session, paused bool) Session {
	next := s.clone()
	next.Paused = paused
	return next
}
