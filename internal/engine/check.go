package engine

import (
	"errors"
	"fmt"
)

// Check verifies the structural invariants of a session: tiles in bounds
// with legal values, one tile per cell, unique ids, a selection without
// dangling or duplicate ids, a target in range and a non-negative countdown.
// It returns every violation found, joined.
func Check(s Session) error {
	var errs []error

	if !s.Mode.Valid() {
		errs = append(errs, fmt.Errorf("unknown mode %q", s.Mode))
	}
	if len(s.Board) > GridRows*GridCols {
		errs = append(errs, fmt.Errorf("board holds %d tiles, capacity %d", len(s.Board), GridRows*GridCols))
	}

	cells := make(map[[2]int]TileID, len(s.Board))
	ids := make(map[TileID]bool, len(s.Board))
	for _, t := range s.Board {
		if !inBounds(t.Row, t.Col) {
			errs = append(errs, fmt.Errorf("tile %s out of bounds at (%d,%d)", t.ID, t.Row, t.Col))
		}
		if t.Value < 1 || t.Value > MaxValue {
			errs = append(errs, fmt.Errorf("tile %s has value %d", t.ID, t.Value))
		}
		cell := [2]int{t.Row, t.Col}
		if other, taken := cells[cell]; taken {
			errs = append(errs, fmt.Errorf("tiles %s and %s share cell (%d,%d)", other, t.ID, t.Row, t.Col))
		}
		cells[cell] = t.ID
		if ids[t.ID] {
			errs = append(errs, fmt.Errorf("duplicate tile id %s", t.ID))
		}
		ids[t.ID] = true
	}

	seen := make(map[TileID]bool, len(s.Selection))
	for _, id := range s.Selection {
		if !ids[id] {
			errs = append(errs, fmt.Errorf("selection references missing tile %s", id))
		}
		if seen[id] {
			errs = append(errs, fmt.Errorf("tile %s selected twice", id))
		}
		seen[id] = true
	}

	if s.TargetSum < MinTarget || s.TargetSum > MaxTarget {
		errs = append(errs, fmt.Errorf("target %d outside [%d,%d]", s.TargetSum, MinTarget, MaxTarget))
	}
	if s.Score < 0 {
		errs = append(errs, fmt.Errorf("negative score %d", s.Score))
	}
	if s.TimeRemaining < 0 || s.TimeRemaining > TimeLimit {
		errs = append(errs, fmt.Errorf("time remaining %d outside [0,%d]", s.TimeRemaining, TimeLimit))
	}

	return errors.Join(errs...)
}
