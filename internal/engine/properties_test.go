package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRandomPlayInvariants drives sessions with random operations and checks
// the invariants after every step.
func TestRandomPlayInvariants(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		for _, mode := range []Mode{ModeClassic, ModeTimed} {
			rng := rand.New(rand.NewSource(seed * 31))
			e := New(seed)
			s := e.Initialize(mode)
			require.NoError(t, Check(s))

			for step := 0; step < 400; step++ {
				prev := s
				op := rng.Intn(10)

				switch {
				case op < 6 && s.Board.Len() > 0:
					id := s.Board[rng.Intn(s.Board.Len())].ID
					var res Result
					var err error
					s, res, err = e.ToggleSelection(s, id)
					require.NoError(t, err)

					if !prev.Active() {
						assert.Equal(t, prev, s, "toggle while paused/over must be a no-op")
						break
					}
					if res.Kind == ResultMatch {
						assert.Equal(t, prev.Score+PointsPerTile*len(res.Cleared), s.Score)
						assert.Empty(t, s.Selection)
						if mode == ModeClassic {
							s = e.InjectRow(s)
						}
					} else {
						assert.Equal(t, prev.TargetSum, s.TargetSum)
						assert.Equal(t, prev.Board, s.Board)
					}

				case op < 8:
					s = e.InjectRow(s)
					switch {
					case prev.Over:
						assert.Equal(t, prev, s)
					case prev.Board.RowOccupied(0):
						assert.True(t, s.Over)
						assert.Equal(t, prev.Board, s.Board)
					default:
						assert.False(t, s.Over)
						assert.Equal(t, prev.Board.Len()+GridCols, s.Board.Len())
					}

				case op < 9:
					var timedOut bool
					var err error
					s, timedOut, err = e.AdvanceTime(s)
					if mode == ModeClassic {
						require.ErrorIs(t, err, ErrNotTimed)
						assert.Equal(t, prev, s)
						break
					}
					require.NoError(t, err)
					if timedOut {
						s = e.InjectRow(s)
					}

				default:
					s = e.SetPaused(s, !s.Paused)
				}

				require.NoError(t, Check(s), "seed %d step %d", seed, step)
				assert.GreaterOrEqual(t, s.Score, prev.Score, "score must never decrease")
				if prev.Over {
					assert.True(t, s.Over, "game over is terminal")
					assert.Equal(t, prev.Board, s.Board)
				}
			}
		}
	}
}

// TestSelectionNeverDangles checks that a match removes exactly the selected
// tiles and nothing else.
func TestSelectionNeverDangles(t *testing.T) {
	e := New(77)
	s := e.Initialize(ModeTimed)

	for attempts := 0; attempts < 200 && !s.Over; attempts++ {
		if s.Board.Len() == 0 {
			break
		}
		before := s
		id := s.Board[attempts%s.Board.Len()].ID
		var res Result
		var err error
		s, res, err = e.ToggleSelection(s, id)
		require.NoError(t, err)

		if res.Kind != ResultMatch {
			continue
		}
		selected := append(append([]TileID(nil), before.Selection...), id)
		for _, cleared := range res.Cleared {
			assert.Contains(t, selected, cleared.ID)
		}
		assert.Len(t, res.Cleared, len(selected))
		assert.Equal(t, before.Board.Len()-len(selected), s.Board.Len())
	}
}
