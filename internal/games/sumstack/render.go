package sumstack

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/sumstack/internal/core"
	"github.com/vovakirdan/sumstack/internal/engine"
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall() {
		g.renderTooSmall(dst)
		return
	}

	lay := newLayout(g.screenW, g.screenH)
	g.renderHUD(dst, lay)
	g.renderBoard(dst, lay)
	g.renderFooter(dst, lay)
	g.renderOverlays(dst, lay)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", minWidth, minHeight))
}

// renderHUD draws title, score, target and the running selection sum.
func (g *Game) renderHUD(dst *core.Screen, lay layout) {
	b := lay.board
	s := g.session

	dst.DrawTextCentered(0, g.Title())

	dst.DrawText(b.X, 1, fmt.Sprintf("Score: %d", s.Score))
	target := fmt.Sprintf("Target: %d", s.TargetSum)
	dst.DrawTextColored(b.Right()-len(target), 1, target, core.ColorBrightYellow)

	sum := s.SelectionSum()
	sumColor := core.ColorDefault
	switch {
	case sum > s.TargetSum:
		sumColor = core.ColorBrightRed
	case sum > 0:
		sumColor = core.ColorBrightWhite
	}
	dst.DrawTextColored(b.X, 2, fmt.Sprintf("Sum: %d (%d)", sum, len(s.Selection)), sumColor)

	if g.mode == engine.ModeTimed {
		left := fmt.Sprintf("Time: %2ds", s.TimeRemaining)
		c := core.ColorDefault
		if s.TimeRemaining <= 3 {
			c = core.ColorBrightRed
		}
		dst.DrawTextColored(b.Right()-len(left), 2, left, c)
	} else {
		rows := fmt.Sprintf("Rows: %d", s.RowsInjected)
		dst.DrawText(b.Right()-len(rows), 2, rows)
	}
}

// renderBoard draws the frame, tiles, selection and cursor.
func (g *Game) renderBoard(dst *core.Screen, lay layout) {
	s := g.session
	danger := s.Board.RowOccupied(0)

	frame := core.ColorGray
	if danger {
		frame = core.ColorBrightRed
	}
	dst.DrawBoxColored(lay.board, frame)

	// Row 0 is the overflow line
	if danger {
		dst.DrawTextColored(lay.board.X-2, lay.board.Y+1, "!", core.ColorBrightRed)
		dst.DrawTextColored(lay.board.Right()+1, lay.board.Y+1, "!", core.ColorBrightRed)
	}

	grid := s.Board.Grid()
	for row := 0; row < engine.GridRows; row++ {
		for col := 0; col < engine.GridCols; col++ {
			x, y := lay.cellOrigin(row, col)
			val := grid[row][col]

			if val == 0 {
				dst.SetColored(x+1, y, '·', core.ColorGray)
			} else {
				dst.SetColored(x+1, y, rune('0'+val), g.valueColor(val))
			}

			selected := false
			if t, ok := s.Board.At(row, col); ok {
				selected = s.IsSelected(t.ID)
			}
			onCursor := g.cursor.Row == row && g.cursor.Col == col

			switch {
			case onCursor && selected:
				dst.SetColored(x, y, '[', core.ColorBrightYellow)
				dst.SetColored(x+2, y, ']', core.ColorBrightYellow)
			case onCursor:
				dst.SetColored(x, y, '[', core.ColorBrightWhite)
				dst.SetColored(x+2, y, ']', core.ColorBrightWhite)
			case selected:
				dst.SetColored(x, y, '(', core.ColorBrightYellow)
				dst.SetColored(x+2, y, ')', core.ColorBrightYellow)
			}
		}
	}
}

func (g *Game) valueColor(v int) core.Color {
	if g.theme == ThemeMono {
		return core.ColorBrightWhite
	}
	return core.ValueColor(v)
}

// renderFooter draws the feedback line and run counters.
func (g *Game) renderFooter(dst *core.Screen, lay layout) {
	y := lay.board.Bottom()
	if g.message != "" {
		x := (g.screenW - len([]rune(g.message))) / 2
		dst.DrawTextColored(x, y, g.message, g.messageColor)
	}

	stats := "Matches: " + strconv.Itoa(g.session.Matches) + "  Cleared: " + strconv.Itoa(g.session.TilesCleared)
	dst.DrawTextColored((g.screenW-len(stats))/2, y+1, stats, core.ColorGray)
}

// renderOverlays draws the pause and game over boxes.
func (g *Game) renderOverlays(dst *core.Screen, lay layout) {
	cx, cy := lay.board.Center()

	switch {
	case g.session.Over:
		drawOverlay(dst, cx, cy,
			"GAME OVER",
			fmt.Sprintf("Score: %d", g.session.Score),
			fmt.Sprintf("Matches: %d", g.session.Matches),
			"R: restart  B: menu",
		)
	case g.session.Paused:
		drawOverlay(dst, cx, cy, "PAUSED", "P: resume  B: menu")
	}
}

// drawOverlay draws a centered text box over whatever is below it.
func drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := core.NewRect(centerX-(maxLen+4)/2, centerY-(len(lines)+2)/2, maxLen+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, box.Y+1+i, line)
	}
}
