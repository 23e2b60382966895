package game

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/t2048/internal/core"
	"github.com/vovakirdan/t2048/internal/engine"
)

const (
	cellWidth  = 7 // Width of each cell (including left border)
	cellHeight = 2 // Height of each cell (including top border)
	hudHeight  = 3
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardW := engine.Size*cellWidth + 1
	boardH := engine.Size*cellHeight + 1

	boardX := core.Clamp((g.screenW-boardW)/2, 0, g.screenW)
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX, boardW)
	g.renderBoard(dst, boardX, boardY)
	g.renderOverlays(dst, core.NewRect(boardX, boardY, boardW, boardH))
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
}

// renderHUD draws the title, score, best score and move counter.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	title := "2 0 4 8"
	dst.DrawTextColored(boardX+(boardW-len(title))/2, 0, title, core.ColorBrightYellow)

	scoreStr := fmt.Sprintf("Score: %d", g.eng.Score())
	dst.DrawText(boardX, 1, scoreStr)

	bestStr := fmt.Sprintf("Best: %d", max(g.best, g.eng.Score()))
	dst.DrawText(max(boardX, boardX+boardW-len(bestStr)), 1, bestStr)

	info := fmt.Sprintf("Moves: %d", g.eng.Moves())
	if g.last != nil && g.last.Gained > 0 {
		info += fmt.Sprintf("  +%d", g.last.Gained)
	}
	dst.DrawTextColored(boardX, 2, info, core.ColorGray)
}

// renderBoard draws the grid and the tiles.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	const n = engine.Size

	for y := range n + 1 {
		for x := range n + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == n:
				corner = '┐'
			case y == n && x == 0:
				corner = '└'
			case y == n && x == n:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == n:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == n:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetColored(px, py, corner, core.ColorGray)

			if x < n {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', core.ColorGray)
				}
			}
			if y < n {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}

	board := g.eng.State()
	var spawned *engine.Tile
	if g.last != nil {
		spawned = g.last.Spawned
	}

	for r := range n {
		for c := range n {
			val := board[r][c]
			if val == 0 {
				continue
			}

			valStr := strconv.Itoa(val)
			if spawned != nil && spawned.Row == r && spawned.Col == c {
				valStr = "+" + valStr
			}
			padLeft := max((cellWidth-1-len(valStr))/2, 0)

			cellX := boardX + c*cellWidth + 1
			cellY := boardY + r*cellHeight + 1
			dst.DrawTextColored(cellX+padLeft, cellY, valStr, tileColor(val))
		}
	}
}

// renderOverlays draws idle, pause, win and lose messages over the board.
func (g *Game) renderOverlays(dst *core.Screen, board core.Rect) {
	switch {
	case g.paused:
		g.drawOverlay(dst, board, core.ColorWhite, "PAUSED", "Press P to resume")
	case g.eng.Status() == engine.StatusIdle:
		g.drawOverlay(dst, board, core.ColorBrightYellow, "Get to the 2048 tile!", "Press Enter to start")
	case g.eng.Status() == engine.StatusWin:
		g.drawOverlay(dst, board, core.ColorBrightGreen, "YOU WIN!", fmt.Sprintf("Score: %d", g.eng.Score()), "Press R to restart")
	case g.eng.Status() == engine.StatusLose:
		maxStr := fmt.Sprintf("Max tile: %d", g.eng.MaxTile())
		g.drawOverlay(dst, board, core.ColorBrightRed, "GAME OVER", maxStr, "Press R to restart")
	}
}

// drawOverlay draws a centered box with the given lines.
func (g *Game) drawOverlay(dst *core.Screen, board core.Rect, color core.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := board.Centered(maxLen+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBoxColored(box, color)

	for i, line := range lines {
		x := box.X + (box.W-len(line))/2
		dst.DrawTextColored(x, box.Y+1+i, line, color)
	}
}

// tileColor picks a foreground color for a tile value.
func tileColor(v int) core.Color {
	switch v {
	case 2:
		return core.ColorWhite
	case 4:
		return core.ColorBrightWhite
	case 8:
		return core.ColorOrange
	case 16:
		return core.ColorBrightRed
	case 32:
		return core.ColorRed
	case 64:
		return core.ColorMagenta
	case 128:
		return core.ColorYellow
	case 256:
		return core.ColorBrightYellow
	case 512:
		return core.ColorGreen
	case 1024:
		return core.ColorBrightGreen
	case 2048:
		return core.ColorBrightMagenta
	default:
		return core.ColorBrightCyan
	}
}
