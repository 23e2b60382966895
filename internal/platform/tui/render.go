package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/t2048/internal/core"
)

// palette maps core.Color to ANSI color codes. ColorDefault has no entry.
var palette = map[core.Color]lipgloss.Color{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

// ScreenRenderer converts core.Screen buffers to styled strings.
//
// Styles are bound to a lipgloss.Renderer so that SSH sessions get the
// color profile of the remote terminal rather than the server's.
type ScreenRenderer struct {
	styles map[core.Color]lipgloss.Style
	plain  lipgloss.Style
}

// NewScreenRenderer creates a renderer. A nil r uses the default renderer
// bound to stdout.
func NewScreenRenderer(r *lipgloss.Renderer) *ScreenRenderer {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	sr := &ScreenRenderer{
		styles: make(map[core.Color]lipgloss.Style, len(palette)),
		plain:  r.NewStyle(),
	}
	for c, code := range palette {
		style := r.NewStyle().Foreground(code)
		// 2048 and beyond stand out.
		if c == core.ColorBrightMagenta || c == core.ColorBrightCyan {
			style = style.Bold(true)
		}
		sr.styles[c] = style
	}
	return sr
}

// Render converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color are grouped into one styled run.
func (sr *ScreenRenderer) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color

			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(sr.style(color).Render(run.String()))
		}
	}
	return sb.String()
}

func (sr *ScreenRenderer) style(c core.Color) lipgloss.Style {
	if style, ok := sr.styles[c]; ok {
		return style
	}
	return sr.plain
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
