package tui

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// One terminal cell covers CellWidth x CellHeight world pixels,
// so an 80x24 terminal is an 800x600 world.
const (
	CellWidth  = 10.0
	CellHeight = 25.0
)

// Glyphs used by the rasteriser.
const (
	FillChar   = '█'
	PlayerChar = '●'
)

// WorldViewport converts a terminal size in cells to a viewport in world pixels.
func WorldViewport(cols, rows int) core.Viewport {
	return core.NewViewport(float64(cols)*CellWidth, float64(rows)*CellHeight)
}

// CellMeasurer measures text as one cell per rune, whatever the font size.
var CellMeasurer = core.MeasureFunc(func(text string, size float64) float64 {
	return float64(utf8.RuneCountInString(text)) * CellWidth
})

// palette maps core.Color to ANSI 256 colors.
var palette = map[core.Color]lipgloss.Color{
	core.ColorBlack:      lipgloss.Color("0"),
	core.ColorRed:        lipgloss.Color("1"),
	core.ColorGreen:      lipgloss.Color("2"),
	core.ColorYellow:     lipgloss.Color("3"),
	core.ColorBlue:       lipgloss.Color("4"),
	core.ColorMagenta:    lipgloss.Color("5"),
	core.ColorCyan:       lipgloss.Color("6"),
	core.ColorWhite:      lipgloss.Color("7"),
	core.ColorGray:       lipgloss.Color("245"),
	core.ColorDarkGray:   lipgloss.Color("236"),
	core.ColorDarkPurple: lipgloss.Color("54"),
	core.ColorDarkGreen:  lipgloss.Color("22"),
	core.ColorOrange:     lipgloss.Color("208"),
	core.ColorMaroon:     lipgloss.Color("88"),
}

type colorPair struct {
	fg, bg core.Color
}

// styleFor builds the lipgloss style for a foreground/background pair.
func styleFor(p colorPair) lipgloss.Style {
	style := lipgloss.NewStyle()
	if c, ok := palette[p.fg]; ok {
		style = style.Foreground(c)
	}
	if c, ok := palette[p.bg]; ok {
		style = style.Background(c)
	}
	return style
}

// Rasterize draws a frame of world-pixel intents into a cell screen.
// A cell is filled when its centre lies inside the shape.
func Rasterize(f core.Frame, s *core.Screen) {
	s.ClearTo(f.Background)

	for _, c := range f.Cmds {
		switch c.Shape {
		case core.ShapeRect:
			fillBox(s, core.NewBox(c.X, c.Y, c.W, c.H), c.Color)
		case core.ShapeCircle:
			fillCircle(s, c.X, c.Y, c.R, c.Color)
		case core.ShapeText:
			col := int(math.Round(c.X / CellWidth))
			row := int(math.Floor((c.Y - c.Size/2) / CellHeight))
			s.DrawText(col, row, c.Text, c.Color)
		}
	}
}

// cellSpan returns the cells whose centres fall in [lo, hi).
func cellSpan(lo, hi, size float64) (first, last int) {
	first = int(math.Ceil(lo/size - 0.5))
	last = int(math.Ceil(hi/size-0.5)) - 1
	return first, last
}

// cellRect returns the cells whose centres lie inside b, clipped to a cols x rows screen.
func cellRect(b core.Box, cols, rows int) core.Rect {
	if b.Empty() {
		return core.Rect{}
	}
	x0, x1 := cellSpan(b.X, b.Right(), CellWidth)
	y0, y1 := cellSpan(b.Y, b.Bottom(), CellHeight)
	x0, x1 = core.Clamp(x0, 0, cols), core.Clamp(x1+1, 0, cols)
	y0, y1 = core.Clamp(y0, 0, rows), core.Clamp(y1+1, 0, rows)
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}

func fillBox(s *core.Screen, b core.Box, c core.Color) {
	s.DrawRect(cellRect(b, s.Width(), s.Height()), FillChar, c)
}

func fillCircle(s *core.Screen, cx, cy, r float64, c core.Color) {
	x0, x1 := cellSpan(cx-r, cx+r, CellWidth)
	y0, y1 := cellSpan(cy-r, cy+r, CellHeight)

	drawn := false
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx := (float64(x)+0.5)*CellWidth - cx
			dy := (float64(y)+0.5)*CellHeight - cy
			if dx*dx+dy*dy <= r*r {
				s.SetColored(x, y, PlayerChar, c)
				drawn = true
			}
		}
	}

	// Small circles still occupy the cell containing their centre
	if !drawn {
		s.SetColored(int(math.Floor(cx/CellWidth)), int(math.Floor(cy/CellHeight)), PlayerChar, c)
	}
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	styles := make(map[colorPair]lipgloss.Style)

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			pair := colorPair{cell.Color, cell.Bg}

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if (colorPair{cell.Color, cell.Bg}) != pair {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := styles[pair]
			if !ok {
				style = styleFor(pair)
				styles[pair] = style
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
