package flappy

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// Text sizes in world pixels.
const (
	TitleSize = 30.0
	TextSize  = 20.0
	HintSize  = 16.0
)

// Texts shown by the scenes.
const (
	MenuPrompt   = "Press SPACE to Play"
	PausedTitle  = "PAUSED"
	PausedHint   = "Press P to resume"
	GameOverText = "GAME OVER"
	RestartHint  = "Press SPACE to play again"
)

// approxMeasurer estimates width as half the font size per rune.
type approxMeasurer struct{}

func (approxMeasurer) MeasureText(text string, size float64) float64 {
	return float64(utf8.RuneCountInString(text)) * size / 2
}

// Render returns the draw intents for the current mode.
// A nil measurer falls back to a fixed-advance estimate.
func (g *Game) Render(vp core.Viewport, m core.TextMeasurer) core.Frame {
	if !vp.Valid() {
		vp = g.viewport
	}
	if m == nil {
		m = approxMeasurer{}
	}

	var f core.Frame
	if g.mode == core.ModeMenu {
		g.renderMenu(&f, vp, m)
		return f
	}

	g.renderScene(&f, vp)

	switch g.mode {
	case core.ModePaused:
		centered(&f, vp, m, PausedTitle, vp.H/2-10, TitleSize, core.ColorWhite)
		centered(&f, vp, m, PausedHint, vp.H/2+25, HintSize, core.ColorGray)
	case core.ModeEnd:
		centered(&f, vp, m, GameOverText, vp.H/2-20, TitleSize, core.ColorRed)
		centered(&f, vp, m, fmt.Sprintf("Score: %d", g.score), vp.H/2+10, TextSize, core.ColorWhite)
		centered(&f, vp, m, RestartHint, vp.H/2+40, HintSize, core.ColorGray)
	}
	return f
}

func (g *Game) renderMenu(f *core.Frame, vp core.Viewport, m core.TextMeasurer) {
	f.Background = core.ColorDarkPurple
	centered(f, vp, m, g.Title(), vp.H/2-50, TitleSize, core.ColorYellow)
	centered(f, vp, m, MenuPrompt, vp.H/2, TextSize, core.ColorWhite)
	if g.variant.PointerFlap {
		centered(f, vp, m, "or click", vp.H/2+25, HintSize, core.ColorGray)
	}
}

// renderScene draws walls, player and HUD relative to the camera.
func (g *Game) renderScene(f *core.Frame, vp core.Viewport) {
	f.Background = core.ColorDarkGray
	cam := g.CameraX()

	if g.variant.Obstacles {
		top := g.obstacle.TopWall()
		bottom := g.obstacle.BottomWall(vp.H)
		top.X -= cam
		bottom.X -= cam
		f.Rect(top, core.ColorGreen)
		f.Rect(bottom, core.ColorGreen)
	}

	f.Circle(g.player.X-cam, g.player.Y, g.player.Radius, core.ColorYellow)

	if g.variant.Obstacles {
		f.Text(fmt.Sprintf("Score: %d", g.score), 10, TextSize+4, TextSize, core.ColorWhite)
	}
}

// centered draws text horizontally centred on the viewport at baseline y.
func centered(f *core.Frame, vp core.Viewport, m core.TextMeasurer, text string, y, size float64, c core.Color) {
	w := m.MeasureText(text, size)
	f.Text(text, vp.W/2-w/2, y, size, c)
}
