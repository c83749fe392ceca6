package window

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Fonts caches Go Regular faces by size and measures text for the game core.
type Fonts struct {
	source *text.GoTextFaceSource
	faces  map[float64]*text.GoTextFace
}

// NewFonts parses the embedded Go Regular font.
func NewFonts() (*Fonts, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("window: cannot load font: %w", err)
	}
	return &Fonts{source: src, faces: make(map[float64]*text.GoTextFace)}, nil
}

// Face returns the face for a font size.
func (f *Fonts) Face(size float64) *text.GoTextFace {
	if face, ok := f.faces[size]; ok {
		return face
	}
	face := &text.GoTextFace{
		Source:    f.source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	f.faces[size] = face
	return face
}

// MeasureText implements core.TextMeasurer.
func (f *Fonts) MeasureText(s string, size float64) float64 {
	return text.Advance(s, f.Face(size))
}
