package core

// Shape is the kind of a draw intent.
type Shape int

const (
	ShapeCircle Shape = iota
	ShapeRect
	ShapeText
)

// DrawCmd is a single immediate-mode draw intent in world pixels.
// Circles use (X, Y) as centre and R as radius, rects use X, Y, W, H,
// text uses (X, Y) as the baseline-left origin and Size as font size.
type DrawCmd struct {
	Shape Shape
	X, Y  float64
	W, H  float64
	R     float64
	Color Color
	Text  string
	Size  float64
}

// Frame is everything a backend needs to present one rendered frame.
type Frame struct {
	Background Color
	Cmds       []DrawCmd
}

// Circle appends a filled circle.
func (f *Frame) Circle(x, y, r float64, c Color) {
	f.Cmds = append(f.Cmds, DrawCmd{Shape: ShapeCircle, X: x, Y: y, R: r, Color: c})
}

// Rect appends a filled rectangle. Empty boxes are skipped.
func (f *Frame) Rect(b Box, c Color) {
	if b.Empty() {
		return
	}
	f.Cmds = append(f.Cmds, DrawCmd{Shape: ShapeRect, X: b.X, Y: b.Y, W: b.W, H: b.H, Color: c})
}

// Text appends a text draw.
func (f *Frame) Text(text string, x, y, size float64, c Color) {
	f.Cmds = append(f.Cmds, DrawCmd{Shape: ShapeText, X: x, Y: y, Text: text, Size: size, Color: c})
}

// Texts returns the strings drawn in this frame, in order.
func (f Frame) Texts() []string {
	var out []string
	for _, c := range f.Cmds {
		if c.Shape == ShapeText {
			out = append(out, c.Text)
		}
	}
	return out
}

// TextMeasurer reports the rendered width of a string at a font size.
// Supplied by the host because font metrics belong to the backend.
type TextMeasurer interface {
	MeasureText(text string, size float64) float64
}

// MeasureFunc adapts a function to TextMeasurer.
type MeasureFunc func(text string, size float64) float64

// MeasureText implements TextMeasurer.
func (f MeasureFunc) MeasureText(text string, size float64) float64 {
	return f(text, size)
}
