package core

// Color is a backend-neutral palette entry.
// Terminal hosts map it to ANSI 256 colors, the window host to RGBA.
type Color uint8

// Palette used by the flappy scenes.
const (
	ColorDefault Color = iota
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorGray
	ColorDarkGray
	ColorDarkPurple
	ColorDarkGreen
	ColorOrange
	ColorMaroon
)

// String returns the palette name of the color.
func (c Color) String() string {
	switch c {
	case ColorDefault:
		return "default"
	case ColorBlack:
		return "black"
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorYellow:
		return "yellow"
	case ColorBlue:
		return "blue"
	case ColorMagenta:
		return "magenta"
	case ColorCyan:
		return "cyan"
	case ColorWhite:
		return "white"
	case ColorGray:
		return "gray"
	case ColorDarkGray:
		return "darkgray"
	case ColorDarkPurple:
		return "darkpurple"
	case ColorDarkGreen:
		return "darkgreen"
	case ColorOrange:
		return "orange"
	case ColorMaroon:
		return "maroon"
	default:
		return "unknown"
	}
}
