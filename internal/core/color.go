package core

// Color is a palette foreground color for a screen cell.
// The platform maps it to ANSI 256-color codes.
type Color uint8

// Palette colors.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// Cell is one character of the screen. Tint, when set, is a "#rrggbb"
// truecolor foreground that takes precedence over Color.
type Cell struct {
	Rune  rune
	Color Color
	Tint  string
}

// SameStyle reports whether c and o render with the same foreground.
func (c Cell) SameStyle(o Cell) bool {
	return c.Color == o.Color && c.Tint == o.Tint
}

// blank is the cell a cleared screen is filled with.
var blank = Cell{Rune: ' '}
