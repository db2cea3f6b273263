package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Predefined colors for game elements.
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

// ValuePalette colors tile values 1..9, cool to warm.
var ValuePalette = [...]Color{
	ColorBrightCyan,
	ColorCyan,
	ColorBrightBlue,
	ColorBrightGreen,
	ColorGreen,
	ColorBrightYellow,
	ColorOrange,
	ColorBrightMagenta,
	ColorBrightRed,
}

// ValueColor returns the palette color for a tile value.
// Out-of-range values get the default color.
func ValueColor(v int) Color {
	if v < 1 || v > len(ValuePalette) {
		return ColorDefault
	}
	return ValuePalette[v-1]
}
