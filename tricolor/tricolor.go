/*
Package tricolor implements the three-symbol color space used by tri-level
electrophoretic displays.

Every source sample is reduced to one of White, Black or Accent. The accent
is whatever third pigment the panel carries, usually red or yellow.
*/
package tricolor

import (
	"fmt"
	"image/color"
)

// Symbol is one of the three values a tri-color panel can show.
type Symbol uint8

// The three symbols, in palette order.
const (
	White Symbol = iota
	Black
	Accent
)

const (
	whiteThreshold  = 0x80
	accentThreshold = 0xf0
)

func (s Symbol) String() string {
	switch s {
	case White:
		return "white"
	case Black:
		return "black"
	case Accent:
		return "accent"
	}
	return fmt.Sprintf("Symbol(%d)", uint8(s))
}

// Whitish reports whether the sample should be drawn as white. When color is
// enabled every channel must exceed the threshold; otherwise the sum of the
// channels is compared against three times the threshold.
func Whitish(r, g, b uint8, withColor bool) bool {
	if withColor {
		return r > whiteThreshold && g > whiteThreshold && b > whiteThreshold
	}
	return int(r)+int(g)+int(b) > 3*whiteThreshold
}

// Colored reports whether the sample is reddish or yellowish. Green only
// counts when paired with blue.
func Colored(r, g, b uint8) bool {
	return r > accentThreshold || (g > accentThreshold && b > accentThreshold)
}

// Resolve picks the symbol for an already classified sample.
func Resolve(whitish, colored, withColor bool) Symbol {
	switch {
	case whitish:
		return White
	case colored && withColor:
		return Accent
	default:
		return Black
	}
}

// Classify maps an RGB sample onto a symbol.
func Classify(r, g, b uint8, withColor bool) Symbol {
	return Resolve(Whitish(r, g, b, withColor), Colored(r, g, b), withColor)
}

// Common accent pigments.
var (
	Red    = color.RGBA{0xff, 0x00, 0x00, 0xff}
	Yellow = color.RGBA{0xff, 0xd7, 0x00, 0xff}
)

// Palette returns a palette indexed by Symbol, using accent for the third
// entry. A nil accent falls back to black, matching a monochrome panel.
func Palette(accent color.Color) color.Palette {
	if accent == nil {
		accent = color.Black
	}
	return color.Palette{
		White:  color.White,
		Black:  color.Black,
		Accent: accent,
	}
}
