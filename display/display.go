/*
Package display implements an in-memory surface for tri-color e-paper panels.

A Buffer stores one tricolor.Symbol per pixel and can be drawn on by the bmp
decoder. It can be exported as a paletted image for previews, or packed into
the two 1-bit planes that panel controllers expect.
*/
package display

import (
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/timcal/epaper/tricolor"
)

// Profile describes a panel.
type Profile struct {
	Name   string
	Width  int
	Height int
	// Accent is the third pigment. Nil means a black and white panel.
	Accent color.Color
}

// DefaultProfile is the 4.2" tri-color panel.
const DefaultProfile = "gdeh042z15"

// Profiles lists the known panels by name.
var Profiles = map[string]Profile{
	"gdeh042z15": {Name: "gdeh042z15", Width: 400, Height: 300, Accent: tricolor.Red},
	"gdew042t2":  {Name: "gdew042t2", Width: 400, Height: 300},
	"gdew029z10": {Name: "gdew029z10", Width: 128, Height: 296, Accent: tricolor.Red},
	"gdeh029c90": {Name: "gdeh029c90", Width: 128, Height: 296, Accent: tricolor.Yellow},
}

// ProfileByName looks up a panel profile.
func ProfileByName(name string) (Profile, error) {
	p, ok := Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("display: unknown panel %q", name)
	}
	return p, nil
}

// ProfileNames returns the known profile names, sorted.
func ProfileNames() []string {
	names := make([]string, 0, len(Profiles))
	for name := range Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Buffer is a tri-color framebuffer. It starts out white.
type Buffer struct {
	img  *image.Paletted
	mono bool
}

// New returns a white Buffer of the given size. A nil accent makes the
// Buffer monochrome, where accent pixels are shown and packed as black.
func New(width, height int, accent color.Color) *Buffer {
	return &Buffer{
		img:  image.NewPaletted(image.Rect(0, 0, width, height), tricolor.Palette(accent)),
		mono: accent == nil,
	}
}

// NewFromProfile returns a white Buffer sized for p.
func NewFromProfile(p Profile) *Buffer {
	return New(p.Width, p.Height, p.Accent)
}

// Width returns the number of addressable columns.
func (b *Buffer) Width() int { return b.img.Rect.Dx() }

// Height returns the number of addressable rows.
func (b *Buffer) Height() int { return b.img.Rect.Dy() }

// Mono reports whether the Buffer has no accent pigment.
func (b *Buffer) Mono() bool { return b.mono }

// DrawPixel sets one pixel. Coordinates outside the Buffer are ignored.
func (b *Buffer) DrawPixel(x, y int, s tricolor.Symbol) {
	if !(image.Point{x, y}.In(b.img.Rect)) {
		return
	}
	b.img.SetColorIndex(x, y, uint8(s))
}

// Symbol returns the symbol at x, y, or White outside the Buffer.
func (b *Buffer) Symbol(x, y int) tricolor.Symbol {
	if !(image.Point{x, y}.In(b.img.Rect)) {
		return tricolor.White
	}
	return tricolor.Symbol(b.img.ColorIndexAt(x, y))
}

// Fill sets every pixel to s.
func (b *Buffer) Fill(s tricolor.Symbol) {
	for i := range b.img.Pix {
		b.img.Pix[i] = uint8(s)
	}
}

// FillRect sets every pixel inside r to s, clipped to the Buffer.
func (b *Buffer) FillRect(r image.Rectangle, s tricolor.Symbol) {
	r = r.Intersect(b.img.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			b.img.SetColorIndex(x, y, uint8(s))
		}
	}
}

// Image returns the Buffer as a paletted image sharing its pixels.
func (b *Buffer) Image() *image.Paletted {
	return b.img
}

// Stride returns the number of bytes per row in a packed plane.
func (b *Buffer) Stride() int {
	return (b.Width() + 7) >> 3
}

// Planes packs the Buffer into black and accent planes. Rows are y-major
// with the leftmost pixel in the most significant bit, and a set bit means
// no ink. On a monochrome Buffer accent pixels are inked on the black plane
// and the accent plane is left blank.
func (b *Buffer) Planes() (black, accent []byte) {
	stride := b.Stride()
	black = make([]byte, stride*b.Height())
	accent = make([]byte, len(black))
	for i := range black {
		black[i] = 0xff
		accent[i] = 0xff
	}

	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			i := y*stride + x>>3
			mask := byte(0x80) >> uint(x&7)
			switch b.Symbol(x, y) {
			case tricolor.Black:
				black[i] &^= mask
			case tricolor.Accent:
				if b.mono {
					black[i] &^= mask
				} else {
					accent[i] &^= mask
				}
			}
		}
	}
	return black, accent
}
