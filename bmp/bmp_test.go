package bmp

import (
	"bytes"
	"encoding/binary"
	"image/color"
	"io"

	"github.com/timcal/epaper/tricolor"
)

type fixture struct {
	width       int32
	height      int32 // negative for top-down
	depth       uint16
	planes      uint16
	compression uint32
	palette     []color.RGBA
	rows        [][]byte // file order, unpadded
}

func (f fixture) bytes() []byte {
	planes := f.planes
	if planes == 0 {
		planes = 1
	}

	var pal []byte
	if f.depth <= 8 {
		pal = make([]byte, int(paletteEntrySize)<<f.depth)
		for i, c := range f.palette {
			copy(pal[i*paletteEntrySize:], []byte{c.B, c.G, c.R, 0})
		}
	}

	rowSize := RowSize(int(f.width), int(f.depth))
	offset := uint32(paletteOffset + len(pal))

	b := new(bytes.Buffer)
	le := func(v interface{}) { _ = binary.Write(b, binary.LittleEndian, v) }
	le(uint16(signature))
	le(offset + uint32(rowSize*len(f.rows)))
	le(uint32(0))
	le(offset)
	le(uint32(40))
	le(f.width)
	le(f.height)
	le(planes)
	le(f.depth)
	le(f.compression)
	b.Write(make([]byte, paletteOffset-b.Len()))
	b.Write(pal)
	for _, row := range f.rows {
		padded := make([]byte, rowSize)
		copy(padded, row)
		b.Write(padded)
	}
	return b.Bytes()
}

func (f fixture) reader() *countingReader {
	return &countingReader{r: bytes.NewReader(f.bytes())}
}

type countingReader struct {
	r     io.ReadSeeker
	reads int
	seeks int
}

func (c *countingReader) Read(p []byte) (int, error) {
	c.reads++
	return c.r.Read(p)
}

func (c *countingReader) Seek(offset int64, whence int) (int64, error) {
	c.seeks++
	return c.r.Seek(offset, whence)
}

type pixel struct {
	X, Y int
	S    tricolor.Symbol
}

type recorder struct {
	width, height int
	pixels        []pixel
}

func (r *recorder) Width() int  { return r.width }
func (r *recorder) Height() int { return r.height }

func (r *recorder) DrawPixel(x, y int, s tricolor.Symbol) {
	r.pixels = append(r.pixels, pixel{x, y, s})
}

var (
	white = color.RGBA{0xff, 0xff, 0xff, 0xff}
	black = color.RGBA{0x00, 0x00, 0x00, 0xff}
	red   = color.RGBA{0xff, 0x00, 0x00, 0xff}
)

func bgr(c color.RGBA) []byte {
	return []byte{c.B, c.G, c.R}
}
