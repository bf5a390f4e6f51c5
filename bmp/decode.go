package bmp

import (
	"io"

	"github.com/timcal/epaper/tricolor"
)

// A Sink receives decoded pixels. Width and Height bound the addressable
// area; DrawPixel is only called with coordinates inside it.
type Sink interface {
	Width() int
	Height() int
	DrawPixel(x, y int, s tricolor.Symbol)
}

// Options control where and how an image is drawn.
type Options struct {
	// X and Y place the top-left corner of the image on the Sink.
	X, Y int
	// WithColor enables the accent symbol. It is ignored for 1-bit images.
	WithColor bool
}

// A Decoder holds the scratch space used while decoding. The zero value is
// ready to use and may be reused for successive images, but not concurrently.
type Decoder struct {
	win window
	pal palette
}

// Decode reads a bitmap from r and draws it onto s.
func Decode(r io.ReadSeeker, s Sink, opts Options) (Header, error) {
	var d Decoder
	return d.Decode(r, s, opts)
}

// Decode reads a bitmap from r and draws it onto s, clipped to the Sink's
// bounds. The returned Header is zero unless the header was read and
// accepted. Images with no columns or rows draw nothing.
//
// Rows stored bottom to top are read from the end of the pixel data so the
// visible top of the image is the part kept when the height is clipped.
func (d *Decoder) Decode(r io.ReadSeeker, s Sink, opts Options) (Header, error) {
	width, height := s.Width(), s.Height()
	if opts.X >= width || opts.Y >= height {
		return Header{}, ErrOutside
	}

	rd := newReader(r)

	h, err := readHeader(rd)
	if err != nil {
		return Header{}, err
	}
	if h.Width < 1 || h.Height == 0 {
		return h, nil
	}

	withColor := opts.WithColor && h.BitCount != 1

	smp, err := d.sampler(rd, h, withColor)
	if err != nil {
		return h, err
	}

	w, ht := h.Width, h.Height
	if opts.X+w-1 >= width {
		w = width - opts.X
	}
	if opts.Y+ht-1 >= height {
		ht = height - opts.Y
	}

	rowSize := int64(h.RowSize())
	pos := int64(h.DataOffset)
	if !h.TopDown {
		pos += int64(h.Height-ht) * rowSize
	}

	for row := 0; row < ht; row, pos = row+1, pos+rowSize {
		if err := rd.seek(pos); err != nil {
			return h, err
		}
		d.win.reset(rd, int(rowSize))
		smp.reset()

		y := opts.Y + row
		if !h.TopDown {
			y = opts.Y + ht - row - 1
		}

		for col := 0; col < w; col++ {
			sym, err := smp.sample(&d.win)
			if err != nil {
				return h, err
			}
			x := opts.X + col
			if x < 0 || y < 0 {
				continue
			}
			s.DrawPixel(x, y, sym)
		}
	}

	return h, nil
}

func (d *Decoder) sampler(r *reader, h Header, withColor bool) (sampler, error) {
	switch h.BitCount {
	case 16:
		return &rgb16Sampler{rgb565: h.RGB565(), withColor: withColor}, nil
	case 24:
		return &rgb24Sampler{withColor: withColor}, nil
	}
	if err := d.pal.load(r, int(h.BitCount), withColor); err != nil {
		return nil, err
	}
	return newPackedSampler(&d.pal, int(h.BitCount), withColor), nil
}
