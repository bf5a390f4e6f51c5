package bmp

import (
	"errors"
	"fmt"
	"io"
)

// An UnsupportedError reports that the input is not a bitmap, or is a bitmap
// variant this package does not decode. No pixels are emitted.
type UnsupportedError string

func (e UnsupportedError) Error() string { return "bmp: unsupported feature: " + string(e) }

// Header is the parsed prefix of a bitmap file.
type Header struct {
	FileSize    uint32
	DataOffset  uint32
	HeaderSize  uint32
	Width       int  // Nothing is drawn unless positive
	Height      int  // Never negative, see TopDown
	TopDown     bool // Rows stored top to bottom, from a negative height
	Planes      uint16
	BitCount    uint16
	Compression uint32
}

// RowSize returns the padded length in bytes of one row of pixel data.
func (h Header) RowSize() int {
	return RowSize(h.Width, int(h.BitCount))
}

// RGB565 reports whether 16-bit samples are 5-6-5 rather than 5-5-5.
func (h Header) RGB565() bool {
	return h.Compression != compressionRGB
}

// RowSize returns the length in bytes of a row of width pixels at depth bits
// per pixel, rounded up to a 4-byte boundary. Packed depths are first
// rounded up to a whole byte.
func RowSize(width, depth int) int {
	if depth < 8 {
		return ((width*depth+8-depth)/8 + 3) &^ 3
	}
	return (width*depth/8 + 3) &^ 3
}

// ReadHeader parses the bitmap header from the start of r. If the signature
// does not match, nothing past it is read.
func ReadHeader(r io.ReadSeeker) (Header, error) {
	return readHeader(newReader(r))
}

func readHeader(r *reader) (Header, error) {
	var h Header

	sig, err := r.uint16()
	if err != nil {
		return h, truncated(err, "not a bitmap")
	}
	if sig != signature {
		return h, UnsupportedError("not a bitmap")
	}

	var creator, width, height uint32
	for _, field := range []*uint32{&h.FileSize, &creator, &h.DataOffset, &h.HeaderSize, &width, &height} {
		if *field, err = r.uint32(); err != nil {
			return h, truncated(err, "truncated header")
		}
	}
	if h.Planes, err = r.uint16(); err != nil {
		return h, truncated(err, "truncated header")
	}
	if h.BitCount, err = r.uint16(); err != nil {
		return h, truncated(err, "truncated header")
	}
	if h.Compression, err = r.uint32(); err != nil {
		return h, truncated(err, "truncated header")
	}

	h.Width = int(int32(width))
	signed := int64(int32(height))
	if signed < 0 {
		signed = -signed
		h.TopDown = true
	}
	h.Height = int(signed)

	if h.Planes != 1 {
		return h, UnsupportedError(fmt.Sprintf("%d planes", h.Planes))
	}
	if h.Compression != compressionRGB && h.Compression != compressionBitFields {
		return h, UnsupportedError(fmt.Sprintf("compression %d", h.Compression))
	}
	switch h.BitCount {
	case 1, 4, 8, 16, 24:
	default:
		return h, UnsupportedError(fmt.Sprintf("bit count %d", h.BitCount))
	}

	return h, nil
}

// truncated reports a header cut short by the end of the stream as an
// unsupported bitmap. Other read failures are returned as they are.
func truncated(err error, feature string) error {
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return UnsupportedError(feature)
	}
	return err
}
