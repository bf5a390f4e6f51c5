package epaper

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/timcal/epaper/bmp"
)

// Status is the outcome of drawing one asset.
type Status int

// Possible outcomes of DrawBitmap.
const (
	Drawn Status = iota
	Outside
	NotFound
	Unsupported
	Failed
)

func (s Status) String() string {
	switch s {
	case Drawn:
		return "drawn"
	case Outside:
		return "outside drawable area"
	case NotFound:
		return "not found"
	case Unsupported:
		return "bitmap format not handled"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// DrawBitmap draws the named asset with its top-left corner at x, y. The
// accent color is only used when withColor is set and the asset has more
// than one bit per pixel. Errors are logged rather than returned; rows drawn
// before a read failure are left on the Sink.
func (r *Renderer) DrawBitmap(name string, x, y int, withColor bool) Status {
	if x >= r.sink.Width() || y >= r.sink.Height() {
		return Outside
	}

	start := time.Now()
	r.logger.Printf("Loading image '%s'\n", name)

	f, err := r.src.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Println("File not found")
			return NotFound
		}
		r.logger.Printf("%s: %s\n", name, err)
		return Failed
	}
	defer f.Close()

	h, err := r.dec.Decode(f, r.sink, bmp.Options{X: x, Y: y, WithColor: withColor})

	var unsupported bmp.UnsupportedError
	switch {
	case errors.As(err, &unsupported):
		r.logger.Printf("bitmap format not handled: %s\n", unsupported)
		return Unsupported
	case errors.Is(err, bmp.ErrOutside):
		return Outside
	}

	r.logHeader(h)

	if err != nil {
		r.logFailure(name, err)
		return Failed
	}

	r.logger.Printf("loaded in %d ms\n", time.Since(start).Milliseconds())
	return Drawn
}

// logFailure logs err with the stack of the read or seek that failed.
func (r *Renderer) logFailure(name string, err error) {
	var ioErr *bmp.IOError
	if errors.As(err, &ioErr) {
		r.logger.Printf("%s: %s\n%s", name, err, ioErr.Stack())
		return
	}
	r.logger.Printf("%s: %s\n", name, err)
}

// logHeader is a no-op for the zero Header returned when parsing failed.
func (r *Renderer) logHeader(h bmp.Header) {
	if h.BitCount == 0 {
		return
	}
	r.logger.Printf("File size: %d\n", h.FileSize)
	r.logger.Printf("Image Offset: %d\n", h.DataOffset)
	r.logger.Printf("Header size: %d\n", h.HeaderSize)
	r.logger.Printf("Bit Depth: %d\n", h.BitCount)
	r.logger.Printf("Image size: %dx%d\n", h.Width, h.Height)
}
