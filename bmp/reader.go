package bmp

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	goerrors "github.com/go-errors/errors"
)

// ErrOutside is returned when the requested origin lies beyond the Sink's
// bounds. Nothing is read from the stream in that case.
var ErrOutside = errors.New("bmp: origin outside drawable area")

var errRowExhausted = errors.New("row data exhausted")

// An IOError reports a failed read or seek. A stream that simply ends inside
// the header is an UnsupportedError instead. Pixels already handed to the
// Sink are left in place.
type IOError struct {
	Op     string
	Offset int64
	Err    error

	trace *goerrors.Error
}

func newIOError(op string, off int64, err error) *IOError {
	return &IOError{
		Op:     op,
		Offset: off,
		Err:    err,
		trace:  goerrors.Wrap(err, 1),
	}
}

func (e *IOError) Error() string {
	return fmt.Sprintf("bmp: %s at offset %d: %v", e.Op, e.Offset, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Stack returns the call stack of the failed read or seek, formatted like
// runtime/debug.Stack.
func (e *IOError) Stack() []byte {
	if e.trace == nil {
		return nil
	}
	return e.trace.Stack()
}

// reader wraps the source stream with fixed-width little-endian reads. It
// never reads ahead of what the caller asks for.
type reader struct {
	r    io.ReadSeeker
	off  int64
	size int64 // -1 until the first seek
	tmp  [4]byte
}

func newReader(r io.ReadSeeker) *reader {
	return &reader{r: r, size: -1}
}

func (r *reader) readFull(b []byte) error {
	n, err := io.ReadFull(r.r, b)
	r.off += int64(n)
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return newIOError("read", r.off, err)
	}
	return nil
}

func (r *reader) uint16() (uint16, error) {
	if err := r.readFull(r.tmp[:2]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(r.tmp[:2]), nil
}

func (r *reader) uint32() (uint32, error) {
	if err := r.readFull(r.tmp[:4]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(r.tmp[:4]), nil
}

// read fills as much of b as the stream allows and returns the count. Only
// a read that yields nothing at all is an error.
func (r *reader) read(b []byte) (int, error) {
	n, err := io.ReadFull(r.r, b)
	r.off += int64(n)
	if n > 0 {
		return n, nil
	}
	if err == nil || err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return 0, newIOError("read", r.off, err)
}

// seek moves to an absolute offset, failing if it lies past the end of the
// stream.
func (r *reader) seek(off int64) error {
	if r.size < 0 {
		size, err := r.r.Seek(0, io.SeekEnd)
		if err != nil {
			return newIOError("seek", off, err)
		}
		r.size = size
	}
	if off < 0 || off > r.size {
		return newIOError("seek", off, io.ErrUnexpectedEOF)
	}
	if _, err := r.r.Seek(off, io.SeekStart); err != nil {
		return newIOError("seek", off, err)
	}
	r.off = off
	return nil
}

// window streams one row's bytes through a fixed buffer.
type window struct {
	r      *reader
	buf    [windowSize]byte
	remain int // row bytes not yet pulled from the stream
	n      int // valid bytes in buf
	idx    int
}

func (w *window) reset(r *reader, rowSize int) {
	w.r = r
	w.remain = rowSize
	w.n = 0
	w.idx = 0
}

func (w *window) next() (byte, error) {
	if w.idx >= w.n {
		if w.remain == 0 {
			return 0, newIOError("read", w.r.off, errRowExhausted)
		}
		n, err := w.r.read(w.buf[:min(w.remain, len(w.buf))])
		if err != nil {
			return 0, err
		}
		w.remain -= n
		w.n = n
		w.idx = 0
	}
	b := w.buf[w.idx]
	w.idx++
	return b, nil
}
