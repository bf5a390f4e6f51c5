package epaper

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"strings"
)

// Source opens assets by name. Names may carry a leading slash, so "/a.bmp"
// and "a.bmp" are the same asset. A missing asset is reported with an error
// matching fs.ErrNotExist.
type Source interface {
	Open(name string) (io.ReadSeekCloser, error)
}

// FSSource serves assets from a file system, typically os.DirFS.
type FSSource struct {
	fsys fs.FS
}

// NewFSSource returns a Source reading from fsys.
func NewFSSource(fsys fs.FS) *FSSource {
	return &FSSource{fsys: fsys}
}

// Open opens name, which may carry a leading slash. The file must support
// seeking.
func (s *FSSource) Open(name string) (io.ReadSeekCloser, error) {
	f, err := s.fsys.Open(assetName(name))
	if err != nil {
		return nil, err
	}
	rs, ok := f.(io.ReadSeekCloser)
	if !ok {
		f.Close()
		return nil, fmt.Errorf("%s: not seekable", name)
	}
	return rs, nil
}

// assetName strips the leading slash that device paths carry.
func assetName(name string) string {
	return strings.TrimPrefix(name, "/")
}

type nopCloser struct {
	*bytes.Reader
}

func (nopCloser) Close() error { return nil }
