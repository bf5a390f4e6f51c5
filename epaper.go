/*
Package epaper draws bitmap assets onto tri-color e-paper surfaces.

Assets are looked up by name in a Source, either a plain directory or an
AssetDB, and streamed through the bmp decoder onto a bmp.Sink such as a
display.Buffer. Failures to draw one asset never propagate; they are logged
and reported as a Status so the caller can draw something else instead.
*/
package epaper

import (
	"io"
	"log"

	"github.com/timcal/epaper/bmp"
	"github.com/timcal/epaper/display"
)

var _ bmp.Sink = (*display.Buffer)(nil)

// Renderer draws named assets from a Source onto a Sink.
type Renderer struct {
	src    Source
	sink   bmp.Sink
	logger *log.Logger
	dec    bmp.Decoder
}

// New returns a Renderer. It is not safe for concurrent use. A nil logger
// discards all output.
func New(src Source, sink bmp.Sink, logger *log.Logger) *Renderer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Renderer{
		src:    src,
		sink:   sink,
		logger: logger,
	}
}
