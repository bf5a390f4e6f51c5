package main

import (
	"image"
	"image/png"
	"io"
	"os"

	"github.com/mattn/go-sixel"
	"github.com/timcal/epaper/display"
	"golang.org/x/image/draw"
)

func scale(img *image.Paletted, n int) image.Image {
	if n <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewPaletted(image.Rect(0, 0, b.Dx()*n, b.Dy()*n), img.Palette)
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

func writePNG(file string, img *image.Paletted, n int) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}

	if err := png.Encode(f, scale(img, n)); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// writePlanes writes the black plane followed by the accent plane.
func writePlanes(file string, buf *display.Buffer) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}

	black, accent := buf.Planes()
	for _, plane := range [][]byte{black, accent} {
		if _, err := f.Write(plane); err != nil {
			f.Close()
			return err
		}
	}

	return f.Close()
}

func writeSixel(w io.Writer, img *image.Paletted, n int) error {
	return sixel.NewEncoder(w).Encode(scale(img, n))
}
