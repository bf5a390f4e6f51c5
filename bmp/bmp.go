/*
Package bmp implements a streaming Windows bitmap decoder that reduces every
pixel to a tricolor.Symbol as it is read.

The image is never held in memory. Each visible row is located with a seek and
pulled through a small fixed window of windowSize bytes, so peak memory does
not depend on the image dimensions. Uncompressed 1, 4, 8, 16 (5-5-5 or 5-6-5)
and 24 bits per pixel are supported. Indexed images have their color table
read from the fixed offset 54 and classified up front, one bit per entry for
"whitish" and one for "colored".

Decoded pixels are handed to a Sink one at a time in row order, already
clipped to the Sink's bounds.
*/
package bmp

const (
	signature = 0x4d42 // "BM"

	paletteOffset     = 54
	paletteEntrySize  = 4
	maxPaletteEntries = 256

	compressionRGB       = 0
	compressionBitFields = 3

	windowPixels = 20
	windowSize   = 3 * windowPixels // whole 24 and 16-bit pixels per refill
)
