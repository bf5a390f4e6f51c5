package bmp

import "github.com/timcal/epaper/tricolor"

// A sampler turns the next pixel in the row window into a symbol. One is
// chosen per image according to its depth.
type sampler interface {
	reset()
	sample(w *window) (tricolor.Symbol, error)
}

// packedSampler handles 1, 4 and 8-bit palette indices, most significant
// bits first.
type packedSampler struct {
	pal       *palette
	depth     uint
	mask      byte
	withColor bool

	cur  byte
	bits uint
}

func newPackedSampler(pal *palette, depth int, withColor bool) *packedSampler {
	return &packedSampler{
		pal:       pal,
		depth:     uint(depth),
		mask:      0xff >> (8 - uint(depth)),
		withColor: withColor,
	}
}

func (s *packedSampler) reset() {
	s.cur, s.bits = 0, 0
}

func (s *packedSampler) sample(w *window) (tricolor.Symbol, error) {
	if s.bits == 0 {
		b, err := w.next()
		if err != nil {
			return tricolor.Black, err
		}
		s.cur, s.bits = b, 8
	}
	pn := (s.cur >> (8 - s.depth)) & s.mask
	s.cur <<= s.depth
	s.bits -= s.depth

	whitish, colored := s.pal.lookup(pn)
	return tricolor.Resolve(whitish, colored, s.withColor), nil
}

// rgb16Sampler expands 5-5-5 or 5-6-5 samples to 8 bits per channel by
// shifting, without replicating the high bits.
type rgb16Sampler struct {
	rgb565    bool
	withColor bool
}

func (s *rgb16Sampler) reset() {}

func (s *rgb16Sampler) sample(w *window) (tricolor.Symbol, error) {
	lsb, err := w.next()
	if err != nil {
		return tricolor.Black, err
	}
	msb, err := w.next()
	if err != nil {
		return tricolor.Black, err
	}

	var red, green, blue uint8
	blue = (lsb & 0x1f) << 3
	if s.rgb565 {
		green = (msb&0x07)<<5 | (lsb&0xe0)>>3
		red = msb & 0xf8
	} else {
		green = (msb&0x03)<<6 | (lsb&0xe0)>>2
		red = (msb & 0x7c) << 1
	}
	return tricolor.Classify(red, green, blue, s.withColor), nil
}

// rgb24Sampler reads blue, green, red byte triples.
type rgb24Sampler struct {
	withColor bool
}

func (s *rgb24Sampler) reset() {}

func (s *rgb24Sampler) sample(w *window) (tricolor.Symbol, error) {
	var px [3]byte
	for i := range px {
		b, err := w.next()
		if err != nil {
			return tricolor.Black, err
		}
		px[i] = b
	}
	return tricolor.Classify(px[2], px[1], px[0], s.withColor), nil
}
