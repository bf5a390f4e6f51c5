package bmp

import "github.com/timcal/epaper/tricolor"

// palette holds the classification of every color table entry, one bit per
// entry in each bitmap.
type palette struct {
	whitish [maxPaletteEntries / 8]byte
	colored [maxPaletteEntries / 8]byte
}

func (p *palette) load(r *reader, depth int, withColor bool) error {
	if err := r.seek(paletteOffset); err != nil {
		return err
	}

	var entry [paletteEntrySize]byte
	for pn := 0; pn < 1<<uint(depth); pn++ {
		if err := r.readFull(entry[:]); err != nil {
			return err
		}
		blue, green, red := entry[0], entry[1], entry[2]

		i, bit := pn/8, byte(1)<<uint(pn%8)
		if pn%8 == 0 {
			p.whitish[i] = 0
			p.colored[i] = 0
		}
		if tricolor.Whitish(red, green, blue, withColor) {
			p.whitish[i] |= bit
		}
		if tricolor.Colored(red, green, blue) {
			p.colored[i] |= bit
		}
	}
	return nil
}

func (p *palette) lookup(pn byte) (whitish, colored bool) {
	bit := byte(1) << (pn % 8)
	return p.whitish[pn/8]&bit != 0, p.colored[pn/8]&bit != 0
}
