package hal

// RGB565 packs 8-bit channels into rrrrrggggggbbbbb.
func RGB565(r, g, b uint8) uint16 {
	rr := uint16(r>>3) & 0x1F
	gg := uint16(g>>2) & 0x3F
	bb := uint16(b>>3) & 0x1F
	return (rr << 11) | (gg << 5) | bb
}

// RGB888From565 expands a 16-bit pixel, replicating the high bits into the
// low ones so full-scale channels stay at 0xFF.
func RGB888From565(p uint16) (r, g, b uint8) {
	rr := uint8((p >> 11) & 0x1F)
	gg := uint8((p >> 5) & 0x3F)
	bb := uint8(p & 0x1F)

	r = rr<<3 | rr>>2
	g = gg<<2 | gg>>4
	b = bb<<3 | bb>>2
	return r, g, b
}
