package screen

import "fmt"

// Select blits sp into the session window with its top-left dot at grid
// position (gx, gy).
func (s *Screen) Select(sp *Sprite, gx, gy int) error {
	return s.SelectInto(s.win, sp, gx, gy)
}

// SelectInto blits sp into w, which must come from this Screen. Nothing is
// written unless the whole sprite fits.
func (s *Screen) SelectInto(w *Window, sp *Sprite, gx, gy int) error {
	if w == nil || sp == nil {
		return fmt.Errorf("screen: select: nil window or sprite: %w", ErrInvalidArgument)
	}
	g := s.geom
	if len(w.pix) != g.WindowLengthX2 {
		return fmt.Errorf("screen: select: window of %d bytes, want %d: %w", len(w.pix), g.WindowLengthX2, ErrInvalidArgument)
	}
	if sp.dSiSp != g.DSiSp {
		return fmt.Errorf("screen: select: sprite compiled for dot pitch %d, window uses %d: %w", sp.dSiSp, g.DSiSp, ErrInvalidArgument)
	}
	if gx < 0 || gy < 0 || gx+sp.Width > g.Width || gy+sp.Height > g.Height {
		return fmt.Errorf("screen: select: %dx%d sprite at (%d,%d) outside %dx%d grid: %w",
			sp.Width, sp.Height, gx, gy, g.Width, g.Height, ErrInvalidArgument)
	}

	bg := s.r.colors[ColorBackground]
	pw := sp.PixelWidth()
	srcWidthX2 := pw * 2
	base := gx*g.DSiSpX2 + gy*g.DSiSpWindowWidthX2

	for i := 0; i < sp.PixelHeight(); i++ {
		src := i * srcWidthX2
		dst := i*g.WindowWidthX2 + base

		var holes []bool
		if sp.holes != nil {
			holes = sp.holes[i*pw : (i+1)*pw]
		}
		slice(sp.pix[src:src+srcWidthX2], w.pix[dst:dst+srcWidthX2], sp.Mode, bg, holes)
	}
	return nil
}

// slice copies one sprite row into the window according to mode. src and dst
// have equal length; holes, when set, has one entry per pixel.
func slice(src, dst []byte, mode TransparencyMode, bg [2]byte, holes []bool) {
	switch mode {
	case WholeImageBackground:
		for i := 0; i+1 < len(src); i += 2 {
			if src[i] == bg[0] && src[i+1] == bg[1] {
				continue
			}
			dst[i] = src[i]
			dst[i+1] = src[i+1]
		}
	case InteriorSeed:
		if holes == nil {
			copy(dst, src)
			return
		}
		for i := 0; i+1 < len(src); i += 2 {
			if holes[i/2] {
				continue
			}
			dst[i] = src[i]
			dst[i+1] = src[i+1]
		}
	default:
		copy(dst, src)
	}
}
