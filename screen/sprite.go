package screen

import (
	"fmt"
	"image"

	"dotlcd/bitmap"
)

// TransparencyMode decides which sprite pixels overwrite the window.
type TransparencyMode uint8

const (
	// Opaque copies every pixel.
	Opaque TransparencyMode = iota
	// InteriorSeed skips the region cleared by the compile-time flood fill.
	InteriorSeed
	// WholeImageBackground skips every background-colored pixel.
	WholeImageBackground
)

func (m TransparencyMode) String() string {
	switch m {
	case Opaque:
		return "opaque"
	case InteriorSeed:
		return "interior-seed"
	case WholeImageBackground:
		return "whole-image"
	default:
		return fmt.Sprintf("TransparencyMode(%d)", uint8(m))
	}
}

// WholeImage is the seed that selects WholeImageBackground.
var WholeImage = image.Point{X: -1, Y: -1}

// Sprite is a compiled, magnified bitmap. It is immutable once returned and
// may be shared between goroutines.
type Sprite struct {
	Width  int
	Height int
	Mode   TransparencyMode

	dSiSp int
	pix   []byte

	// holes marks pixels cleared by the flood fill; nil unless InteriorSeed.
	holes []bool
}

// PixelWidth is the magnified width in device pixels.
func (s *Sprite) PixelWidth() int { return s.dSiSp * s.Width }

// PixelHeight is the magnified height in device pixels.
func (s *Sprite) PixelHeight() int { return s.dSiSp * s.Height }

// Pix returns the RGB565 pixel data. Callers must not modify it.
func (s *Sprite) Pix() []byte { return s.pix }

// Transparent reports whether device pixel (x, y) of the sprite was cleared by
// the flood fill.
func (s *Sprite) Transparent(x, y int) bool {
	if s.holes == nil {
		return false
	}
	return s.holes[y*s.PixelWidth()+x]
}

// Sprite compiles a packed 1-bit bitmap. Set bits use the outline color and
// clear bits the fill color.
//
// seed selects the transparency mode: nil for Opaque, WholeImage for
// WholeImageBackground, or a grid point inside the sprite for InteriorSeed,
// in which case the same-colored region around it is flood-filled with the
// background color.
func (s *Screen) Sprite(width, height int, content []byte, seed *image.Point) (*Sprite, error) {
	if err := bitmap.Check(content, width, height); err != nil {
		return nil, fmt.Errorf("screen: sprite: %w: %w", ErrInvalidArgument, err)
	}

	mode := Opaque
	if seed != nil {
		switch {
		case *seed == WholeImage:
			mode = WholeImageBackground
		case seed.X < 0 || seed.Y < 0 || seed.X >= width || seed.Y >= height:
			return nil, fmt.Errorf("screen: sprite seed %v outside %dx%d: %w", *seed, width, height, ErrInvalidArgument)
		default:
			mode = InteriorSeed
		}
	}

	sp := &Sprite{
		Width:  width,
		Height: height,
		Mode:   mode,
		dSiSp:  s.r.dSiSp,
	}
	sp.pix = make([]byte, sp.PixelWidth()*sp.PixelHeight()*2)
	s.r.fill(sp.pix, ColorBackground)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			ci := ColorFill
			if bitmap.Bit(content, width, x, y) {
				ci = ColorOutline
			}
			s.r.writeDot(sp.pix, x, y, ci, width)
		}
	}

	if mode == InteriorSeed {
		s.r.floodFill(sp, *seed)
	}
	return sp, nil
}

type spriteKey struct {
	width   int
	height  int
	content string
	seeded  bool
	seed    image.Point
}

// CachedSprite is Sprite memoised on its arguments. Use it for bitmaps that
// never change.
func (s *Screen) CachedSprite(width, height int, content []byte, seed *image.Point) (*Sprite, error) {
	k := spriteKey{width: width, height: height, content: string(content)}
	if seed != nil {
		k.seeded = true
		k.seed = *seed
	}
	if sp, ok := s.cache[k]; ok {
		return sp, nil
	}
	sp, err := s.Sprite(width, height, content, seed)
	if err != nil {
		return nil, err
	}
	if s.cache == nil {
		s.cache = make(map[spriteKey]*Sprite)
	}
	s.cache[k] = sp
	return sp, nil
}
