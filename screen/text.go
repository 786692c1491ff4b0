package screen

import (
	"fmt"
	"image"
	"image/color"

	"dotlcd/bitmap"

	"tinygo.org/x/tinyfont"
)

// canvas is a 1-bit drivers.Displayer on the logical grid. Any pixel drawn
// with a non-zero alpha is set.
type canvas struct {
	w, h    int
	content []byte
}

func newCanvas(w, h int) *canvas {
	return &canvas{w: w, h: h, content: make([]byte, bitmap.Len(w, h))}
}

func (c *canvas) Size() (x, y int16) { return int16(c.w), int16(c.h) }

func (c *canvas) SetPixel(x, y int16, col color.RGBA) {
	ix, iy := int(x), int(y)
	if ix < 0 || iy < 0 || ix >= c.w || iy >= c.h || col.A == 0 {
		return
	}
	bitmap.Set(c.content, c.w, ix, iy, true)
}

func (c *canvas) Display() error { return nil }

// TextBitmap renders str with font into a packed bitmap one line of the
// font's advance high.
func TextBitmap(font tinyfont.Fonter, str string) (content []byte, width, height int, err error) {
	_, outbox := tinyfont.LineWidth(font, str)
	width = int(outbox)
	height = int(font.GetYAdvance())
	if width <= 0 || height <= 0 {
		return nil, 0, 0, fmt.Errorf("screen: text %q renders empty: %w", str, ErrInvalidArgument)
	}

	c := newCanvas(width, height)
	tinyfont.WriteLine(c, font, 0, int16(height-1), str, color.RGBA{A: 0xFF})
	return c.content, width, height, nil
}

// Text compiles str into a sprite. seed has the same meaning as for Sprite;
// WholeImage gives glyphs over whatever is already in the window.
func (s *Screen) Text(font tinyfont.Fonter, str string, seed *image.Point) (*Sprite, error) {
	content, w, h, err := TextBitmap(font, str)
	if err != nil {
		return nil, err
	}
	return s.Sprite(w, h, content, seed)
}
