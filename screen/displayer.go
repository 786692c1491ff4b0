package screen

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"tinygo.org/x/drivers"
)

// Displayer exposes the session window as a drivers.Displayer whose pixels
// are grid dots, so tinyfont and tinydraw can draw on the dot matrix
// directly. Dark colors paint the outline color and light ones the fill
// color; fully transparent pixels are skipped.
type Displayer struct {
	s *Screen
}

var _ drivers.Displayer = (*Displayer)(nil)

// Displayer returns a drivers.Displayer drawing into the session window.
func (s *Screen) Displayer() *Displayer { return &Displayer{s: s} }

func (d *Displayer) Size() (x, y int16) {
	return int16(d.s.geom.Width), int16(d.s.geom.Height)
}

func (d *Displayer) SetPixel(x, y int16, c color.RGBA) {
	ix, iy := int(x), int(y)
	if ix < 0 || iy < 0 || ix >= d.s.geom.Width || iy >= d.s.geom.Height || c.A == 0 {
		return
	}
	d.s.r.writeDot(d.s.win.pix, ix, iy, colorIndexFor(c), d.s.geom.Width)
}

// Display pushes the window.
func (d *Displayer) Display() error { return d.s.Push() }

func colorIndexFor(c color.RGBA) ColorIndex {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return ColorFill
	}
	if l, _, _ := cf.Lab(); l < 0.5 {
		return ColorOutline
	}
	return ColorFill
}
