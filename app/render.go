package app

import (
	"fmt"
	"image"

	"dotlcd/screen"

	"tinygo.org/x/tinyfont"
)

// 3×3 cell bitmaps, one row per byte.
var (
	segmentBitmap = []byte{0b11100000, 0b10100000, 0b11100000}
	headBitmap    = []byte{0b11100000, 0b11100000, 0b11100000}
	deadBitmap    = []byte{0b10100000, 0b01000000, 0b10100000}
	foodBitmap    = []byte{0b01000000, 0b10100000, 0b01000000}
)

const maxLabels = 64

// renderer composites the game into the screen window. The status line
// occupies the top font-height rows of the grid and the playfield the rest.
type renderer struct {
	scr  *screen.Screen
	font tinyfont.Fonter

	top  int
	cols int
	rows int

	segment *screen.Sprite
	head    *screen.Sprite
	dead    *screen.Sprite
	food    *screen.Sprite

	labels map[string]*screen.Sprite
}

func newRenderer(scr *screen.Screen) (*renderer, error) {
	font := &tinyfont.TomThumb
	geom := scr.Geometry()

	r := &renderer{
		scr:    scr,
		font:   font,
		top:    int(font.GetYAdvance()),
		labels: make(map[string]*screen.Sprite),
	}
	r.cols = geom.Width / cellDots
	r.rows = (geom.Height - r.top) / cellDots
	if r.cols < 4 || r.rows < 4 {
		return nil, fmt.Errorf("app: %dx%d grid leaves no room for the playfield: %w",
			geom.Width, geom.Height, screen.ErrInvalidArgument)
	}

	var err error
	// Hollow body: the flood fill lets the window show through the middle.
	if r.segment, err = scr.CachedSprite(cellDots, cellDots, segmentBitmap, &image.Point{X: 1, Y: 1}); err != nil {
		return nil, err
	}
	if r.head, err = scr.CachedSprite(cellDots, cellDots, headBitmap, nil); err != nil {
		return nil, err
	}
	if r.dead, err = scr.CachedSprite(cellDots, cellDots, deadBitmap, nil); err != nil {
		return nil, err
	}
	if r.food, err = scr.CachedSprite(cellDots, cellDots, foodBitmap, &screen.WholeImage); err != nil {
		return nil, err
	}
	return r, nil
}

// draw composites one frame and pushes it. A failed frame leaves the window
// blank for the next attempt.
func (r *renderer) draw(g *game) error {
	if err := r.compose(g); err != nil {
		r.scr.Clear()
		return fmt.Errorf("app: compose: %w", err)
	}
	if err := r.scr.Push(); err != nil {
		r.scr.Clear()
		return fmt.Errorf("app: push: %w", err)
	}
	return nil
}

func (r *renderer) compose(g *game) error {
	if err := r.put(r.food, g.food); err != nil {
		return err
	}
	for i := len(g.snake) - 1; i >= 0; i-- {
		sp := r.segment
		if i == 0 {
			sp = r.head
			if !g.alive {
				sp = r.dead
			}
		}
		if err := r.put(sp, g.snake[i]); err != nil {
			return err
		}
	}
	return r.status(g)
}

func (r *renderer) put(sp *screen.Sprite, p point) error {
	return r.scr.Select(sp, p.x*cellDots, r.top+p.y*cellDots)
}

func statusText(g *game) string {
	s := fmt.Sprintf("%03d", g.score)
	switch {
	case g.attract:
		s += " DEMO"
	case !g.alive:
		s += " OVER"
	case g.paused:
		s += " PAUSE"
	}
	return s
}

func (r *renderer) status(g *game) error {
	sp, err := r.label(statusText(g))
	if err != nil {
		return err
	}
	if sp.Width > r.scr.Geometry().Width || sp.Height > r.top {
		return nil
	}
	return r.scr.Select(sp, 0, 0)
}

func (r *renderer) label(s string) (*screen.Sprite, error) {
	if sp, ok := r.labels[s]; ok {
		return sp, nil
	}
	sp, err := r.scr.Text(r.font, s, &screen.WholeImage)
	if err != nil {
		return nil, err
	}
	if len(r.labels) >= maxLabels {
		clear(r.labels)
	}
	r.labels[s] = sp
	return sp, nil
}
