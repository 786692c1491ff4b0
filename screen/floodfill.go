package screen

import "image"

// floodFill turns the 4-connected region of same-colored dots around seed into
// background. Dots of any other color bound the region and are left alone.
// The cleared dot blocks, and the spacing between neighbouring cleared dots,
// are recorded in sp.holes.
func (r *raster) floodFill(sp *Sprite, seed image.Point) {
	w, h := sp.Width, sp.Height
	start := r.readDot(sp.pix, seed.X, seed.Y, w)
	if start == r.colors[ColorBackground] {
		return
	}

	visited := make([]bool, w*h)
	stack := []image.Point{seed}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		i := p.Y*w + p.X
		if visited[i] {
			continue
		}
		visited[i] = true

		for _, n := range [4]image.Point{
			{X: p.X, Y: p.Y - 1},
			{X: p.X, Y: p.Y + 1},
			{X: p.X - 1, Y: p.Y},
			{X: p.X + 1, Y: p.Y},
		} {
			if n.X < 0 || n.Y < 0 || n.X >= w || n.Y >= h {
				continue
			}
			if visited[n.Y*w+n.X] {
				continue
			}
			if r.readDot(sp.pix, n.X, n.Y, w) != start {
				continue
			}
			stack = append(stack, n)
		}
	}

	pw := sp.PixelWidth()
	sp.holes = make([]bool, pw*sp.PixelHeight())
	filled := func(x, y int) bool { return x < w && y < h && visited[y*w+x] }
	mark := func(px, py, cols, rows int) {
		for i := 0; i < rows; i++ {
			row := (py + i) * pw
			for j := 0; j < cols; j++ {
				sp.holes[row+px+j] = true
			}
		}
	}
	gap := r.dSiSp - r.dotSize
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !visited[y*w+x] {
				continue
			}
			r.writeDot(sp.pix, x, y, ColorBackground, w)
			px, py := r.dSiSp*x, r.dSiSp*y
			mark(px, py, r.dotSize, r.dotSize)
			if gap == 0 {
				continue
			}
			// Spacing between two cleared dots belongs to the hole too.
			right, down := filled(x+1, y), filled(x, y+1)
			if right {
				mark(px+r.dotSize, py, gap, r.dotSize)
			}
			if down {
				mark(px, py+r.dotSize, r.dotSize, gap)
			}
			if right && down && filled(x+1, y+1) {
				mark(px+r.dotSize, py+r.dotSize, gap, gap)
			}
		}
	}
}
