package screen

// raster expands logical dots into dotSize×dotSize pixel blocks. Buffers are
// row-major RGB565, two bytes per pixel, high byte first.
type raster struct {
	dotSize int
	dSiSp   int
	colors  [3][2]byte
}

func (r *raster) writePixel(buf []byte, x, y int, ci ColorIndex, rowWidth int) {
	i := (rowWidth*y + x) * 2
	c := r.colors[ci]
	buf[i] = c[0]
	buf[i+1] = c[1]
}

// writeDot paints the block for grid cell (gx, gy) in a buffer whose rows hold
// gridRowWidth dots. Spacing pixels keep their previous value.
func (r *raster) writeDot(buf []byte, gx, gy int, ci ColorIndex, gridRowWidth int) {
	rowWidth := r.dSiSp * gridRowWidth
	nx := r.dSiSp * gx
	ny := r.dSiSp * gy
	for i := 0; i < r.dotSize; i++ {
		for j := 0; j < r.dotSize; j++ {
			r.writePixel(buf, nx+j, ny+i, ci, rowWidth)
		}
	}
}

// readDot returns the color of grid cell (gx, gy). Every sub-pixel of a dot
// holds the same color, so the top-left one is enough.
func (r *raster) readDot(buf []byte, gx, gy, gridRowWidth int) [2]byte {
	rowWidth := r.dSiSp * gridRowWidth
	i := (rowWidth*r.dSiSp*gy + r.dSiSp*gx) * 2
	return [2]byte{buf[i], buf[i+1]}
}

func (r *raster) fill(buf []byte, ci ColorIndex) {
	c := r.colors[ci]
	for i := 0; i+1 < len(buf); i += 2 {
		buf[i] = c[0]
		buf[i+1] = c[1]
	}
}

// dotFits reports whether a dot at (gx, gy) lies inside a buffer of n bytes
// with gridRowWidth dots per row.
func (r *raster) dotFits(n, gx, gy, gridRowWidth int) bool {
	if gx < 0 || gy < 0 || gridRowWidth <= 0 || gx >= gridRowWidth {
		return false
	}
	rowWidth := r.dSiSp * gridRowWidth
	last := (rowWidth*(r.dSiSp*gy+r.dotSize-1) + r.dSiSp*gx + r.dotSize - 1) * 2
	return last+1 < n
}
