package screen

// Window is the magnified pixel buffer for the visible sub-rectangle of the
// screen, plus the blank template it is reset from. A Window has a single
// writer; callers serialize compositing and pushes.
type Window struct {
	pix   []byte
	blank []byte

	columnHeader [4]byte
	rowHeader    [4]byte
}

// newWindow builds the window and its blank template: background spacing with
// every dot in the fill color.
func newWindow(g Geometry, r *raster) *Window {
	w := &Window{
		pix:          make([]byte, g.WindowLengthX2),
		blank:        make([]byte, g.WindowLengthX2),
		columnHeader: g.ColumnHeader(),
		rowHeader:    g.RowHeader(),
	}
	r.fill(w.blank, ColorBackground)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			r.writeDot(w.blank, x, y, ColorFill, g.Width)
		}
	}
	w.Clear()
	return w
}

// Clear resets the window to the blank template.
func (w *Window) Clear() { copy(w.pix, w.blank) }

// Pix returns the live pixel buffer.
func (w *Window) Pix() []byte { return w.pix }

// Blank returns the blank template. Callers must not modify it.
func (w *Window) Blank() []byte { return w.blank }

// ColumnHeader returns the column-address payload.
func (w *Window) ColumnHeader() []byte { return w.columnHeader[:] }

// RowHeader returns the row-address payload.
func (w *Window) RowHeader() []byte { return w.rowHeader[:] }
