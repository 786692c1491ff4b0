package screen

// Geometry holds the extents derived from a Config. Fields ending in X2 are
// byte lengths of the matching pixel quantities.
type Geometry struct {
	ScreenWidth  int
	ScreenHeight int

	// Logical grid.
	Width  int
	Height int

	DotSize    int
	DotSpacing int
	DSiSp      int

	// Window placement on the screen, inclusive.
	X0, X1 int
	Y0, Y1 int

	WindowWidth  int
	WindowHeight int
	WindowLength int

	DSiSpX2            int
	WindowWidthX2      int
	WindowLengthX2     int
	DSiSpWindowWidthX2 int
}

// NewGeometry validates cfg and derives the window layout, centered on the
// screen.
func NewGeometry(cfg Config) (Geometry, error) {
	if err := cfg.Validate(); err != nil {
		return Geometry{}, err
	}

	g := Geometry{
		ScreenWidth:  cfg.ScreenWidth,
		ScreenHeight: cfg.ScreenHeight,
		Width:        cfg.Width,
		Height:       cfg.Height,
		DotSize:      cfg.DotSize,
		DotSpacing:   cfg.DotSpacing,
		DSiSp:        cfg.DotSize + cfg.DotSpacing,
	}

	g.WindowWidth = g.DSiSp * g.Width
	g.WindowHeight = g.DSiSp * g.Height
	g.WindowLength = g.WindowWidth * g.WindowHeight

	g.X0 = (g.ScreenWidth - g.WindowWidth) / 2
	g.X1 = g.X0 + g.WindowWidth - 1
	g.Y0 = (g.ScreenHeight - g.WindowHeight) / 2
	g.Y1 = g.Y0 + g.WindowHeight - 1

	g.DSiSpX2 = g.DSiSp * 2
	g.WindowWidthX2 = g.WindowWidth * 2
	g.WindowLengthX2 = g.WindowLength * 2
	g.DSiSpWindowWidthX2 = g.DSiSp * g.WindowWidthX2
	return g, nil
}

// ColumnHeader is the column-address payload: x0 and x1, big-endian.
func (g Geometry) ColumnHeader() [4]byte {
	return addressHeader(g.X0, g.X1)
}

// RowHeader is the row-address payload: y0 and y1, big-endian.
func (g Geometry) RowHeader() [4]byte {
	return addressHeader(g.Y0, g.Y1)
}

func addressHeader(a, b int) [4]byte {
	return [4]byte{byte(a >> 8), byte(a), byte(b >> 8), byte(b)}
}
