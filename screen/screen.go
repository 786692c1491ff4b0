// Package screen composites 1-bit sprites into a magnified RGB565 window and
// pushes it to an addressed-window display controller.
//
// The logical grid is made of dots. Each dot covers DotSize×DotSize device
// pixels followed by DotSpacing pixels of background, so the window is
// (DotSize+DotSpacing) times the grid in each direction.
package screen

import (
	"fmt"

	"dotlcd/hal"
)

// Options carries optional collaborators.
type Options struct {
	Logger hal.Logger
}

// Screen is one display session: geometry, palette, window and bus.
type Screen struct {
	cfg  Config
	geom Geometry
	pal  Palette
	r    raster
	win  *Window
	bus  hal.Bus
	log  hal.Logger

	cache map[spriteKey]*Sprite
}

// New validates cfg, builds the window and its blank template, and binds the
// session to bus. Nothing is sent until FillScreen or Push.
func New(bus hal.Bus, cfg Config, opts Options) (*Screen, error) {
	if bus == nil {
		return nil, fmt.Errorf("screen: nil bus: %w", ErrInvalidArgument)
	}
	geom, err := NewGeometry(cfg)
	if err != nil {
		return nil, err
	}
	pal, err := Preset(cfg.Palette)
	if err != nil {
		return nil, err
	}

	s := &Screen{
		cfg:  cfg,
		geom: geom,
		pal:  pal,
		r: raster{
			dotSize: geom.DotSize,
			dSiSp:   geom.DSiSp,
			colors:  pal.Colors,
		},
		bus: bus,
		log: opts.Logger,
	}
	s.win = newWindow(geom, &s.r)

	s.logf("screen: palette=%s grid=%dx%d dot=%d+%d window=(%d,%d)-(%d,%d) %d bytes",
		pal.Name, geom.Width, geom.Height, geom.DotSize, geom.DotSpacing,
		geom.X0, geom.Y0, geom.X1, geom.Y1, geom.WindowLengthX2)
	return s, nil
}

func (s *Screen) logf(format string, args ...any) {
	if s.log == nil {
		return
	}
	s.log.WriteLineString(fmt.Sprintf(format, args...))
}

func (s *Screen) Config() Config     { return s.cfg }
func (s *Screen) Geometry() Geometry { return s.geom }
func (s *Screen) Palette() Palette   { return s.pal }
func (s *Screen) Window() *Window    { return s.win }

// NewWindow returns an additional window with this session's geometry, for
// off-screen compositing with SelectInto.
func (s *Screen) NewWindow() *Window { return newWindow(s.geom, &s.r) }

// Clear resets the session window to the blank template.
func (s *Screen) Clear() { s.win.Clear() }

// Push sends the window to the display: column range, row range, then the
// pixel data. On success the window is reset to the blank template. On
// failure the window is left as it was so the caller may retry.
func (s *Screen) Push() error {
	return s.PushWindow(s.win)
}

// PushWindow is Push for a window obtained from NewWindow.
func (s *Screen) PushWindow(w *Window) error {
	if w == nil {
		return fmt.Errorf("screen: push: nil window: %w", ErrInvalidArgument)
	}
	if err := s.write(hal.CmdColumnAddressSet, w.ColumnHeader()); err != nil {
		return err
	}
	if err := s.write(hal.CmdRowAddressSet, w.RowHeader()); err != nil {
		return err
	}
	if err := s.write(hal.CmdMemoryWrite, w.pix); err != nil {
		return err
	}
	w.Clear()
	return nil
}

func (s *Screen) write(cmd byte, data []byte) error {
	if err := s.bus.WriteCmdData(cmd, data); err != nil {
		s.logf("screen: write %#02x (%d bytes): %v", cmd, len(data), err)
		return fmt.Errorf("screen: write %#02x: %w: %w", cmd, ErrBus, err)
	}
	return nil
}

// FillScreen paints the whole physical screen with the background color, one
// row per memory write.
func (s *Screen) FillScreen() error {
	g := s.geom
	row := make([]byte, g.ScreenWidth*2)
	s.r.fill(row, ColorBackground)

	cols := addressHeader(0, g.ScreenWidth-1)
	if err := s.write(hal.CmdColumnAddressSet, cols[:]); err != nil {
		return err
	}
	for y := 0; y < g.ScreenHeight; y++ {
		rows := addressHeader(y, y)
		if err := s.write(hal.CmdRowAddressSet, rows[:]); err != nil {
			return err
		}
		if err := s.write(hal.CmdMemoryWrite, row); err != nil {
			return err
		}
	}
	return nil
}

// SetDot paints grid cell (x, y) of the session window.
func (s *Screen) SetDot(x, y int, ci ColorIndex) error {
	if x >= s.geom.Width || y >= s.geom.Height {
		return fmt.Errorf("screen: dot (%d,%d) outside %dx%d grid: %w", x, y, s.geom.Width, s.geom.Height, ErrInvalidArgument)
	}
	return s.DrawDot(s.win.pix, x, y, ci, s.geom.Width)
}

// DrawDot paints grid cell (x, y) into dst, a magnified buffer whose rows hold
// gridRowWidth dots.
func (s *Screen) DrawDot(dst []byte, x, y int, ci ColorIndex, gridRowWidth int) error {
	if !ci.valid() {
		return fmt.Errorf("screen: color index %d: %w", ci, ErrInvalidArgument)
	}
	if !s.r.dotFits(len(dst), x, y, gridRowWidth) {
		return fmt.Errorf("screen: dot (%d,%d) outside %d-byte buffer of %d dots per row: %w",
			x, y, len(dst), gridRowWidth, ErrInvalidArgument)
	}
	s.r.writeDot(dst, x, y, ci, gridRowWidth)
	return nil
}

// Dot returns the color bytes of grid cell (x, y) in the session window.
func (s *Screen) Dot(x, y int) ([2]byte, error) {
	if x < 0 || y < 0 || x >= s.geom.Width || y >= s.geom.Height {
		return [2]byte{}, fmt.Errorf("screen: dot (%d,%d) outside %dx%d grid: %w", x, y, s.geom.Width, s.geom.Height, ErrInvalidArgument)
	}
	return s.r.readDot(s.win.pix, x, y, s.geom.Width), nil
}
