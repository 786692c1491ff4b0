package screen

import "fmt"

// Config is the display session configuration.
type Config struct {
	Palette      int
	ScreenWidth  int
	ScreenHeight int
	Width        int
	Height       int
	DotSize      int
	DotSpacing   int
}

// DefaultConfig returns an 84×48 grid of 2px dots with 1px spacing centered
// on a 320×240 screen.
func DefaultConfig() Config {
	return Config{
		Palette:      0,
		ScreenWidth:  320,
		ScreenHeight: 240,
		Width:        84,
		Height:       48,
		DotSize:      2,
		DotSpacing:   1,
	}
}

// Validate reports the first problem with c.
func (c Config) Validate() error {
	if c.Palette < 0 || c.Palette >= len(Presets) {
		return fmt.Errorf("screen: palette %d out of range 0..%d: %w", c.Palette, len(Presets)-1, ErrInvalidArgument)
	}
	if c.ScreenWidth <= 0 || c.ScreenHeight <= 0 {
		return fmt.Errorf("screen: screen size %dx%d: %w", c.ScreenWidth, c.ScreenHeight, ErrInvalidArgument)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("screen: grid size %dx%d: %w", c.Width, c.Height, ErrInvalidArgument)
	}
	if c.DotSize <= 0 {
		return fmt.Errorf("screen: dot size %d: %w", c.DotSize, ErrInvalidArgument)
	}
	if c.DotSpacing < 0 {
		return fmt.Errorf("screen: dot spacing %d: %w", c.DotSpacing, ErrInvalidArgument)
	}
	if c.ScreenWidth > 0x10000 || c.ScreenHeight > 0x10000 {
		return fmt.Errorf("screen: screen size exceeds 16-bit addressing: %w", ErrInvalidArgument)
	}
	// Every factor is bounded by the screen before multiplying.
	if c.Width > c.ScreenWidth || c.Height > c.ScreenHeight ||
		c.DotSize > c.ScreenWidth || c.DotSize > c.ScreenHeight ||
		c.DotSpacing > c.ScreenWidth || c.DotSpacing > c.ScreenHeight {
		return fmt.Errorf("screen: %dx%d grid of %d+%d px dots does not fit %dx%d screen: %w",
			c.Width, c.Height, c.DotSize, c.DotSpacing, c.ScreenWidth, c.ScreenHeight, ErrInvalidArgument)
	}
	step := int64(c.DotSize + c.DotSpacing)
	ww, wh := step*int64(c.Width), step*int64(c.Height)
	if ww > int64(c.ScreenWidth) || wh > int64(c.ScreenHeight) {
		return fmt.Errorf("screen: %dx%d window does not fit %dx%d screen: %w",
			ww, wh, c.ScreenWidth, c.ScreenHeight, ErrInvalidArgument)
	}
	return nil
}
