package screen

import (
	"fmt"

	"dotlcd/hal"
)

// ColorIndex selects one of the three palette slots.
type ColorIndex uint8

const (
	ColorOutline ColorIndex = iota
	ColorFill
	// ColorBackground doubles as the transparency sentinel.
	ColorBackground
)

func (c ColorIndex) valid() bool { return c <= ColorBackground }

// Palette maps color indices to big-endian RGB565 byte pairs.
type Palette struct {
	Name   string
	Colors [3][2]byte
}

// Presets are the fixed visual themes of the reflective LCD.
var Presets = []Palette{
	{Name: "backlight-off", Colors: [3][2]byte{{0x00, 0x00}, {0x18, 0xe3}, {0x21, 0x03}}},
	{Name: "white", Colors: [3][2]byte{{0x00, 0x00}, {0x6b, 0xac}, {0x73, 0xed}}},
	{Name: "green", Colors: [3][2]byte{{0x00, 0x00}, {0x5c, 0xa6}, {0x64, 0xe6}}},
	{Name: "blue", Colors: [3][2]byte{{0x00, 0x00}, {0x22, 0x56}, {0x22, 0x77}}},
	{Name: "orange", Colors: [3][2]byte{{0x00, 0x00}, {0xab, 0x44}, {0xb3, 0x84}}},
}

// Preset returns preset i.
func Preset(i int) (Palette, error) {
	if i < 0 || i >= len(Presets) {
		return Palette{}, fmt.Errorf("screen: palette %d: %w", i, ErrInvalidArgument)
	}
	return Presets[i], nil
}

// Bytes returns the high and low byte of color ci.
func (p Palette) Bytes(ci ColorIndex) (hi, lo byte, err error) {
	if !ci.valid() {
		return 0, 0, fmt.Errorf("screen: color index %d: %w", ci, ErrInvalidArgument)
	}
	c := p.Colors[ci]
	return c[0], c[1], nil
}

// RGB565 returns color ci as a 16-bit value. ci must be valid.
func (p Palette) RGB565(ci ColorIndex) uint16 {
	c := p.Colors[ci]
	return uint16(c[0])<<8 | uint16(c[1])
}

// RGB expands color ci to 8-bit channels.
func (p Palette) RGB(ci ColorIndex) (r, g, b uint8) {
	return hal.RGB888From565(p.RGB565(ci))
}
