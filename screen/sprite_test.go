package screen

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

var outlineBox = []byte{0b11100000, 0b10100000, 0b11100000}

func TestWriteDotMagnification(t *testing.T) {
	for _, tc := range []struct{ size, spacing int }{{1, 0}, {2, 1}, {3, 2}, {4, 0}} {
		r := raster{dotSize: tc.size, dSiSp: tc.size + tc.spacing, colors: Presets[1].Colors}
		const grid = 4
		rowWidth := r.dSiSp * grid
		buf := make([]byte, rowWidth*rowWidth*2)
		marker := [2]byte{0xEE, 0xEE}
		fillPair(buf, marker)

		gx, gy := 2, 3
		r.writeDot(buf, gx, gy, ColorFill, grid)

		touched := 0
		for y := 0; y < rowWidth; y++ {
			for x := 0; x < rowWidth; x++ {
				p := pixelAt(buf, rowWidth, x, y)
				inBlock := x >= r.dSiSp*gx && x < r.dSiSp*gx+tc.size &&
					y >= r.dSiSp*gy && y < r.dSiSp*gy+tc.size
				if inBlock {
					require.Equal(t, Presets[1].Colors[ColorFill], p)
					touched++
				} else {
					require.Equal(t, marker, p)
				}
			}
		}
		require.Equal(t, tc.size*tc.size, touched)
		require.Equal(t, Presets[1].Colors[ColorFill], r.readDot(buf, gx, gy, grid))
	}
}

func TestSpriteOpaqueColors(t *testing.T) {
	s, _ := newTestScreen(t, smallConfig())

	sp, err := s.Sprite(3, 3, outlineBox, nil)
	require.NoError(t, err)
	require.Equal(t, Opaque, sp.Mode)
	require.Equal(t, 9, sp.PixelWidth())
	require.Equal(t, 9, sp.PixelHeight())
	require.Len(t, sp.Pix(), 9*9*2)

	require.Equal(t, s.r.colors[ColorOutline], s.r.readDot(sp.Pix(), 0, 0, 3))
	require.Equal(t, s.r.colors[ColorFill], s.r.readDot(sp.Pix(), 1, 1, 3))
	// Spacing column.
	require.Equal(t, s.r.colors[ColorBackground], pixelAt(sp.Pix(), 9, 2, 0))
}

func TestSpriteWideBitstream(t *testing.T) {
	s, _ := newTestScreen(t, smallConfig())

	// 10×2: row 0 sets columns 0 and 9, row 1 sets column 0 (bit 10).
	content := []byte{0b10000000, 0b01100000, 0b00000000}
	sp, err := s.Sprite(10, 2, content, nil)
	require.NoError(t, err)

	outline := s.r.colors[ColorOutline]
	fill := s.r.colors[ColorFill]
	require.Equal(t, outline, s.r.readDot(sp.Pix(), 0, 0, 10))
	require.Equal(t, outline, s.r.readDot(sp.Pix(), 9, 0, 10))
	require.Equal(t, outline, s.r.readDot(sp.Pix(), 0, 1, 10))
	require.Equal(t, fill, s.r.readDot(sp.Pix(), 1, 1, 10))
	require.Equal(t, fill, s.r.readDot(sp.Pix(), 8, 0, 10))
}

func TestSpriteArgumentErrors(t *testing.T) {
	s, _ := newTestScreen(t, smallConfig())

	_, err := s.Sprite(3, 3, outlineBox[:2], nil)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = s.Sprite(0, 3, outlineBox, nil)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = s.Sprite(3, 3, outlineBox, &image.Point{X: 3, Y: 0})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = s.Sprite(3, 3, outlineBox, &image.Point{X: -1, Y: 0})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSpriteWholeImageMode(t *testing.T) {
	s, _ := newTestScreen(t, smallConfig())

	sp, err := s.Sprite(3, 3, outlineBox, &WholeImage)
	require.NoError(t, err)
	require.Equal(t, WholeImageBackground, sp.Mode)
	require.Equal(t, s.r.colors[ColorFill], s.r.readDot(sp.Pix(), 1, 1, 3))
	require.False(t, sp.Transparent(3, 3))
}

func TestOutlineBoxScenario(t *testing.T) {
	s, _ := newTestScreen(t, smallConfig())
	outline := s.r.colors[ColorOutline]
	bg := s.r.colors[ColorBackground]

	sp, err := s.Sprite(3, 3, outlineBox, &image.Point{X: 1, Y: 1})
	require.NoError(t, err)
	require.Equal(t, InteriorSeed, sp.Mode)

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			want := outline
			if x == 1 && y == 1 {
				want = bg
			}
			require.Equalf(t, want, s.r.readDot(sp.Pix(), x, y, 3), "dot (%d,%d)", x, y)
		}
	}

	marker := [2]byte{0x12, 0x34}
	win := s.Window()
	fillPair(win.Pix(), marker)
	require.NoError(t, s.Select(sp, 0, 0))

	ww := s.Geometry().WindowWidth
	// Interior dot block: device pixels (3..4, 3..4).
	for y := 3; y < 5; y++ {
		for x := 3; x < 5; x++ {
			require.Equalf(t, marker, pixelAt(win.Pix(), ww, x, y), "interior pixel (%d,%d)", x, y)
		}
	}
	// Outline dots render.
	for _, d := range []image.Point{{0, 0}, {1, 0}, {2, 0}, {0, 1}, {2, 1}, {0, 2}, {1, 2}, {2, 2}} {
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				require.Equal(t, outline, pixelAt(win.Pix(), ww, 3*d.X+j, 3*d.Y+i))
			}
		}
	}
	// Spacing inside the sprite is copied, the rest of the window is not.
	require.Equal(t, bg, pixelAt(win.Pix(), ww, 2, 0))
	require.Equal(t, marker, pixelAt(win.Pix(), ww, 9, 0))
	require.Equal(t, marker, pixelAt(win.Pix(), ww, 0, 9))
}

func TestCachedSprite(t *testing.T) {
	s, _ := newTestScreen(t, smallConfig())

	a, err := s.CachedSprite(3, 3, outlineBox, nil)
	require.NoError(t, err)
	b, err := s.CachedSprite(3, 3, outlineBox, nil)
	require.NoError(t, err)
	require.Same(t, a, b)

	c, err := s.CachedSprite(3, 3, outlineBox, &image.Point{X: 1, Y: 1})
	require.NoError(t, err)
	require.NotSame(t, a, c)

	_, err = s.CachedSprite(3, 3, nil, nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestTransparencyModeString(t *testing.T) {
	require.Equal(t, "opaque", Opaque.String())
	require.Equal(t, "interior-seed", InteriorSeed.String())
	require.Equal(t, "whole-image", WholeImageBackground.String())
	require.Equal(t, "TransparencyMode(9)", TransparencyMode(9).String())
}
