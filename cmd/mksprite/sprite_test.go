package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dotlcd/bitmap"
	"dotlcd/screen"

	"github.com/stretchr/testify/require"
)

func writeTestPNG(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			c := color.RGBA{A: 0xFF}
			if x == 1 && y == 1 {
				c = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
			}
			img.SetRGBA(x, y, c)
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestIdentFor(t *testing.T) {
	require.Equal(t, "SnakeHead", identFor("snake-head"))
	require.Equal(t, "Sprite8x8", identFor("8x8"))
	require.Equal(t, "Sprite", identFor("--"))
	require.Equal(t, "Box", identFor("box"))
}

func TestParseSeed(t *testing.T) {
	p, err := parseSeed("", false)
	require.NoError(t, err)
	require.Nil(t, p)

	p, err = parseSeed("", true)
	require.NoError(t, err)
	require.Equal(t, screen.WholeImage, *p)

	p, err = parseSeed(" 1, 2 ", false)
	require.NoError(t, err)
	require.Equal(t, image.Point{X: 1, Y: 2}, *p)

	_, err = parseSeed("1,1", true)
	require.Error(t, err)
	_, err = parseSeed("1", false)
	require.Error(t, err)
	_, err = parseSeed("a,b", false)
	require.Error(t, err)
}

func TestGoSource(t *testing.T) {
	src, err := goSource("sprites", "Box", []byte{0b11100000, 0b10100000, 0b11100000}, 3, 3)
	require.NoError(t, err)

	s := string(src)
	require.True(t, strings.HasPrefix(s, "// Code generated by mksprite. DO NOT EDIT."))
	require.Contains(t, s, "package sprites")
	require.Contains(t, s, "BoxWidth  = 3")
	require.Contains(t, s, "BoxHeight = 3")
	require.Contains(t, s, "0b10100000")
}

func TestPackWritesGoAndBin(t *testing.T) {
	dir := t.TempDir()
	in := writeTestPNG(t, dir, "ring.png")

	out, err := pack(in, dir, "bin", "sprites", bitmap.Options{})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "ring.bin"), out)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, []byte{0b11100000, 0b10100000, 0b11100000}, data)

	out, err = pack(in, dir, "go", "sprites", bitmap.Options{})
	require.NoError(t, err)
	data, err = os.ReadFile(out)
	require.NoError(t, err)
	require.Contains(t, string(data), "var Ring = []byte{")
}

func TestRenderPreview(t *testing.T) {
	content := []byte{0b11100000, 0b10100000, 0b11100000}
	img, sp, err := renderPreview(content, 3, 3, previewConfig{
		Palette:    1,
		DotSize:    2,
		DotSpacing: 1,
		Seed:       &image.Point{X: 1, Y: 1},
		Scale:      2,
	})
	require.NoError(t, err)
	require.Equal(t, screen.InteriorSeed, sp.Mode)
	require.Equal(t, image.Rect(0, 0, 18, 18), img.Bounds())

	pal := screen.Presets[1]
	rgba := func(ci screen.ColorIndex) color.RGBA {
		r, g, b := pal.RGB(ci)
		return color.RGBA{R: r, G: g, B: b, A: 0xFF}
	}
	at := func(x, y int) color.RGBA { return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA) }

	require.Equal(t, rgba(screen.ColorOutline), at(0, 0))
	// Spacing after the first dot, scaled by two.
	require.Equal(t, rgba(screen.ColorBackground), at(4, 0))
	// The cleared interior shows the blank template's fill dot.
	require.Equal(t, rgba(screen.ColorFill), at(6, 6))

	_, _, err = renderPreview(content, 3, 3, previewConfig{Palette: 9, DotSize: 2, Scale: 1})
	require.ErrorIs(t, err, screen.ErrInvalidArgument)
	_, _, err = renderPreview(content, 3, 3, previewConfig{DotSize: 2, Scale: 0})
	require.Error(t, err)
}

func TestPreviewPackedBin(t *testing.T) {
	dir := t.TempDir()
	in := writeTestPNG(t, dir, "box.png")
	bin, err := pack(in, dir, "bin", "sprites", bitmap.Options{})
	require.NoError(t, err)

	content, err := loadPacked(bin, 3, 3)
	require.NoError(t, err)
	require.Equal(t, []byte{0b11100000, 0b10100000, 0b11100000}, content)

	seed, err := parseSeed("1,1", false)
	require.NoError(t, err)
	img, sp, err := renderPreview(content, 3, 3, previewConfig{
		Palette:    1,
		DotSize:    2,
		DotSpacing: 1,
		Seed:       seed,
		Scale:      1,
	})
	require.NoError(t, err)
	require.Equal(t, screen.InteriorSeed, sp.Mode)

	out := filepath.Join(dir, "box.png.out")
	require.NoError(t, writePNG(out, img))
	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 9, 9), decoded.Bounds())

	_, err = loadPacked(bin, 8, 8)
	require.ErrorIs(t, err, bitmap.ErrShort)
	_, err = loadPacked(filepath.Join(dir, "missing.bin"), 3, 3)
	require.Error(t, err)
}

func TestDescribe(t *testing.T) {
	line := describe("box.png", 84, 48, 3)
	require.Contains(t, line, "84x48 dots")
	require.Contains(t, line, "504 B packed")
	require.Contains(t, line, "252x144 px")
}

func TestPaletteTable(t *testing.T) {
	lines := paletteTable(screen.Presets)
	require.Len(t, lines, len(screen.Presets))
	require.Contains(t, lines[1], "white")
	require.Contains(t, lines[1], "#000000 (0x0000)")
	require.Contains(t, lines[1], "(0x6bac)")
}
