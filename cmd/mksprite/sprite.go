package main

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"dotlcd/bitmap"
	"dotlcd/hal"
	"dotlcd/screen"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
)

func loadBitmap(path string, opts bitmap.Options) (content []byte, w, h int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("decode: %w", err)
	}
	return bitmap.FromImage(img, opts)
}

// loadPacked reads a bitmap written by pack --format bin.
func loadPacked(path string, w, h int) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := bitmap.Check(content, w, h); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return content, nil
}

// pack converts one image and writes it to dir. It returns the output path.
func pack(path, dir, kind, pkg string, opts bitmap.Options) (string, error) {
	content, w, h, err := loadBitmap(path, opts)
	if err != nil {
		return "", err
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	var (
		out  string
		data []byte
	)
	switch kind {
	case "bin":
		out = filepath.Join(dir, base+".bin")
		data = content
	default:
		out = filepath.Join(dir, base+".go")
		data, err = goSource(pkg, identFor(base), content, w, h)
		if err != nil {
			return "", err
		}
	}
	return out, os.WriteFile(out, data, 0o644)
}

// identFor turns a file name into an exported Go identifier.
func identFor(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if b.Len() == 0 && unicode.IsDigit(r) {
			b.WriteString("Sprite")
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	if b.Len() == 0 {
		return "Sprite"
	}
	return b.String()
}

func goSource(pkg, ident string, content []byte, w, h int) ([]byte, error) {
	var b bytes.Buffer
	fmt.Fprintf(&b, "// Code generated by mksprite. DO NOT EDIT.\n\npackage %s\n\n", pkg)
	fmt.Fprintf(&b, "const (\n%sWidth = %d\n%sHeight = %d\n)\n\n", ident, w, ident, h)
	fmt.Fprintf(&b, "var %s = []byte{", ident)
	for i, v := range content {
		if i%8 == 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "0b%08b, ", v)
	}
	b.WriteString("\n}\n")
	return format.Source(b.Bytes())
}

// parseSeed reads an "x,y" seed. transparent selects whole-image
// transparency and excludes a seed.
func parseSeed(s string, transparent bool) (*image.Point, error) {
	s = strings.TrimSpace(s)
	if transparent {
		if s != "" {
			return nil, errors.New("--seed and --transparent are exclusive")
		}
		p := screen.WholeImage
		return &p, nil
	}
	if s == "" {
		return nil, nil
	}
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return nil, fmt.Errorf("seed %q: want x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return nil, fmt.Errorf("seed %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return nil, fmt.Errorf("seed %q: %w", s, err)
	}
	return &image.Point{X: x, Y: y}, nil
}

type previewConfig struct {
	Palette    int
	DotSize    int
	DotSpacing int
	Seed       *image.Point
	Scale      int
}

// renderPreview compiles the bitmap on a panel exactly one sprite in size and
// pushes it, so the image shows the bytes the display would receive.
func renderPreview(content []byte, w, h int, pc previewConfig) (image.Image, *screen.Sprite, error) {
	if pc.Scale <= 0 {
		return nil, nil, errors.New("scale must be positive")
	}
	pitch := pc.DotSize + pc.DotSpacing
	cfg := screen.Config{
		Palette:      pc.Palette,
		ScreenWidth:  w * pitch,
		ScreenHeight: h * pitch,
		Width:        w,
		Height:       h,
		DotSize:      pc.DotSize,
		DotSpacing:   pc.DotSpacing,
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	panel := hal.NewMemoryPanel(cfg.ScreenWidth, cfg.ScreenHeight)
	s, err := screen.New(panel, cfg, screen.Options{})
	if err != nil {
		return nil, nil, err
	}
	sp, err := s.Sprite(w, h, content, pc.Seed)
	if err != nil {
		return nil, nil, err
	}
	if err := s.FillScreen(); err != nil {
		return nil, nil, err
	}
	if err := s.Select(sp, 0, 0); err != nil {
		return nil, nil, err
	}
	if err := s.Push(); err != nil {
		return nil, nil, err
	}

	src := panel.Image()
	if pc.Scale == 1 {
		return src, sp, nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, src.Bounds().Dx()*pc.Scale, src.Bounds().Dy()*pc.Scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, sp, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func paletteTable(presets []screen.Palette) []string {
	lines := make([]string, 0, len(presets))
	for i, p := range presets {
		cols := make([]string, 0, 3)
		for ci := screen.ColorOutline; ci <= screen.ColorBackground; ci++ {
			r, g, b := p.RGB(ci)
			c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
			cols = append(cols, fmt.Sprintf("%s (%#06x)", c.Hex(), p.RGB565(ci)))
		}
		lines = append(lines, fmt.Sprintf("%d %-13s %s", i, p.Name, strings.Join(cols, " ")))
	}
	return lines
}
