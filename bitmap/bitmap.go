// Package bitmap implements the packed 1-bit sprite layout.
//
// Sprites narrower than 8 pixels store one row per byte, pixels in the
// high-order bits. Wider sprites are a continuous MSB-first bit stream, row
// after row, wrapping across byte boundaries.
package bitmap

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/gift"
	"github.com/lucasb-eyer/go-colorful"
)

var ErrShort = errors.New("bitmap: content too short")

// Len returns the number of bytes needed for a width×height bitmap.
func Len(width, height int) int {
	if width <= 0 || height <= 0 {
		return 0
	}
	if width < 8 {
		return height
	}
	return (width*height + 7) / 8
}

func locate(width, x, y int) (idx int, shift uint) {
	if width < 8 {
		return y, uint(7 - x)
	}
	i := y*width + x
	return i / 8, uint(7 - i%8)
}

// Bit reports whether the pixel at (x, y) is set.
func Bit(content []byte, width, x, y int) bool {
	idx, shift := locate(width, x, y)
	return (content[idx]>>shift)&1 == 1
}

// Set sets or clears the pixel at (x, y).
func Set(content []byte, width, x, y int, v bool) {
	idx, shift := locate(width, x, y)
	if v {
		content[idx] |= 1 << shift
	} else {
		content[idx] &^= 1 << shift
	}
}

// Check validates dimensions against content length.
func Check(content []byte, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("bitmap: invalid size %dx%d", width, height)
	}
	if n := Len(width, height); len(content) < n {
		return fmt.Errorf("%w: have %d bytes, need %d", ErrShort, len(content), n)
	}
	return nil
}

// Options controls image conversion.
type Options struct {
	// Width and Height resize the source before packing. Zero keeps the
	// source dimension.
	Width  int
	Height int

	// Threshold is the CIE L* lightness (0..1) below which a pixel is set.
	Threshold float64

	// Invert sets light pixels instead of dark ones.
	Invert bool
}

// FromImage converts img to a packed bitmap. Dark pixels become set bits.
func FromImage(img image.Image, opts Options) (content []byte, width, height int, err error) {
	b := img.Bounds()
	width, height = opts.Width, opts.Height
	if width <= 0 {
		width = b.Dx()
	}
	if height <= 0 {
		height = b.Dy()
	}
	if width <= 0 || height <= 0 {
		return nil, 0, 0, errors.New("bitmap: empty image")
	}
	threshold := opts.Threshold
	if threshold <= 0 || threshold > 1 {
		threshold = 0.5
	}

	g := gift.New(gift.Grayscale())
	if width != b.Dx() || height != b.Dy() {
		g.Add(gift.Resize(width, height, gift.BoxResampling))
	}
	gray := image.NewRGBA(g.Bounds(b))
	g.Draw(gray, img)

	content = make([]byte, Len(width, height))
	gb := gray.Bounds()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := gray.RGBAAt(gb.Min.X+x, gb.Min.Y+y)
			if c.A < 0x80 {
				continue
			}
			cf, _ := colorful.MakeColor(c)
			l, _, _ := cf.Lab()
			dark := l < threshold
			if dark != opts.Invert {
				Set(content, width, x, y, true)
			}
		}
	}
	return content, width, height, nil
}

// ToImage renders a packed bitmap as a black-on-white paletted image.
func ToImage(content []byte, width, height int) (*image.Paletted, error) {
	if err := Check(content, width, height); err != nil {
		return nil, err
	}
	img := image.NewPaletted(image.Rect(0, 0, width, height), color.Palette{color.White, color.Black})
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if Bit(content, width, x, y) {
				img.SetColorIndex(x, y, 1)
			}
		}
	}
	return img, nil
}
