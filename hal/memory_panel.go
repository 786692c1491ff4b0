package hal

import (
	"errors"
	"fmt"
	"image"
	"sync"
)

var ErrBadCommand = errors.New("bad panel command")

// MemoryPanel emulates the addressed-window protocol of an ILI9341/ILI9488
// style controller in RAM. Pixels are stored big-endian, as sent on the bus.
type MemoryPanel struct {
	mu     sync.Mutex
	width  int
	height int
	buf    []byte

	x0, x1 int
	y0, y1 int

	writes int
}

// NewMemoryPanel returns a width×height panel addressed as a whole.
func NewMemoryPanel(width, height int) *MemoryPanel {
	return &MemoryPanel{
		width:  width,
		height: height,
		buf:    make([]byte, width*height*2),
		x1:     width - 1,
		y1:     height - 1,
	}
}

func (p *MemoryPanel) Width() int  { return p.width }
func (p *MemoryPanel) Height() int { return p.height }

func (p *MemoryPanel) WriteCmdData(cmd byte, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch cmd {
	case CmdColumnAddressSet:
		a, b, err := decodeRange(data, p.width)
		if err != nil {
			return fmt.Errorf("panel: column address: %w", err)
		}
		p.x0, p.x1 = a, b
	case CmdRowAddressSet:
		a, b, err := decodeRange(data, p.height)
		if err != nil {
			return fmt.Errorf("panel: row address: %w", err)
		}
		p.y0, p.y1 = a, b
	case CmdMemoryWrite:
		p.memoryWrite(data)
		p.writes++
	}
	return nil
}

func decodeRange(data []byte, limit int) (start, end int, err error) {
	if len(data) < 4 {
		return 0, 0, fmt.Errorf("%w: payload %d bytes", ErrBadCommand, len(data))
	}
	start = int(data[0])<<8 | int(data[1])
	end = int(data[2])<<8 | int(data[3])
	if start > end || end >= limit {
		return 0, 0, fmt.Errorf("%w: range %d..%d outside 0..%d", ErrBadCommand, start, end, limit-1)
	}
	return start, end, nil
}

func (p *MemoryPanel) memoryWrite(data []byte) {
	x, y := p.x0, p.y0
	for i := 0; i+1 < len(data); i += 2 {
		off := (y*p.width + x) * 2
		p.buf[off] = data[i]
		p.buf[off+1] = data[i+1]

		x++
		if x > p.x1 {
			x = p.x0
			y++
			if y > p.y1 {
				y = p.y0
			}
		}
	}
}

// Pixel returns the RGB565 value at (x, y).
func (p *MemoryPanel) Pixel(x, y int) uint16 {
	p.mu.Lock()
	defer p.mu.Unlock()
	off := (y*p.width + x) * 2
	return uint16(p.buf[off])<<8 | uint16(p.buf[off+1])
}

// Writes reports how many memory-write commands the panel has received.
func (p *MemoryPanel) Writes() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.writes
}

// Snapshot copies the panel memory into dst.
func (p *MemoryPanel) Snapshot(dst []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	copy(dst, p.buf)
}

// Image converts the panel memory into an RGBA image.
func (p *MemoryPanel) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	p.mu.Lock()
	defer p.mu.Unlock()
	rgbaFrom565(img.Pix, p.buf)
	return img
}

func rgbaFrom565(dst, src []byte) {
	for i := 0; i+1 < len(src) && i/2*4+3 < len(dst); i += 2 {
		r, g, b := RGB888From565(uint16(src[i])<<8 | uint16(src[i+1]))
		j := (i / 2) * 4
		dst[j+0] = r
		dst[j+1] = g
		dst[j+2] = b
		dst[j+3] = 0xFF
	}
}
