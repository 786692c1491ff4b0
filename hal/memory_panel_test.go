package hal

import (
	"errors"
	"testing"
)

func TestMemoryPanelWindowWrite(t *testing.T) {
	p := NewMemoryPanel(4, 4)

	if err := p.WriteCmdData(CmdColumnAddressSet, []byte{0, 1, 0, 2}); err != nil {
		t.Fatalf("CASET: %v", err)
	}
	if err := p.WriteCmdData(CmdRowAddressSet, []byte{0, 2, 0, 3}); err != nil {
		t.Fatalf("RASET: %v", err)
	}
	data := []byte{0x11, 0x11, 0x22, 0x22, 0x33, 0x33, 0x44, 0x44}
	if err := p.WriteCmdData(CmdMemoryWrite, data); err != nil {
		t.Fatalf("RAMWR: %v", err)
	}

	cases := []struct {
		x, y int
		want uint16
	}{
		{1, 2, 0x1111},
		{2, 2, 0x2222},
		{1, 3, 0x3333},
		{2, 3, 0x4444},
		{0, 2, 0x0000},
		{3, 3, 0x0000},
	}
	for _, c := range cases {
		if got := p.Pixel(c.x, c.y); got != c.want {
			t.Fatalf("Pixel(%d,%d) = %#04x, want %#04x", c.x, c.y, got, c.want)
		}
	}
	if p.Writes() != 1 {
		t.Fatalf("Writes() = %d, want 1", p.Writes())
	}
}

func TestMemoryPanelRejectsBadRange(t *testing.T) {
	p := NewMemoryPanel(4, 4)

	if err := p.WriteCmdData(CmdColumnAddressSet, []byte{0, 1}); !errors.Is(err, ErrBadCommand) {
		t.Fatalf("short payload: err = %v, want ErrBadCommand", err)
	}
	if err := p.WriteCmdData(CmdColumnAddressSet, []byte{0, 3, 0, 1}); !errors.Is(err, ErrBadCommand) {
		t.Fatalf("reversed range: err = %v, want ErrBadCommand", err)
	}
	if err := p.WriteCmdData(CmdRowAddressSet, []byte{0, 0, 0, 4}); !errors.Is(err, ErrBadCommand) {
		t.Fatalf("range past edge: err = %v, want ErrBadCommand", err)
	}
	if err := p.WriteCmdData(0x29, nil); err != nil {
		t.Fatalf("unknown command: err = %v, want nil", err)
	}
}

func TestMemoryPanelImage(t *testing.T) {
	p := NewMemoryPanel(1, 1)
	if err := p.WriteCmdData(CmdMemoryWrite, []byte{0xF8, 0x00}); err != nil {
		t.Fatalf("RAMWR: %v", err)
	}
	img := p.Image()
	c := img.RGBAAt(0, 0)
	if c.R != 0xFF || c.G != 0 || c.B != 0 || c.A != 0xFF {
		t.Fatalf("pixel = %+v, want pure red", c)
	}
}

func TestRGB565RoundTrip(t *testing.T) {
	r, g, b := RGB888From565(RGB565(0xFF, 0xFF, 0xFF))
	if r != 0xFF || g != 0xFF || b != 0xFF {
		t.Fatalf("white = %02x%02x%02x", r, g, b)
	}
	if RGB565(0, 0, 0) != 0 {
		t.Fatal("black should pack to zero")
	}
}
