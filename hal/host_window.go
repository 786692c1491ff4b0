//go:build !tinygo && cgo

package hal

import (
	"dotlcd/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunWindow starts a desktop window that shows the emulated panel and forwards
// keyboard input. It blocks until the window closes.
func RunWindow(newApp func(HAL) (func() error, error), cfg WindowConfig) error {
	if cfg.PanelWidth <= 0 || cfg.PanelHeight <= 0 {
		cfg.PanelWidth, cfg.PanelHeight = hostPanelWidth, hostPanelHeight
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 2
	}
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}

	h := NewWithPanel(cfg.PanelWidth, cfg.PanelHeight).(*hostHAL)
	step, err := newApp(h)
	if err != nil {
		return err
	}

	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle("dotlcd (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.panel.Width()*cfg.Scale, h.panel.Height()*cfg.Scale)
	ebiten.SetTPS(cfg.TPS)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *hostHAL
	pix     []byte
	img     *ebiten.Image
	scratch []byte
	step    func() error
}

func (g *hostGame) Update() error {
	g.h.kbd.poll()
	g.h.t.step(1)
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	p := g.h.panel
	if g.img == nil {
		g.img = ebiten.NewImage(p.Width(), p.Height())
		g.pix = make([]byte, p.Width()*p.Height()*4)
		g.scratch = make([]byte, p.Width()*p.Height()*2)
	}

	p.Snapshot(g.scratch)
	rgbaFrom565(g.pix, g.scratch)

	g.img.WritePixels(g.pix)
	screen.DrawImage(g.img, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.panel.Width(), g.h.panel.Height()
}
