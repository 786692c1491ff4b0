// Package app is the snake demo shown on the dot screen.
package app

import (
	"errors"
	"fmt"
	"time"

	"dotlcd/hal"
	"dotlcd/screen"
)

// cellDots is the side of one playfield cell in dots.
const cellDots = 3

type Config struct {
	Screen screen.Config

	// WrapPanel, when set, decorates the HAL panel before the screen binds
	// to it.
	WrapPanel func(hal.Panel) hal.Panel

	// Seed for the food generator. Zero picks a fixed seed.
	Seed uint32
}

func DefaultConfig() Config {
	return Config{Screen: screen.DefaultConfig()}
}

type app struct {
	log hal.Logger
	scr *screen.Screen
	g   *game
	r   *renderer

	ticks <-chan uint64
	keys  <-chan hal.KeyEvent
	now   uint64
}

// New clears the physical screen, draws the first frame, and returns the
// function the platform calls once per frame.
func New(h hal.HAL, cfg Config) (func() error, error) {
	a, err := newApp(h, cfg)
	if err != nil {
		return nil, err
	}
	return a.step, nil
}

// Run drives the demo at frameRate frames per second until a frame fails.
func Run(h hal.HAL, cfg Config, frameRate int) error {
	step, err := New(h, cfg)
	if err != nil {
		return err
	}
	if frameRate <= 0 {
		frameRate = 30
	}
	t := time.NewTicker(time.Second / time.Duration(frameRate))
	defer t.Stop()
	for range t.C {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func newApp(h hal.HAL, cfg Config) (*app, error) {
	panel := h.Panel()
	if panel == nil {
		return nil, errors.New("app: no panel")
	}
	if cfg.WrapPanel != nil {
		panel = cfg.WrapPanel(panel)
	}

	scr, err := screen.New(panel, cfg.Screen, screen.Options{Logger: h.Logger()})
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	r, err := newRenderer(scr)
	if err != nil {
		return nil, err
	}

	a := &app{
		log: h.Logger(),
		scr: scr,
		g:   newGame(r.cols, r.rows, cfg.Seed),
		r:   r,
	}
	if t := h.Time(); t != nil {
		a.ticks = t.Ticks()
	}
	if in := h.Input(); in != nil {
		if kbd := in.Keyboard(); kbd != nil {
			a.keys = kbd.Events()
		}
	}

	if err := scr.FillScreen(); err != nil {
		return nil, fmt.Errorf("app: clear screen: %w", err)
	}
	if err := a.r.draw(a.g); err != nil {
		return nil, err
	}
	a.logf("app: snake %dx%d cells, attract mode", r.cols, r.rows)
	return a, nil
}

func (a *app) logf(format string, args ...any) {
	if a.log == nil {
		return
	}
	a.log.WriteLineString(fmt.Sprintf(format, args...))
}

// step drains pending ticks and keys, advances the game, and pushes a frame
// when something changed.
func (a *app) step() (err error) {
	defer a.recoverFrame(&err)

	a.drainTicks()
	dirty := a.drainKeys()

	wasAlive := a.g.alive
	if a.g.advance(a.now) {
		dirty = true
	}
	if wasAlive && !a.g.alive {
		a.logf("app: game over, score %d", a.g.score)
	}

	if !dirty {
		return nil
	}
	return a.r.draw(a.g)
}

func (a *app) drainTicks() {
	for {
		select {
		case seq := <-a.ticks:
			a.now = seq
		default:
			return
		}
	}
}

func (a *app) drainKeys() bool {
	dirty := false
	for {
		select {
		case ev := <-a.keys:
			if a.handleKey(ev) {
				dirty = true
			}
		default:
			return dirty
		}
	}
}

// handleKey applies one key event and reports whether the frame needs
// redrawing.
func (a *app) handleKey(ev hal.KeyEvent) bool {
	if !ev.Press {
		return false
	}
	g := a.g
	g.lastInput = a.now

	if ev.Code == hal.KeyEscape {
		if g.attract {
			return false
		}
		g.attract = true
		g.reset()
		g.lastStep = a.now
		a.logf("app: attract mode")
		return true
	}

	if g.attract {
		g.attract = false
		g.reset()
		g.lastStep = a.now
		a.logf("app: player took over")
		return true
	}

	switch ev.Code {
	case hal.KeyUp:
		g.setDir(dirUp)
	case hal.KeyDown:
		g.setDir(dirDown)
	case hal.KeyLeft:
		g.setDir(dirLeft)
	case hal.KeyRight:
		g.setDir(dirRight)
	case hal.KeyEnter:
		if !g.alive {
			g.reset()
			g.lastStep = a.now
			return true
		}
	}

	switch ev.Rune {
	case 'p', ' ':
		if g.alive {
			g.paused = !g.paused
			return true
		}
	case 'r':
		g.reset()
		g.lastStep = a.now
		return true
	}
	return false
}
