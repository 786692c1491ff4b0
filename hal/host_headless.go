//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"time"
)

// WindowConfig controls the desktop window.
type WindowConfig struct {
	PanelWidth  int
	PanelHeight int
	Scale       int
	TPS         int
}

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled     bool
	Hz          int
	Ticks       uint64
	PanelWidth  int
	PanelHeight int
}

// RunHeadless runs the program without opening a window. The returned HAL
// panel still receives every bus write, so a mirror or test can observe it.
func RunHeadless(ctx context.Context, newApp func(HAL) (func() error, error), cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.PanelWidth <= 0 || cfg.PanelHeight <= 0 {
		cfg.PanelWidth, cfg.PanelHeight = hostPanelWidth, hostPanelHeight
	}

	h := NewWithPanel(cfg.PanelWidth, cfg.PanelHeight).(*hostHAL)
	step, err := newApp(h)
	if err != nil {
		return err
	}

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			h.t.step(1)
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
