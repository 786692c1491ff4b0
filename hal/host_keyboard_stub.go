//go:build !tinygo && !cgo

package hal

// hostKeyboard never produces events without the ebiten window backend;
// the demo falls back to attract mode.
type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

func (k *hostKeyboard) poll() {}
