//go:build tinygo && !baremetal

package hal

import "time"

type tinyGoHostHAL struct {
	logger *tinyGoHostLogger
	panel  *MemoryPanel
	kbd    *tinyGoHostKeyboard
	t      *tinyGoHostTime
}

// New returns a TinyGo-on-host HAL implementation.
//
// This is used by `tinygo run` targets like linux/wasm where there is no MCU
// pin mapping. The panel lives in memory and there is no keyboard.
func New() HAL {
	return &tinyGoHostHAL{
		logger: &tinyGoHostLogger{},
		panel:  NewMemoryPanel(320, 240),
		kbd:    &tinyGoHostKeyboard{},
		t:      newTinyGoHostTime(),
	}
}

func (h *tinyGoHostHAL) Logger() Logger { return h.logger }
func (h *tinyGoHostHAL) Panel() Panel   { return h.panel }
func (h *tinyGoHostHAL) Input() Input   { return tinyGoHostInput{kbd: h.kbd} }
func (h *tinyGoHostHAL) Time() Time     { return h.t }

type tinyGoHostInput struct {
	kbd Keyboard
}

func (in tinyGoHostInput) Keyboard() Keyboard { return in.kbd }

type tinyGoHostTime struct {
	ch  chan uint64
	seq uint64
}

func newTinyGoHostTime() *tinyGoHostTime {
	t := &tinyGoHostTime{ch: make(chan uint64, 16)}
	go func() {
		ticker := time.NewTicker(1 * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			t.seq++
			select {
			case t.ch <- t.seq:
			default:
			}
		}
	}()
	return t
}

func (t *tinyGoHostTime) Ticks() <-chan uint64 { return t.ch }

type tinyGoHostLogger struct{}

func (l *tinyGoHostLogger) WriteLineString(s string) { println(s) }
func (l *tinyGoHostLogger) WriteLineBytes(b []byte)  { println(string(b)) }

type tinyGoHostKeyboard struct{}

func (k *tinyGoHostKeyboard) Events() <-chan KeyEvent { return nil }
