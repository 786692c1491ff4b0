//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
	"time"
)

const (
	hostPanelWidth  = 320
	hostPanelHeight = 240
)

type hostHAL struct {
	logger *hostLogger
	panel  *MemoryPanel
	kbd    *hostKeyboard
	t      *hostTime
}

// New returns a host HAL implementation backed by an in-memory panel.
func New() HAL {
	return NewWithPanel(hostPanelWidth, hostPanelHeight)
}

// NewWithPanel returns a host HAL whose panel has the given size.
func NewWithPanel(width, height int) HAL {
	return &hostHAL{
		logger: &hostLogger{w: os.Stdout},
		panel:  NewMemoryPanel(width, height),
		kbd:    newHostKeyboard(),
		t:      newHostTime(),
	}
}

func (h *hostHAL) Logger() Logger { return h.logger }
func (h *hostHAL) Panel() Panel   { return h.panel }
func (h *hostHAL) Input() Input   { return hostInput{kbd: h.kbd} }
func (h *hostHAL) Time() Time     { return h.t }

type hostInput struct {
	kbd *hostKeyboard
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

type hostTime struct {
	ch  chan uint64
	seq uint64

	last time.Time
	acc  time.Duration
}

func newHostTime() *hostTime {
	return &hostTime{ch: make(chan uint64, 1024)}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

// step converts wall time elapsed since the previous call into millisecond
// ticks. The first call emits n ticks.
func (t *hostTime) step(n uint64) {
	now := time.Now()
	if t.last.IsZero() {
		t.last = now
		t.emit(n)
		return
	}

	t.acc += now.Sub(t.last)
	t.last = now

	const tickDur = time.Millisecond
	ticks := uint64(t.acc / tickDur)
	if ticks == 0 {
		return
	}
	t.acc %= tickDur
	t.emit(ticks)
}

func (t *hostTime) emit(n uint64) {
	for i := uint64(0); i < n; i++ {
		t.seq++
		select {
		case t.ch <- t.seq:
		default:
		}
	}
}
