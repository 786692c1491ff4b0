package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// Display controller commands used by the window protocol.
const (
	CmdColumnAddressSet byte = 0x2A
	CmdRowAddressSet    byte = 0x2B
	CmdMemoryWrite      byte = 0x2C
)

// Bus issues addressed writes to a display controller.
//
// Each call sends one command byte followed by its data. Pixel data is RGB565,
// high byte first.
type Bus interface {
	WriteCmdData(cmd byte, data []byte) error
}

// Panel is a display reachable over a Bus.
type Panel interface {
	Bus
	Width() int
	Height() int
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
)

// KeyEvent is a keyboard event.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
}

// Time provides a base tick stream.
//
// The tick duration is platform-defined; one tick is roughly a millisecond.
type Time interface {
	Ticks() <-chan uint64
}

// HAL provides the only contact point between the program and the outside world.
type HAL interface {
	Logger() Logger
	Panel() Panel
	Input() Input
	Time() Time
}
