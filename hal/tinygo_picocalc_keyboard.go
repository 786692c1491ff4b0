//go:build tinygo && baremetal && picocalc

package hal

import (
	"errors"
	"machine"
	"time"
)

const (
	picoCalcKbdAddr uint16 = 0x1F
	picoCalcKbdCmd         = 0x09

	picoCalcKbdPoll = 10 * time.Millisecond
)

// Keyboard MCU event types.
const (
	picoCalcEventDown byte = 0x01
	picoCalcEventHeld byte = 0x02
	picoCalcEventUp   byte = 0x03
)

const (
	picoCalcKeyAlt   byte = 0xA1
	picoCalcKeyCtrl  byte = 0xA5
	picoCalcKeyEsc   byte = 0xB1
	picoCalcKeyLeft  byte = 0xB4
	picoCalcKeyUp    byte = 0xB5
	picoCalcKeyDown  byte = 0xB6
	picoCalcKeyRight byte = 0xB7
)

// picoCalcKeyboard polls the keyboard MCU on I2C and turns its FIFO entries
// into KeyEvents.
type picoCalcKeyboard struct {
	i2c   *machine.I2C
	write [1]byte
	read  [2]byte
	ch    chan KeyEvent
}

func initPicoCalcKeyboard() (*picoCalcKeyboard, error) {
	// I2C1 is the PicoCalc wiring; some targets only expose I2C0.
	for _, bus := range []*machine.I2C{machine.I2C1, machine.I2C0} {
		if bus == nil {
			continue
		}
		for _, freq := range []uint32{100_000, 400_000} {
			if err := bus.Configure(machine.I2CConfig{
				SCL:       machine.GP7,
				SDA:       machine.GP6,
				Frequency: freq,
			}); err != nil {
				continue
			}

			k := &picoCalcKeyboard{
				i2c:   bus,
				write: [1]byte{picoCalcKbdCmd},
				ch:    make(chan KeyEvent, 16),
			}
			// The keyboard MCU is slow to answer right after power-up.
			for i := 0; i < 50; i++ {
				if err := k.i2c.Tx(picoCalcKbdAddr, k.write[:], k.read[:]); err == nil {
					go k.poll()
					return k, nil
				}
				time.Sleep(10 * time.Millisecond)
			}
		}
	}
	return nil, errors.New("keyboard: I2C unavailable")
}

func (k *picoCalcKeyboard) Events() <-chan KeyEvent { return k.ch }

func (k *picoCalcKeyboard) poll() {
	for {
		ev, ok := k.readEvent()
		if !ok {
			time.Sleep(picoCalcKbdPoll)
			continue
		}
		select {
		case k.ch <- ev:
		default:
		}
	}
}

func (k *picoCalcKeyboard) readEvent() (KeyEvent, bool) {
	if err := k.i2c.Tx(picoCalcKbdAddr, k.write[:], k.read[:]); err != nil {
		return KeyEvent{}, false
	}
	switch k.read[0] {
	case picoCalcEventDown:
		return translatePicoCalcKey(k.read[1], true)
	case picoCalcEventUp:
		return translatePicoCalcKey(k.read[1], false)
	default:
		// Empty FIFO, held keys and modifiers.
		return KeyEvent{}, false
	}
}

func translatePicoCalcKey(code byte, press bool) (KeyEvent, bool) {
	switch code {
	case 0, picoCalcKeyAlt, picoCalcKeyCtrl:
		return KeyEvent{}, false
	case picoCalcKeyEsc:
		return KeyEvent{Code: KeyEscape, Press: press}, true
	case picoCalcKeyLeft:
		return KeyEvent{Code: KeyLeft, Press: press}, true
	case picoCalcKeyUp:
		return KeyEvent{Code: KeyUp, Press: press}, true
	case picoCalcKeyDown:
		return KeyEvent{Code: KeyDown, Press: press}, true
	case picoCalcKeyRight:
		return KeyEvent{Code: KeyRight, Press: press}, true
	case '\r', '\n':
		return KeyEvent{Code: KeyEnter, Press: press}, true
	}
	if code >= 0x80 {
		return KeyEvent{}, false
	}
	return KeyEvent{Press: press, Rune: rune(code)}, true
}
