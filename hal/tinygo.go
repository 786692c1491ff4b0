//go:build tinygo && baremetal && !picocalc

package hal

type tinyGoHAL struct {
	logger *uartLogger
	panel  Panel
	kbd    Keyboard
	t      *tinyGoTime
}

// New returns a bare Pico HAL without a display: bus writes fail with
// ErrNotImplemented and are logged over UART.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
func New() HAL {
	return &tinyGoHAL{
		logger: newUARTLogger(),
		panel:  &stubPanel{w: 320, h: 240},
		kbd:    &stubKeyboard{},
		t:      newTinyGoTime(),
	}
}

func (h *tinyGoHAL) Logger() Logger { return h.logger }
func (h *tinyGoHAL) Panel() Panel   { return h.panel }
func (h *tinyGoHAL) Input() Input   { return tinyGoInput{kbd: h.kbd} }
func (h *tinyGoHAL) Time() Time     { return h.t }
