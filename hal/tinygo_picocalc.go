//go:build tinygo && baremetal && picocalc

package hal

type picoCalcHAL struct {
	logger *uartLogger
	panel  Panel
	kbd    Keyboard
	t      *tinyGoTime
}

// New returns a PicoCalc HAL implementation (Pico/Pico2 on the PicoCalc carrier).
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
// Keyboard: I2C on GP6 (SDA) / GP7 (SCL).
func New() HAL {
	logger := newUARTLogger()

	var panel Panel
	if lcd, err := initILI9488(); err == nil {
		panel = lcd
	} else {
		logger.WriteLineString("hal: lcd: " + err.Error())
		panel = &stubPanel{w: picoCalcPanelWidth, h: picoCalcPanelHeight}
	}

	var kbd Keyboard = &stubKeyboard{}
	if k, err := initPicoCalcKeyboard(); err == nil {
		kbd = k
	} else {
		logger.WriteLineString("hal: " + err.Error())
	}

	return &picoCalcHAL{
		logger: logger,
		panel:  panel,
		kbd:    kbd,
		t:      newTinyGoTime(),
	}
}

func (h *picoCalcHAL) Logger() Logger { return h.logger }
func (h *picoCalcHAL) Panel() Panel   { return h.panel }
func (h *picoCalcHAL) Input() Input   { return tinyGoInput{kbd: h.kbd} }
func (h *picoCalcHAL) Time() Time     { return h.t }
