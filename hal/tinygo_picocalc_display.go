//go:build tinygo && baremetal && picocalc

package hal

import (
	"errors"
	"machine"
	"time"
)

const (
	picoCalcPanelWidth  = 320
	picoCalcPanelHeight = 320
)

// ili9488 drives the PicoCalc LCD over SPI1 in 16bpp mode.
type ili9488 struct {
	spi machine.SPI
	cs  machine.Pin
	dc  machine.Pin
	rst machine.Pin
}

func initILI9488() (*ili9488, error) {
	if machine.SPI1 == nil {
		return nil, errors.New("SPI1 unavailable")
	}

	machine.SPI1.Configure(machine.SPIConfig{
		SCK:       machine.GP10,
		SDO:       machine.GP11,
		SDI:       machine.GP12,
		Frequency: 40_000_000,
	})

	lcd := &ili9488{
		spi: *machine.SPI1,
		cs:  machine.GP13,
		dc:  machine.GP14,
		rst: machine.GP15,
	}

	lcd.cs.Configure(machine.PinConfig{Mode: machine.PinOutput})
	lcd.dc.Configure(machine.PinConfig{Mode: machine.PinOutput})
	lcd.rst.Configure(machine.PinConfig{Mode: machine.PinOutput})
	lcd.cs.High()
	lcd.dc.High()
	lcd.rst.High()

	lcd.reset()
	if err := lcd.init(); err != nil {
		return nil, err
	}
	return lcd, nil
}

func (d *ili9488) reset() {
	d.rst.Low()
	time.Sleep(64 * time.Millisecond)
	d.rst.High()
	time.Sleep(140 * time.Millisecond)
}

func (d *ili9488) init() error {
	seq := []struct {
		cmd  byte
		data []byte
	}{
		{0xC0, []byte{0x17, 0x15}},             // PWCTRL1
		{0xC1, []byte{0x41}},                   // PWCTRL2
		{0xC5, []byte{0x00, 0x12, 0x80, 0x40}}, // VMCTRL
		{0x3A, []byte{0x55}},                   // COLMOD 16bpp
		{0xB1, []byte{0xA0, 0x11}},             // FRMCTRL1
		{0xB6, []byte{0x02, 0x22, 0x27}},       // DISCTRL (320 lines)
		{0x21, nil},                            // INVON
		{0x36, []byte{0x40 | 0x04 | 0x08}},     // MADCTL: MX|MH|BGR
		{0x11, nil},                            // SLPOUT
	}
	for _, s := range seq {
		if err := d.WriteCmdData(s.cmd, s.data); err != nil {
			return err
		}
	}
	time.Sleep(120 * time.Millisecond)
	return d.WriteCmdData(0x29, nil) // DISPON
}

func (d *ili9488) Width() int  { return picoCalcPanelWidth }
func (d *ili9488) Height() int { return picoCalcPanelHeight }

// WriteCmdData sends cmd with DC low followed by data with DC high. Pixel data
// is already big-endian RGB565, which is what the controller expects.
func (d *ili9488) WriteCmdData(cmd byte, data []byte) error {
	d.cs.Low()
	defer d.cs.High()

	d.dc.Low()
	if err := d.spi.Tx([]byte{cmd}, nil); err != nil {
		return err
	}
	d.dc.High()
	if len(data) == 0 {
		return nil
	}
	return d.spi.Tx(data, nil)
}
