//go:build tinygo && baremetal

package hal

// stubPanel stands in for a missing display so the program keeps running
// and logging over UART.
type stubPanel struct {
	w int
	h int
}

func (p *stubPanel) Width() int  { return p.w }
func (p *stubPanel) Height() int { return p.h }

func (p *stubPanel) WriteCmdData(cmd byte, data []byte) error {
	_ = cmd
	_ = data
	return ErrNotImplemented
}

type stubKeyboard struct{}

func (k *stubKeyboard) Events() <-chan KeyEvent { return nil }
