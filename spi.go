package ssd1351

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// SPITransport drives an SSD1351 controller over SPI, using a GPIO pin to
// select between command and data bytes. It implements Transport.
type SPITransport struct {
	c    conn.Conn
	dc   gpio.PinOut
	rst  gpio.PinIO // optional
	flip bool
}

// NewSPITransport connects to the controller on the given SPI port. The
// dc pin is required; rst may be nil when the panel only has power-on
// reset. flip rotates the panel 180°.
func NewSPITransport(p spi.Port, dc gpio.PinOut, rst gpio.PinIO, flip bool) (*SPITransport, error) {
	if dc == nil {
		return nil, errors.New("ssd1351: dc pin is required")
	}
	// SSD1351 supports up to 20MHz in Mode0 or Mode3.
	c, err := p.Connect(20*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("ssd1351: spi connect: %w", err)
	}
	return &SPITransport{c: c, dc: dc, rst: rst, flip: flip}, nil
}

// SendCommand sends a single command byte with D/C low.
func (t *SPITransport) SendCommand(cmd byte) error {
	if err := t.dc.Out(gpio.Low); err != nil {
		return err
	}
	return t.c.Tx([]byte{cmd}, nil)
}

// SendCommandArgs sends a command byte followed by its argument bytes.
func (t *SPITransport) SendCommandArgs(cmd byte, args ...byte) error {
	if err := t.SendCommand(cmd); err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}
	return t.SendData(args)
}

// SendData sends a slice of data bytes with D/C high.
func (t *SPITransport) SendData(data []byte) error {
	if err := t.dc.Out(gpio.High); err != nil {
		return err
	}
	return t.c.Tx(data, nil)
}

// BringUp resets the controller and runs the SSD1351 initialization
// sequence. Most register writes restate the power-on defaults; the
// remap byte carries the rotation.
func (t *SPITransport) BringUp() error {
	if t.rst != nil {
		if err := t.rst.Out(gpio.Low); err != nil {
			return err
		}
		time.Sleep(time.Millisecond)
		if err := t.rst.Out(gpio.High); err != nil {
			return err
		}
		time.Sleep(time.Millisecond)
	}

	if err := t.SendCommand(0xAF); err != nil { // display on
		return err
	}
	time.Sleep(10 * time.Millisecond)

	remap := byte(0x26)
	if t.flip {
		remap = 0x34
	}
	seq := []struct {
		cmd  byte
		args []byte
	}{
		{0xA5, nil},                      // all pixels on while configuring
		{0xA0, []byte{remap}},            // remap / color depth / rotation
		{0xFD, []byte{0x12}},             // unlock commands
		{0xFD, []byte{0xB1}},             // unlock extended commands
		{0xB3, []byte{0xF1}},             // clock divider / oscillator
		{0xCA, []byte{0x7F}},             // MUX ratio, full 128 rows
		{0xA1, []byte{0x00}},             // display start line
		{0xA2, []byte{0x00}},             // display offset
		{0xAB, []byte{0x01}},             // enable internal regulator
		{0xB4, []byte{0xA0, 0xB5, 0x55}}, // VSL
		{0xC1, []byte{0xC8, 0x80, 0xC0}}, // per-channel contrast
		{0xC7, []byte{0x0F}},             // master current
		{0xB1, []byte{0x32}},             // phase length
		{0xB2, []byte{0xA4, 0x00, 0x00}}, // display enhancement
		{0xBB, []byte{0x17}},             // pre-charge voltage
		{0xB6, []byte{0x01}},             // second pre-charge period
		{0xBE, []byte{0x05}},             // COM deselect voltage
		{0xFD, []byte{0xB0}},             // lock commands again
		{0xA6, nil},                      // back to normal display mode
	}
	for _, s := range seq {
		if err := t.SendCommandArgs(s.cmd, s.args...); err != nil {
			return err
		}
	}
	return nil
}
