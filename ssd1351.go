package ssd1351

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/spi"

	"github.com/oledfx/ssd1351/font"
	"github.com/oledfx/ssd1351/plane"
)

// Transport is the byte-level command/data channel to the physical
// display. BringUp runs the device-specific initialization sequence,
// including a hardware reset pulse where supported.
type Transport interface {
	SendCommand(cmd byte) error
	SendCommandArgs(cmd byte, args ...byte) error
	SendData(data []byte) error
	BringUp() error
}

// Align is the bitmask controlling how the cursor anchors the next drawn
// object and how it moves afterwards. Anchor and movement bits are
// independent: a right-anchored draw with MoveX retreats the cursor.
type Align uint8

const (
	AlignTop    Align = 0x01
	AlignBottom Align = 0x02
	AlignMiddle Align = AlignTop | AlignBottom
	MoveY       Align = 0x08
	AlignLeft   Align = 0x10
	AlignRight  Align = 0x20
	AlignCenter Align = AlignLeft | AlignRight
	MoveX       Align = 0x80
)

// alignDefault is the state installed by Lock and by SetPos with a zero
// alignment.
const alignDefault = AlignLeft | AlignTop | MoveX

// Opts is the configuration for the display engine.
type Opts struct {
	// Display dimensions in pixels.
	W int // Width (default: 128, must be ≤128)
	H int // Height (default: 128, must be ≤128)

	// Format selects the pixel storage strategy (default: plane.RGB565).
	Format plane.Format

	// Fonts supplies the glyph tables used by Text. Without a table every
	// Text call is a no-op.
	Fonts *font.Table

	// Rotation and optional hardware reset pin, passed to the SPI
	// transport by NewSPI.
	Flip bool
	RST  gpio.PinIO

	// Logger receives sync task failures (default: stderr).
	Logger *log.Logger

	// Sync task tuning. Zero or negative values select the defaults.
	BringUpAttempts int           // bring-up retry budget (default: 10)
	RetryDelay      time.Duration // delay between bring-up attempts (default: 1s)
	PollInterval    time.Duration // idle dirty-poll interval (default: 100ms)
	StartupDelay    time.Duration // settle time before the first attempt (default: 300ms)
}

// Dev is the display engine handle. Drawing calls mutate shared state and
// must be wrapped in Lock/Unlock; the background sync task takes the same
// lock before transmitting, so a frame is never sent half-drawn.
type Dev struct {
	transport Transport
	w, h      int
	format    plane.Format
	fonts     *font.Table
	logger    *log.Logger

	bringUpAttempts int
	retryDelay      time.Duration
	pollInterval    time.Duration
	startupDelay    time.Duration

	mu   sync.Mutex
	kick chan struct{}

	// Everything below is guarded by mu.
	plane *plane.Plane // nil once bring-up has been abandoned
	state taskState

	// Drawing state, reset by Lock.
	x, y         int
	align        Align
	fg, bg       byte
	fgMul, bgMul uint32

	contrast        uint8
	contrastPending bool
}

// New creates the engine on top of an already configured transport and
// starts the background sync task.
func New(t Transport, opts *Opts) (*Dev, error) {
	if t == nil {
		return nil, errors.New("ssd1351: transport is required")
	}
	if opts == nil {
		opts = &Opts{}
	}
	w, h := opts.W, opts.H
	if w == 0 {
		w = 128
	}
	if h == 0 {
		h = 128
	}
	if w < 0 || w > 128 || h < 0 || h > 128 {
		return nil, errors.New("ssd1351: dimensions must be between 1 and 128")
	}
	format := opts.Format
	if format == nil {
		format = plane.RGB565{}
	}
	p, err := plane.New(w, h, format)
	if err != nil {
		return nil, err
	}

	d := &Dev{
		transport:       t,
		w:               w,
		h:               h,
		format:          format,
		fonts:           opts.Fonts,
		logger:          opts.Logger,
		bringUpAttempts: opts.BringUpAttempts,
		retryDelay:      opts.RetryDelay,
		pollInterval:    opts.PollInterval,
		startupDelay:    opts.StartupDelay,
		kick:            make(chan struct{}, 1),
		plane:           p,
		contrast:        255,
	}
	if d.logger == nil {
		d.logger = log.New(os.Stderr, "ssd1351: ", log.LstdFlags)
	}
	if d.bringUpAttempts <= 0 {
		d.bringUpAttempts = 10
	}
	if d.retryDelay <= 0 {
		d.retryDelay = time.Second
	}
	if d.pollInterval <= 0 {
		d.pollInterval = 100 * time.Millisecond
	}
	if d.startupDelay <= 0 {
		d.startupDelay = 300 * time.Millisecond
	}
	// The very first Running cycle pushes the initial (blank) frame.
	d.plane.MarkDirty()

	go d.run()
	return d, nil
}

// NewSPI creates the engine connected to an SSD1351 via SPI.
//
// The SPI port is configured for 20MHz, Mode0, 8-bit transfers. The dc
// (Data/Command) GPIO pin must be provided and configured as an output.
//
// opts can be nil to use defaults (128×128, RGB565).
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{}
	}
	t, err := NewSPITransport(p, dc, opts.RST, opts.Flip)
	if err != nil {
		return nil, err
	}
	return New(t, opts)
}

// Lock acquires the shared drawing state and resets it to the canonical
// defaults: origin (0, 0), left/top anchoring with horizontal movement,
// full white on black. Callers never observe state left over from an
// earlier critical section.
func (d *Dev) Lock() {
	d.mu.Lock()
	d.x, d.y = 0, 0
	d.align = alignDefault
	d.SetColor('W')
	d.SetBackground('K')
}

// Unlock releases the drawing state and wakes the sync task if the
// critical section changed the surface.
func (d *Dev) Unlock() {
	if d.plane != nil && d.plane.Dirty() {
		d.kickLocked()
	}
	d.mu.Unlock()
}

// kickLocked wakes the sync task without blocking. Callers must hold mu.
func (d *Dev) kickLocked() {
	select {
	case d.kick <- struct{}{}:
	default:
	}
}

// drawable reports whether drawing calls should take effect. Callers must
// hold mu.
func (d *Dev) drawable() bool {
	return d.plane != nil && d.state != stateDisabled
}

// SetPos sets the cursor and alignment for the next drawn object. A zero
// alignment selects left/top anchoring with horizontal movement.
func (d *Dev) SetPos(x, y int, a Align) {
	if !d.drawable() {
		return
	}
	d.x, d.y = x, y
	if a == 0 {
		a = alignDefault
	}
	d.align = a
}

// SetColor sets the foreground color token.
func (d *Dev) SetColor(c byte) {
	if !d.drawable() {
		return
	}
	d.fg = c
	d.fgMul = d.lookup(c)
}

// SetBackground sets the background color token.
func (d *Dev) SetBackground(c byte) {
	if !d.drawable() {
		return
	}
	d.bg = c
	d.bgMul = d.lookup(c)
}

// Cursor and color state accessors.
func (d *Dev) X() int           { return d.x }
func (d *Dev) Y() int           { return d.y }
func (d *Dev) Alignment() Align { return d.align }
func (d *Dev) Color() byte      { return d.fg }
func (d *Dev) Background() byte { return d.bg }

// W returns the display width in pixels.
func (d *Dev) W() int { return d.w }

// H returns the display height in pixels.
func (d *Dev) H() int { return d.h }

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("ssd1351.Dev{%dx%d}", d.w, d.h)
}
