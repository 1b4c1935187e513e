package ssd1351

import "time"

type taskState uint8

const (
	stateInitializing taskState = iota
	stateRunning
	stateDisabled
)

// SSD1351 opcodes used by the steady-state update cycle.
const (
	cmdSetColumn      = 0x15
	cmdSetRow         = 0x75
	cmdWriteRAM       = 0x5C
	cmdContrastMaster = 0xC7
	cmdDisplayOff     = 0xAE
)

// run is the background sync task: one goroutine that first brings the
// controller up and then keeps the panel in sync with the surface.
func (d *Dev) run() {
	time.Sleep(d.startupDelay)

	var err error
	for attempt := 0; attempt < d.bringUpAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(d.retryDelay)
		}
		d.mu.Lock()
		if d.state == stateDisabled {
			d.mu.Unlock()
			return
		}
		err = d.transport.BringUp()
		if err == nil {
			err = d.flushLocked()
		}
		d.mu.Unlock()
		if err == nil {
			break
		}
		d.logger.Printf("bring-up attempt %d/%d failed: %v", attempt+1, d.bringUpAttempts, err)
	}

	d.mu.Lock()
	if err != nil {
		// The panel never came up. Release the surface and go dark: every
		// drawing call from here on is a silent no-op.
		d.plane = nil
		d.state = stateDisabled
		d.mu.Unlock()
		d.logger.Printf("bring-up abandoned after %d attempts: %v", d.bringUpAttempts, err)
		return
	}
	if d.state == stateDisabled {
		d.mu.Unlock()
		return
	}
	d.state = stateRunning
	// Deliver the initial contrast and frame on the first cycle.
	d.contrastPending = true
	d.plane.MarkDirty()
	d.kickLocked()
	d.mu.Unlock()

	for {
		select {
		case <-d.kick:
		case <-time.After(d.pollInterval):
		}
		d.mu.Lock()
		if d.state != stateRunning {
			d.mu.Unlock()
			return
		}
		if d.plane.Dirty() {
			d.plane.ClearDirty()
			if err := d.syncLocked(); err != nil {
				// Leave the frame pending so the next cycle retries it.
				d.plane.MarkDirty()
				d.logger.Printf("update failed: %v", err)
			}
		}
		d.mu.Unlock()
	}
}

// syncLocked performs one update cycle: a pending contrast change first,
// then the full frame. Callers must hold mu.
func (d *Dev) syncLocked() error {
	if d.contrastPending {
		if err := d.transport.SendCommandArgs(cmdContrastMaster, d.contrast>>4); err != nil {
			return err
		}
		d.contrastPending = false
	}
	return d.flushLocked()
}

// flushLocked pushes the full surface to the controller RAM. Callers must
// hold mu.
func (d *Dev) flushLocked() error {
	if err := d.transport.SendCommandArgs(cmdSetColumn, 0, byte(d.w-1)); err != nil {
		return err
	}
	if err := d.transport.SendCommandArgs(cmdSetRow, 0, byte(d.h-1)); err != nil {
		return err
	}
	if err := d.transport.SendCommand(cmdWriteRAM); err != nil {
		return err
	}
	return d.transport.SendData(d.plane.Bytes())
}

// SetContrast queues a master contrast update for delivery with the next
// frame. It never blocks on the transport. Like the drawing calls it must
// be made between Lock and Unlock.
func (d *Dev) SetContrast(v uint8) {
	if !d.drawable() {
		return
	}
	d.contrast = v
	d.contrastPending = true
	d.plane.MarkDirty()
}

// Disabled reports whether the engine has shut down permanently, either
// because bring-up exhausted its retry budget or after Halt.
func (d *Dev) Disabled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state == stateDisabled
}

// Halt turns the panel off and permanently disables the engine. An
// in-flight frame transmission is not interrupted; the sync task exits on
// its next cycle. Halt takes the lock itself and must not be called from
// inside a Lock/Unlock section.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == stateDisabled {
		return nil
	}
	d.state = stateDisabled
	d.kickLocked()
	return d.transport.SendCommand(cmdDisplayOff)
}
