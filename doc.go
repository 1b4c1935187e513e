// Package ssd1351 drives an SSD1351 OLED display via SPI.
//
// The package keeps a full in-memory copy of the panel (the plane) and a
// background sync task that transmits it whenever it changes. Drawing is
// stateful: a cursor, alignment flags and foreground/background colors
// live alongside the surface, and every shape or text primitive anchors
// itself at the cursor and then advances it. That makes "print a line,
// print the next" sequencing work without the caller doing geometry.
//
// # Locking
//
// All drawing calls must be wrapped in Lock/Unlock:
//
//	dev.Lock()
//	dev.SetPos(64, 64, ssd1351.AlignCenter|ssd1351.AlignMiddle)
//	dev.Text(2, "%d%%", charge)
//	dev.Unlock()
//
// Lock resets the drawing state to its defaults (origin, left/top with
// horizontal movement, white on black), so critical sections never
// inherit cursor or color state from one another. The sync task takes the
// same lock around frame transmission: a frame on the wire is always a
// consistent snapshot, and drawing simply blocks while one is in flight.
//
// # Synchronization
//
// The surface tracks a dirty flag; writes that change nothing do not
// raise it. The sync task sleeps until kicked (or a short poll interval
// elapses), then pushes the full frame and any queued contrast change.
// Transmission failures are logged and retried on the next cycle, so
// frame delivery is eventually consistent. Device bring-up is retried up
// to ten times; if the panel never answers, the engine frees the surface
// and every later call becomes a no-op.
//
// # Basic Usage
//
//	host.Init()
//	port, _ := spireg.Open("")
//	dc := gpioreg.ByName("GPIO25")
//
//	dev, err := ssd1351.NewSPI(port, dc, &ssd1351.Opts{
//		W: 128,
//		H: 128,
//		Fonts: fonts,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer dev.Halt()
//
// # Pixel formats
//
// The surface packing is a strategy chosen at construction: RGB565 cells
// (the SSD1351's native color mode, with intensity-weighted blending of
// the foreground against the background), or packed 4/8-bit grayscale for
// monochrome panels, where the intensity is stored directly. See the
// plane subpackage.
//
// # Fonts
//
// Glyph bitmaps are an external resource loaded through the font
// subpackage; without one, Text calls draw nothing. Characters pack two
// pixels per byte, high nibble on the left, the same layout Icon accepts.
package ssd1351
