package ssd1351

// pixel composes an intensity with the current foreground/background and
// stores the result. The 16-bit cell format weights the foreground
// multiplier against the background by the top four intensity bits; packed
// grayscale formats store the shifted intensity directly, with no blend.
func (d *Dev) pixel(x, y int, i uint8) {
	if bits := d.format.Bits(); bits <= 8 {
		d.plane.Set(x, y, uint32(i)>>uint(8-bits))
	} else {
		d.plane.Set(x, y, d.fgMul*uint32(i>>4)+d.bgMul*uint32((255-i)>>4))
	}
}

// place computes the top-left origin of a w×h box anchored at the cursor
// per the alignment bits, then advances the cursor for the next draw.
// mx/my are movement margins added beyond the box itself. Every shape and
// text primitive goes through here exactly once, which is what makes
// "draw, advance, draw again" sequencing work without the caller tracking
// positions.
func (d *Dev) place(w, h, mx, my int) (left, top int) {
	left, top = d.x, d.y
	if d.align&AlignCenter == AlignCenter {
		left -= (w - 1) / 2
	} else if d.align&AlignRight != 0 {
		left -= w - 1
	}
	if d.align&AlignMiddle == AlignMiddle {
		top -= (h - 1) / 2
	} else if d.align&AlignBottom != 0 {
		top -= h - 1
	}
	if d.align&MoveX != 0 {
		if d.align&AlignLeft != 0 {
			d.x += w + mx
		}
		if d.align&AlignRight != 0 {
			d.x -= w + mx
		}
	}
	if d.align&MoveY != 0 {
		if d.align&AlignTop != 0 {
			d.y += h + my
		}
		if d.align&AlignBottom != 0 {
			d.y -= h + my
		}
	}
	return left, top
}

// DrawPixel sets a single pixel through the current blend. Out-of-range
// coordinates are ignored.
func (d *Dev) DrawPixel(x, y int, i uint8) {
	if !d.drawable() {
		return
	}
	d.pixel(x, y, i)
}

// Clear fills the entire surface with one intensity.
func (d *Dev) Clear(i uint8) {
	if !d.drawable() {
		return
	}
	for y := 0; y < d.h; y++ {
		for x := 0; x < d.w; x++ {
			d.pixel(x, y, i)
		}
	}
}

// Box draws the one-pixel outline of a w×h box at the cursor.
func (d *Dev) Box(w, h int, i uint8) {
	if !d.drawable() {
		return
	}
	x, y := d.place(w, h, 0, 0)
	for n := 0; n < w; n++ {
		d.pixel(x+n, y, i)
		d.pixel(x+n, y+h-1, i)
	}
	for n := 1; n < h-1; n++ {
		d.pixel(x, y+n, i)
		d.pixel(x+w-1, y+n, i)
	}
}

// Fill draws a filled w×h rectangle at the cursor.
func (d *Dev) Fill(w, h int, i uint8) {
	if !d.drawable() {
		return
	}
	x, y := d.place(w, h, 0, 0)
	d.fillRect(x, y, w, h, i)
}

func (d *Dev) fillRect(x, y, w, h int, i uint8) {
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			d.pixel(x+col, y+row, i)
		}
	}
}

// Icon draws a w×h block of nibble-packed intensity data (high nibble =
// left pixel, tightly packed rows) at the cursor. A nil data slice clears
// the region instead.
func (d *Dev) Icon(w, h int, data []byte) {
	if !d.drawable() {
		return
	}
	if data == nil {
		d.Fill(w, h, 0)
		return
	}
	x, y := d.place(w, h, 0, 0)
	if d.format.Bits() == 4 {
		// The wire format matches the plane's own packing; copy straight
		// through and let the plane clip.
		d.plane.Blit(x, y, w, h, data, 0)
		return
	}
	d.blit(x, y, w, h, data, 0)
}

// blit expands nibble-packed intensity data through the current blend,
// one pixel at a time. stride is the source row length in bytes; 0 means
// the tightly packed default of ceil(w/2). Rows or columns beyond the
// source data are silently skipped.
func (d *Dev) blit(x, y, w, h int, data []byte, stride int) {
	if stride == 0 {
		stride = (w + 1) / 2
	}
	for row := 0; row < h; row++ {
		off := row * stride
		if off >= len(data) {
			return
		}
		src := data[off:]
		for col := 0; col < w; col++ {
			if col/2 >= len(src) {
				break
			}
			v := src[col/2]
			if col&1 == 0 {
				d.pixel(x+col, y+row, v&0xF0|v>>4)
			} else {
				d.pixel(x+col, y+row, v&0x0F|v<<4)
			}
		}
	}
}
