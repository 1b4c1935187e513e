package ssd1351

import (
	"fmt"

	"github.com/oledfx/ssd1351/font"
)

// measureChar returns the printed width of c at a font size. Characters
// below the printable range are fixed-size cursor moves rather than
// glyphs, '.' and ':' print narrow, everything else uses the cell width.
func measureChar(c byte, size int) int {
	if c&0x80 != 0 {
		return 0
	}
	scale := size
	if scale == 0 {
		scale = 1
	}
	if c < ' ' {
		return int(c) * scale
	}
	if c == ':' || c == '.' {
		return 2 * scale
	}
	return font.CellWidth(size)
}

// Text formats and draws one line of text at the cursor, returning the
// cursor position after the draw.
//
// size selects the glyph table: 0 is the small 4×5 font, n ≥ 1 a 6n-wide
// cell drawn 7n rows tall. A negative size selects the same table at -size
// but draws 9 rows per unit, allowing descenders. Sizes beyond the largest
// registered table clamp down to it; if that table slot is empty the call
// draws nothing.
func (d *Dev) Text(size int, format string, args ...any) (x, y int) {
	if !d.drawable() || d.fonts == nil {
		return d.x, d.y
	}
	s := fmt.Sprintf(format, args...)
	if max := d.w/4 + 2; len(s) > max {
		s = s[:max]
	}

	rows := 7 // drawn rows per unit size, descenders clipped
	if size < 0 {
		size, rows = -size, 9
	} else if size == 0 {
		rows = 5
	}
	if m := d.fonts.Max(); size > m {
		size = m
	}
	if size < 0 || !d.fonts.Has(size) {
		return d.x, d.y
	}
	scale := size
	if scale == 0 {
		scale = 1
	}

	h := rows * scale
	w := 0
	for i := 0; i < len(s); i++ {
		w += measureChar(s[i], size)
	}
	if w > 0 {
		w-- // the trailing margin pixel is not part of the text
	}

	cx, cy := d.place(w, h, scale, scale)
	for i := 0; i < len(s); i++ {
		c := s[i]
		cw := measureChar(c, size)
		if cw == 0 {
			continue
		}
		if c < ' ' {
			// Spacing directive: advance without touching the surface.
			cx += cw
			continue
		}
		glyph, stride := d.fonts.Glyph(size, c)
		d.blit(cx, cy, cw, h, glyph, stride)
		cx += cw
	}
	return d.x, d.y
}
