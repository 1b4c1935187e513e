// Package font manages the external glyph tables consumed by the text
// renderer.
//
// Glyph bitmaps are an opaque resource generated outside this module. A
// table holds one bitmap per font size: size 0 is a small fixed 4×5 font,
// size n ≥ 1 uses a 6n×9n pixel cell. Each bitmap covers the printable
// ASCII range (0x20–0x7F, 96 glyphs) and packs two pixels per byte with
// the high nibble on the left, rows first.
package font

import (
	"errors"
	"fmt"
	"os"
)

const (
	// FirstChar is the first character present in a glyph bitmap.
	FirstChar = ' '
	// GlyphCount is the number of glyphs per bitmap.
	GlyphCount = 96
)

// CellWidth returns the glyph cell width in pixels for a font size.
func CellWidth(size int) int {
	if size == 0 {
		return 4
	}
	return 6 * size
}

// CellHeight returns the glyph cell height in pixels for a font size.
func CellHeight(size int) int {
	if size == 0 {
		return 5
	}
	return 9 * size
}

// cellBytes is the packed byte length of one glyph cell.
func cellBytes(size int) int {
	return CellWidth(size) / 2 * CellHeight(size)
}

// Table indexes glyph bitmaps by font size. A table with gaps is valid;
// rendering at a missing size is a no-op at the engine level.
type Table struct {
	sizes [][]byte
}

// NewTable returns an empty glyph table.
func NewTable() *Table { return &Table{} }

// Register installs the bitmap for one font size. The bitmap length must
// match the packed size of 96 glyph cells exactly.
func (t *Table) Register(size int, data []byte) error {
	if size < 0 {
		return errors.New("font: size must be non-negative")
	}
	if want := GlyphCount * cellBytes(size); len(data) != want {
		return fmt.Errorf("font: size %d bitmap is %d bytes, want %d", size, len(data), want)
	}
	for len(t.sizes) <= size {
		t.sizes = append(t.sizes, nil)
	}
	t.sizes[size] = data
	return nil
}

// LoadFile reads a glyph bitmap from disk and registers it under size.
func (t *Table) LoadFile(size int, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("font: %w", err)
	}
	return t.Register(size, data)
}

// Max returns the largest registered size slot, or -1 for an empty table.
func (t *Table) Max() int { return len(t.sizes) - 1 }

// Has reports whether a bitmap is registered for size.
func (t *Table) Has(size int) bool {
	return size >= 0 && size < len(t.sizes) && t.sizes[size] != nil
}

// Glyph returns the cell bitmap for character c at the given size together
// with the source row stride in bytes. The narrow characters '.' and ':'
// share their cell with a sub-cell offset two scaled pixels in.
func (t *Table) Glyph(size int, c byte) (data []byte, stride int) {
	if !t.Has(size) || c < FirstChar || c > 0x7F {
		return nil, 0
	}
	stride = CellWidth(size) / 2
	off := int(c-FirstChar) * cellBytes(size)
	if c == ':' || c == '.' {
		off += size
	}
	return t.sizes[size][off:], stride
}
