// Package plane implements the in-memory pixel surface backing an OLED
// display.
//
// A Plane owns a packed byte buffer sized for its pixel format and keeps a
// dirty flag that is raised whenever a write actually changes stored
// content. The format (nibble-packed grayscale, byte grayscale or 16-bit
// RGB565 cells) is a strategy selected once at construction; the rest of
// the engine never inspects the packing itself.
package plane

import (
	"encoding/binary"
	"errors"
)

// Format converts between pixel values and the packed representation
// stored in a Plane. Implementations are stateless.
type Format interface {
	// Bits is the number of significant bits stored per pixel.
	Bits() int
	// Stride is the number of backing bytes per row of w pixels.
	Stride(w int) int
	// Pack stores v at horizontal position x within a row.
	Pack(row []byte, x int, v uint32)
	// Unpack reads the stored value at horizontal position x within a row.
	Unpack(row []byte, x int) uint32
}

// Gray4 packs two 4-bit pixels per byte: high nibble is the left pixel,
// low nibble the right one. This matches the native RAM layout of the
// SSD13xx grayscale controllers.
type Gray4 struct{}

func (Gray4) Bits() int        { return 4 }
func (Gray4) Stride(w int) int { return (w + 1) / 2 }

func (Gray4) Pack(row []byte, x int, v uint32) {
	shift := uint(4 * (1 - x&1))
	row[x/2] = row[x/2]&^(0x0F<<shift) | byte(v&0x0F)<<shift
}

func (Gray4) Unpack(row []byte, x int) uint32 {
	shift := uint(4 * (1 - x&1))
	return uint32(row[x/2]>>shift) & 0x0F
}

// Gray8 stores one 8-bit grayscale pixel per byte.
type Gray8 struct{}

func (Gray8) Bits() int        { return 8 }
func (Gray8) Stride(w int) int { return w }

func (Gray8) Pack(row []byte, x int, v uint32) { row[x] = byte(v) }
func (Gray8) Unpack(row []byte, x int) uint32  { return uint32(row[x]) }

// RGB565 stores one 16-bit color cell per pixel in big-endian byte order,
// the order the controller expects on the wire.
type RGB565 struct{}

func (RGB565) Bits() int        { return 16 }
func (RGB565) Stride(w int) int { return 2 * w }

func (RGB565) Pack(row []byte, x int, v uint32) {
	binary.BigEndian.PutUint16(row[2*x:], uint16(v))
}

func (RGB565) Unpack(row []byte, x int) uint32 {
	return uint32(binary.BigEndian.Uint16(row[2*x:]))
}

// Plane is the full-display pixel surface. It is not safe for concurrent
// use; the engine serializes access through its lock.
type Plane struct {
	w, h   int
	format Format
	mask   uint32
	pix    []byte
	dirty  bool
}

// New allocates a w×h surface using the given pixel format.
func New(w, h int, f Format) (*Plane, error) {
	if w <= 0 || h <= 0 {
		return nil, errors.New("plane: dimensions must be positive")
	}
	if f == nil {
		return nil, errors.New("plane: format is required")
	}
	return &Plane{
		w:      w,
		h:      h,
		format: f,
		mask:   1<<uint(f.Bits()) - 1,
		pix:    make([]byte, f.Stride(w)*h),
	}, nil
}

func (p *Plane) W() int         { return p.w }
func (p *Plane) H() int         { return p.h }
func (p *Plane) Format() Format { return p.format }

// Bytes exposes the backing buffer in transmission order. Callers must not
// hold the slice across writes.
func (p *Plane) Bytes() []byte { return p.pix }

// Dirty reports whether the surface has changes not yet transmitted.
func (p *Plane) Dirty() bool { return p.dirty }

// ClearDirty marks the current content as transmitted.
func (p *Plane) ClearDirty() { p.dirty = false }

// MarkDirty forces a retransmission of the current content.
func (p *Plane) MarkDirty() { p.dirty = true }

// Set stores v at (x, y). Out-of-bounds coordinates are ignored. The dirty
// flag is raised only when the stored value actually changes.
func (p *Plane) Set(x, y int, v uint32) {
	if x < 0 || x >= p.w || y < 0 || y >= p.h {
		return
	}
	v &= p.mask
	row := p.pix[y*p.format.Stride(p.w):]
	if p.format.Unpack(row, x) == v {
		return
	}
	p.format.Pack(row, x, v)
	p.dirty = true
}

// At returns the stored value at (x, y); ok is false outside the surface.
func (p *Plane) At(x, y int) (v uint32, ok bool) {
	if p == nil || x < 0 || x >= p.w || y < 0 || y >= p.h {
		return 0, false
	}
	return p.format.Unpack(p.pix[y*p.format.Stride(p.w):], x), true
}

// Blit copies a w×h block of plane-format pixel data to (x, y), clipping
// any part that falls outside the surface. A nil src clears the region to
// zero instead. stride is the source row length in bytes; 0 selects the
// tightly packed default for w pixels.
func (p *Plane) Blit(x, y, w, h int, src []byte, stride int) {
	if w <= 0 || h <= 0 {
		return
	}
	if stride == 0 {
		stride = p.format.Stride(w)
	}
	for row := 0; row < h; row++ {
		var line []byte
		if src != nil {
			off := row * stride
			if off >= len(src) {
				return
			}
			line = src[off:]
		}
		for col := 0; col < w; col++ {
			var v uint32
			if line != nil {
				if p.format.Stride(col+1) > len(line) {
					break
				}
				v = p.format.Unpack(line, col)
			}
			p.Set(x+col, y+row, v)
		}
	}
}

// Fill sets every pixel of the surface to v.
func (p *Plane) Fill(v uint32) {
	for y := 0; y < p.h; y++ {
		for x := 0; x < p.w; x++ {
			p.Set(x, y, v)
		}
	}
}
