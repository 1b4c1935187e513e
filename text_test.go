package ssd1351

import (
	"testing"

	"github.com/oledfx/ssd1351/font"
	"github.com/oledfx/ssd1351/plane"
)

// solidFonts builds a glyph table whose cells are fully lit, which makes
// blit geometry observable on the surface.
func solidFonts(t *testing.T, sizes ...int) *font.Table {
	t.Helper()
	tbl := font.NewTable()
	for _, size := range sizes {
		n := font.GlyphCount * font.CellWidth(size) / 2 * font.CellHeight(size)
		data := make([]byte, n)
		for i := range data {
			data[i] = 0xFF
		}
		if err := tbl.Register(size, data); err != nil {
			t.Fatal(err)
		}
	}
	return tbl
}

func TestMeasureChar(t *testing.T) {
	tests := []struct {
		name string
		c    byte
		size int
		want int
	}{
		{"digit size 2", '8', 2, 12},
		{"digit size 1", '8', 1, 6},
		{"digit size 0", '8', 0, 4},
		{"dot size 2", '.', 2, 4},
		{"colon size 1", ':', 1, 2},
		{"colon size 0", ':', 0, 2},
		{"spacing directive", 5, 2, 10},
		{"spacing directive unscaled", 5, 0, 5},
		{"high bit set", 0x85, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := measureChar(tt.c, tt.size); got != tt.want {
				t.Errorf("measureChar(%#x, %d) = %d, want %d", tt.c, tt.size, got, tt.want)
			}
		})
	}
}

func TestTextWidth(t *testing.T) {
	dev := newTestDev(t, 128, 128, plane.Gray4{})
	dev.fonts = solidFonts(t, 2)

	dev.Lock()
	x, y := dev.Text(2, "88")
	dev.Unlock()

	// "88" is two full cells minus the shared trailing margin pixel, and
	// the cursor then advances past the scaled margin.
	width := 2*font.CellWidth(2) - 1
	if want := width + 2; x != want || y != 0 {
		t.Errorf("cursor after Text = (%d, %d), want (%d, 0)", x, y, want)
	}

	// Drawn height is 7 rows per unit size, descenders clipped.
	if at(t, dev, 0, 13) != 0xF {
		t.Error("row 13 should be inside the drawn text")
	}
	if at(t, dev, 0, 14) != 0 {
		t.Error("row 14 should be below the drawn text")
	}
}

func TestTextCenterPlacement(t *testing.T) {
	dev := newTestDev(t, 128, 128, plane.Gray4{})
	dev.fonts = solidFonts(t, 2)

	dev.Lock()
	dev.SetPos(64, 64, AlignCenter|AlignMiddle)
	dev.Text(2, "88")
	dev.Unlock()

	// Width 23, height 14: top-left lands at (64-11, 64-6).
	if at(t, dev, 53, 58) != 0xF {
		t.Error("pixel at the expected top-left is not set")
	}
	if at(t, dev, 52, 58) != 0 {
		t.Error("pixel left of the text box was written")
	}
	if at(t, dev, 53, 57) != 0 {
		t.Error("pixel above the text box was written")
	}
}

func TestTextDescenderHeight(t *testing.T) {
	short := newTestDev(t, 64, 64, plane.Gray4{})
	short.fonts = solidFonts(t, 1)
	short.Lock()
	short.Text(1, "8")
	short.Unlock()
	if at(t, short, 0, 6) != 0xF || at(t, short, 0, 7) != 0 {
		t.Error("positive size must draw 7 rows per unit")
	}

	tall := newTestDev(t, 64, 64, plane.Gray4{})
	tall.fonts = solidFonts(t, 1)
	tall.Lock()
	tall.Text(-1, "8")
	tall.Unlock()
	if at(t, tall, 0, 8) != 0xF {
		t.Error("negative size must draw 9 rows per unit for descenders")
	}
}

func TestTextSizeZero(t *testing.T) {
	dev := newTestDev(t, 64, 64, plane.Gray4{})
	dev.fonts = solidFonts(t, 0)

	dev.Lock()
	x, _ := dev.Text(0, "A")
	dev.Unlock()

	// One 4-wide cell minus the margin pixel, cursor past a 1px margin.
	if x != 4 {
		t.Errorf("cursor x = %d, want 4", x)
	}
	if at(t, dev, 0, 4) != 0xF || at(t, dev, 0, 5) != 0 {
		t.Error("size 0 must draw 5 rows")
	}
}

func TestTextSizeClamping(t *testing.T) {
	dev := newTestDev(t, 64, 64, plane.Gray4{})
	dev.fonts = solidFonts(t, 1)

	dev.Lock()
	x, _ := dev.Text(5, "8")
	dev.Unlock()

	// Size 5 clamps down to the largest registered table (1).
	if want := font.CellWidth(1) - 1 + 1; x != want {
		t.Errorf("cursor x = %d, want %d", x, want)
	}
}

func TestTextMissingSizeIsNoop(t *testing.T) {
	tbl := solidFonts(t, 2) // slots 0 and 1 stay empty
	dev := newTestDev(t, 64, 64, plane.Gray4{})
	dev.fonts = tbl

	dev.Lock()
	x, y := dev.Text(1, "8")
	dirty := dev.plane.Dirty()
	dev.Unlock()

	if x != 0 || y != 0 {
		t.Errorf("cursor = (%d, %d), want (0, 0)", x, y)
	}
	if dirty {
		t.Error("rendering at an unregistered size must not touch the surface")
	}
}

func TestTextWithoutFontsIsNoop(t *testing.T) {
	dev := newTestDev(t, 64, 64, plane.Gray4{})
	dev.Lock()
	x, y := dev.Text(1, "8")
	dev.Unlock()
	if x != 0 || y != 0 || dev.plane.Dirty() {
		t.Error("Text without a glyph table must be a no-op")
	}
}

func TestTextTruncation(t *testing.T) {
	dev := newTestDev(t, 16, 64, plane.Gray4{})
	dev.fonts = solidFonts(t, 1)

	dev.Lock()
	x, _ := dev.Text(1, "%s", "ABCDEFGHIJ")
	dev.Unlock()

	// A 16-wide panel truncates text to 6 characters.
	if want := 6*font.CellWidth(1) - 1 + 1; x != want {
		t.Errorf("cursor x = %d, want %d", x, want)
	}
}

func TestTextSpacingDirective(t *testing.T) {
	dev := newTestDev(t, 64, 64, plane.Gray4{})
	dev.fonts = solidFonts(t, 1)

	dev.Lock()
	x, _ := dev.Text(1, "\x038")
	dev.Unlock()

	// The 0x03 byte advances three pixels without drawing; the glyph
	// starts at column 3.
	if at(t, dev, 0, 0) != 0 || at(t, dev, 2, 0) != 0 {
		t.Error("spacing directive must not draw")
	}
	if at(t, dev, 3, 0) != 0xF {
		t.Error("glyph after the spacing directive starts at column 3")
	}
	if want := 3 + font.CellWidth(1) - 1 + 1; x != want {
		t.Errorf("cursor x = %d, want %d", x, want)
	}
}

func TestTextFormats(t *testing.T) {
	dev := newTestDev(t, 128, 64, plane.Gray4{})
	dev.fonts = solidFonts(t, 1)

	dev.Lock()
	x, _ := dev.Text(1, "%02d:%02d", 7, 5)
	dev.Unlock()

	// "07:05" is four cells plus a narrow colon.
	width := 4*font.CellWidth(1) + 2 - 1
	if want := width + 1; x != want {
		t.Errorf("cursor x = %d, want %d", x, want)
	}
}
