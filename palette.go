package ssd1351

// RGB565 channel units and full-intensity channel multipliers. A channel
// multiplier scaled by a 4-bit intensity must stay inside its field, so
// the full values sit just below the field maximum.
const (
	rUnit = 1 << 11
	gUnit = 1 << 5
	bUnit = 1

	colorBlack   = 0
	colorRed     = 2 * rUnit
	colorGreen   = 4 * gUnit
	colorBlue    = 2 * bUnit
	colorCyan    = colorGreen + colorBlue
	colorMagenta = colorRed + colorBlue
	colorYellow  = colorRed + colorGreen
	colorWhite   = colorRed + colorGreen + colorBlue
)

// lookup resolves a color token to the storage multiplier for the
// configured format. Lowercase hue tokens are half intensity, uppercase
// full; anything unrecognized means full white. Packed grayscale formats
// only distinguish black from white.
func (d *Dev) lookup(c byte) uint32 {
	if d.format.Bits() <= 8 {
		if c == 'k' || c == 'K' {
			return 0
		}
		return 1
	}
	switch c {
	case 'k', 'K':
		return colorBlack
	case 'r':
		return colorRed >> 1
	case 'R':
		return colorRed
	case 'g':
		return colorGreen >> 1
	case 'G':
		return colorGreen
	case 'b':
		return colorBlue >> 1
	case 'B':
		return colorBlue
	case 'c':
		return colorCyan >> 1
	case 'C':
		return colorCyan
	case 'm':
		return colorMagenta >> 1
	case 'M':
		return colorMagenta
	case 'y':
		return colorYellow >> 1
	case 'Y':
		return colorYellow
	case 'w':
		return colorWhite >> 1
	case 'o', 'O':
		return colorRed + colorGreen>>1
	}
	return colorWhite
}
