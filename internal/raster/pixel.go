package raster

import "graphite-raster/internal/fixed"

// PixelSink receives finished pixels. c is packed ARGB4444 (see Pack4444).
type PixelSink interface {
	DrawPixel(x, y int, c uint16)
}

// PixelSinkFunc adapts an ordinary function to PixelSink.
type PixelSinkFunc func(x, y int, c uint16)

func (f PixelSinkFunc) DrawPixel(x, y int, c uint16) { f(x, y, c) }

// Pack4444 packs four 4-bit channels as a<<12 | r<<8 | g<<4 | b.
// Channels are masked to four bits.
func Pack4444(r, g, b, a int) uint16 {
	return uint16((a&0xF)<<12 | (r&0xF)<<8 | (g&0xF)<<4 | b&0xF)
}

// Unpack4444 is the inverse of Pack4444.
func Unpack4444(c uint16) (r, g, b, a int) {
	return int(c>>8) & 0xF, int(c>>4) & 0xF, int(c) & 0xF, int(c>>12) & 0xF
}

var fifteen = fixed.FromInt(15)

// quantize4 scales a [0, 1] channel to 0..15 and truncates. Out-of-range
// channels saturate instead of bleeding into the neighbouring nibble.
func quantize4(c fixed.Fixed) int {
	q := fixed.Mul(c, fifteen).Int()
	return min(max(q, 0), 15)
}
