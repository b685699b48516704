// Package framebuffer is an in-memory ARGB4444 colour buffer that receives
// pixels from a raster.Rasterizer.
package framebuffer

import (
	"image"

	"graphite-raster/internal/raster"
)

// DefaultClear is the background the original demo clears to: opaque dark
// grey.
const DefaultClear uint16 = 0xF333

// Buffer holds one frame as a flat slice of packed ARGB4444 pixels,
// row-major, len = Width*Height.
type Buffer struct {
	Width  int
	Height int
	Pix    []uint16
}

var _ raster.PixelSink = (*Buffer)(nil)

// New allocates a buffer cleared to transparent black.
func New(w, h int) *Buffer {
	return &Buffer{
		Width:  w,
		Height: h,
		Pix:    make([]uint16, w*h),
	}
}

// Clear fills the buffer with c.
func (b *Buffer) Clear(c uint16) {
	for i := range b.Pix {
		b.Pix[i] = c
	}
}

// DrawPixel stores c at (x, y). Out-of-range coordinates are ignored.
func (b *Buffer) DrawPixel(x, y int, c uint16) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return
	}
	b.Pix[y*b.Width+x] = c
}

// At returns the packed pixel at (x, y), or 0 outside the buffer.
func (b *Buffer) At(x, y int) uint16 {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return 0
	}
	return b.Pix[y*b.Width+x]
}

// NRGBA expands the buffer to 8 bits per channel. Each 4-bit channel n maps
// to n*17, so 0xF becomes 0xFF exactly.
func (b *Buffer) NRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	b.expand(img.Pix, false)
	return img
}

// RGBA writes premultiplied RGBA bytes into dst, which must hold
// 4*Width*Height bytes. Presentation layers that upload raw pixels use it.
func (b *Buffer) RGBA(dst []byte) {
	b.expand(dst, true)
}

func (b *Buffer) expand(dst []byte, premultiply bool) {
	for i, c := range b.Pix {
		r, g, bl, a := raster.Unpack4444(c)
		r, g, bl, a = r*17, g*17, bl*17, a*17
		if premultiply {
			r, g, bl = r*a/255, g*a/255, bl*a/255
		}
		o := i * 4
		dst[o] = uint8(r)
		dst[o+1] = uint8(g)
		dst[o+2] = uint8(bl)
		dst[o+3] = uint8(a)
	}
}
