package texture

import (
	"image"
	"image/color"

	"graphite-raster/internal/raster"
)

// QuadrantSize is the edge length of the demo quadrant texture.
const QuadrantSize = 32

var (
	quadWhite = color.NRGBA{0xFF, 0xFF, 0xFF, 0xFF}
	quadRed   = color.NRGBA{0xFF, 0x00, 0x00, 0xFF}
	quadGreen = color.NRGBA{0x00, 0xFF, 0x00, 0xFF}
	quadBlue  = color.NRGBA{0x00, 0x00, 0xFF, 0xFF}
)

// Quadrants returns a size×size image split into white (top left), red (top
// right), green (bottom left) and blue (bottom right). Sampled through Image
// over [0, 1) it matches raster.QuadrantTexture.
func Quadrants(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	half := size / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := quadWhite
			switch {
			case x >= half && y < half:
				c = quadRed
			case x < half && y >= half:
				c = quadGreen
			case x >= half && y >= half:
				c = quadBlue
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// Pack4444 converts img to a row-major ARGB4444 texel stream, keeping the
// high nibble of each 8-bit channel.
func Pack4444(img image.Image) []uint16 {
	b := img.Bounds()
	out := make([]uint16, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			out = append(out, raster.Pack4444(int(c.R>>4), int(c.G>>4), int(c.B>>4), int(c.A>>4)))
		}
	}
	return out
}
