package texture

import (
	"image"
	"image/color"

	"graphite-raster/internal/fixed"
	"graphite-raster/internal/raster"
)

var byteMax = fixed.FromInt(255)

// Image is a nearest-texel raster.Texture over a decoded image. Texels are
// converted to fixed point once, at construction.
type Image struct {
	width, height int
	texels        []raster.Sample
}

var _ raster.Texture = (*Image)(nil)

// NewImage converts src to fixed-point texels.
func NewImage(src image.Image) *Image {
	b := src.Bounds()
	t := &Image{
		width:  b.Dx(),
		height: b.Dy(),
		texels: make([]raster.Sample, b.Dx()*b.Dy()),
	}
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			t.texels[i] = raster.Sample{
				R: channel(c.R),
				G: channel(c.G),
				B: channel(c.B),
				A: channel(c.A),
			}
			i++
		}
	}
	return t
}

func channel(c uint8) fixed.Fixed {
	return fixed.Div(fixed.FromInt(int(c)), byteMax)
}

// Bounds returns the texture size in texels.
func (t *Image) Bounds() (w, h int) { return t.width, t.height }

// Sample returns the texel at (floor(u·w), floor(v·h)). Each axis repeats
// unless its clamp flag is set, in which case it is clamped to the edge
// texel. An empty image samples as opaque white.
func (t *Image) Sample(u, v fixed.Fixed, clampS, clampT bool) raster.Sample {
	if t.width == 0 || t.height == 0 {
		return raster.White
	}
	x := address(u, t.width, clampS)
	y := address(v, t.height, clampT)
	return t.texels[y*t.width+x]
}

// address maps a coordinate to a texel index along an axis of n texels. The
// product is formed in 64 bits, so n may exceed the Q16.16 integer range.
func address(c fixed.Fixed, n int, clamp bool) int {
	i := int((int64(c) * int64(n)) >> fixed.Shift)
	if clamp {
		return min(max(i, 0), n-1)
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
