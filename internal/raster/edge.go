package raster

import (
	"math"

	"graphite-raster/internal/fixed"
)

// subPixelBits is the precision positions are snapped to before the edge
// functions run: 1/256 of a pixel.
const subPixelBits = 8

// point is a screen position in 1/256-pixel units. Edge products of two such
// coordinates carry 16 fractional bits, the Q16.16 scale, and stay far below
// 2^63 for any Q16.16 vertex.
type point struct {
	x, y int64
}

func pixelPoint(x, y int) point {
	return point{int64(x) << subPixelBits, int64(y) << subPixelBits}
}

// edgeFunction is the signed edge test of c against the directed line a→b:
//
//	(c.x − a.x)(b.y − a.y) − (c.y − a.y)(b.x − a.x)
//
// Evaluated on the triangle's own vertices it gives twice the signed area.
// The result is a Q16.16 raw value widened to 64 bits.
func edgeFunction(a, b, c point) int64 {
	return (c.x-a.x)*(b.y-a.y) - (c.y-a.y)*(b.x-a.x)
}

// normalizer turns edge values into barycentric weights by dividing them by
// the doubled triangle area through fixed.Reciprocal. Areas past the Q16.16
// range are shifted down until they fit, and every edge value with them.
type normalizer struct {
	shift   uint
	invArea fixed.Fixed
}

func newNormalizer(area int64) normalizer {
	var shift uint
	for area > math.MaxInt32 {
		area >>= 1
		shift++
	}
	return normalizer{shift: shift, invArea: fixed.Reciprocal(fixed.Fixed(area))}
}

// weight normalizes one edge value. Inside the triangle 0 <= e <= area, so
// the shifted value always fits.
func (n normalizer) weight(e int64) fixed.Fixed {
	return fixed.Div(fixed.Mul(fixed.Fixed(e>>n.shift), n.invArea), k)
}

// bounds is an inclusive integer pixel rectangle.
type bounds struct {
	minX, minY, maxX, maxY int
}

func triangleBounds(v0, v1, v2 Vertex) bounds {
	x0, x1, x2 := v0.X.Int(), v1.X.Int(), v2.X.Int()
	y0, y1, y2 := v0.Y.Int(), v1.Y.Int(), v2.Y.Int()
	return bounds{
		minX: min(x0, x1, x2),
		minY: min(y0, y1, y2),
		maxX: max(x0, x1, x2),
		maxY: max(y0, y1, y2),
	}
}

// clip limits b to [0, w) × [0, h). The result may be empty.
func (b bounds) clip(w, h int) bounds {
	b.minX = max(b.minX, 0)
	b.minY = max(b.minY, 0)
	b.maxX = min(b.maxX, w-1)
	b.maxY = min(b.maxY, h-1)
	return b
}

func (b bounds) empty() bool {
	return b.minX > b.maxX || b.minY > b.maxY
}
