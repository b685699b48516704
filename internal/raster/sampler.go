package raster

import "graphite-raster/internal/fixed"

// Sample is a texel colour with every channel in fixed-point [0, 1].
type Sample struct {
	R, G, B, A fixed.Fixed
}

// White is the opaque white sample returned for untextured draws.
var White = Sample{R: fixed.One, G: fixed.One, B: fixed.One, A: fixed.One}

// Texture is the sampling capability a draw call can be given.
//
// Sample maps perspective-corrected (u, v) to a colour. clampS and clampT
// select clamp (true) or wrap addressing on each axis; a texture without
// addressing modes may ignore them. Implementations must not retain state
// between calls that would make sampling order-dependent.
type Texture interface {
	Sample(u, v fixed.Fixed, clampS, clampT bool) Sample
}

// sampleTexture applies the absent-texture rule: no texture samples as
// opaque white regardless of (u, v).
func sampleTexture(tex Texture, u, v fixed.Fixed, opts DrawOptions) Sample {
	if tex == nil {
		return White
	}
	return tex.Sample(u, v, opts.ClampS, opts.ClampT)
}

// QuadrantTexture is a stand-in texture that splits the unit square at 0.5
// on both axes into four flat opaque colours:
//
//	u < 0.5, v < 0.5  white
//	u ≥ 0.5, v < 0.5  red
//	u < 0.5, v ≥ 0.5  green
//	u ≥ 0.5, v ≥ 0.5  blue
//
// It ignores the addressing flags.
type QuadrantTexture struct{}

var (
	quadRed   = Sample{R: fixed.One, A: fixed.One}
	quadGreen = Sample{G: fixed.One, A: fixed.One}
	quadBlue  = Sample{B: fixed.One, A: fixed.One}
)

func (QuadrantTexture) Sample(u, v fixed.Fixed, _, _ bool) Sample {
	switch {
	case u < fixed.Half && v < fixed.Half:
		return White
	case u >= fixed.Half && v < fixed.Half:
		return quadRed
	case u < fixed.Half && v >= fixed.Half:
		return quadGreen
	default:
		return quadBlue
	}
}
