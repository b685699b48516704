package raster

import "graphite-raster/internal/fixed"

// Vertex is the attribute bundle of one triangle corner.
//
// X and Y are screen-space pixel coordinates. Z is the perspective term:
// larger values are nearer the viewer. For perspective-correct results U, V
// and the colour channels must already be multiplied by Z; a flat (2D) caller
// passes Z = fixed.One and plain attributes.
type Vertex struct {
	X, Y, Z    fixed.Fixed
	U, V       fixed.Fixed
	R, G, B, A fixed.Fixed
}

// Triangle groups three vertices with the texture and options they are drawn
// with. Drivers produce slices of these; the rasterizer itself takes the
// vertices one call at a time.
type Triangle struct {
	V       [3]Vertex
	Texture Texture
	Options DrawOptions
}

// DrawOptions are the per-call switches of DrawTriangle.
type DrawOptions struct {
	// ClampS and ClampT select clamp (true) or wrap addressing per texture
	// axis. They are passed through to the Texture.
	ClampS bool
	ClampT bool

	// DepthTest enables the strict greater-than depth comparison.
	// With it off every covered pixel is emitted and still writes depth.
	DepthTest bool
}

// point returns the position used by the edge functions, snapped to
// 1/256 pixel.
func (v Vertex) point() point {
	const drop = fixed.Shift - subPixelBits
	return point{int64(v.X) >> drop, int64(v.Y) >> drop}
}
