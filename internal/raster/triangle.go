package raster

import "graphite-raster/internal/fixed"

const k = fixed.ReciprocalNumerator

// DrawTriangle scan-converts one triangle and returns how many pixels it
// emitted to the sink.
//
// Only triangles whose signed area
//
//	edge(v0, v1, v2) = (v2.x − v0.x)(v1.y − v0.y) − (v2.y − v0.y)(v1.x − v0.x)
//
// is positive produce pixels: a pixel is covered when all three edge values
// are non-negative, so the opposite winding covers nothing. A nil tex samples
// as opaque white.
//
// Pixels are visited in row-major order over the triangle's bounding box
// clipped to the framebuffer. For each covered pixel that passes the depth
// test the packed colour goes to the sink and then the interpolated Z is
// written to the depth buffer.
//
// Vertices may lie anywhere in the Q16.16 range. Edge functions are evaluated
// in 64 bits, so large or partly off-screen triangles draw their visible part.
func (r *Rasterizer) DrawTriangle(v0, v1, v2 Vertex, tex Texture, opts DrawOptions) int {
	r.mustBeLive()

	box := triangleBounds(v0, v1, v2).clip(r.width, r.height)
	if box.empty() {
		return 0
	}

	p0, p1, p2 := v0.point(), v1.point(), v2.point()
	area := edgeFunction(p0, p1, p2)
	if area < 0 {
		return 0
	}
	norm := newNormalizer(area)

	emitted := 0
	for y := box.minY; y <= box.maxY; y++ {
		row := y * r.width
		for x := box.minX; x <= box.maxX; x++ {
			w0, w1, w2, inside := weights(p0, p1, p2, pixelPoint(x, y), norm)
			if !inside {
				continue
			}

			z := lerp(w0, w1, w2, v0.Z, v1.Z, v2.Z)
			idx := row + x
			if opts.DepthTest && z <= r.depth[idx] {
				continue
			}

			invZ := fixed.Reciprocal(z)
			u := perspective(lerp(w0, w1, w2, v0.U, v1.U, v2.U), invZ)
			v := perspective(lerp(w0, w1, w2, v0.V, v1.V, v2.V), invZ)
			cr := perspective(lerp(w0, w1, w2, v0.R, v1.R, v2.R), invZ)
			cg := perspective(lerp(w0, w1, w2, v0.G, v1.G, v2.G), invZ)
			cb := perspective(lerp(w0, w1, w2, v0.B, v1.B, v2.B), invZ)
			ca := perspective(lerp(w0, w1, w2, v0.A, v1.A, v2.A), invZ)

			s := sampleTexture(tex, u, v, opts)
			cr = fixed.Mul(cr, s.R)
			cg = fixed.Mul(cg, s.G)
			cb = fixed.Mul(cb, s.B)

			r.sink.DrawPixel(x, y, Pack4444(quantize4(cr), quantize4(cg), quantize4(cb), quantize4(ca)))
			r.depth[idx] = z
			emitted++
		}
	}
	return emitted
}

// DrawTriangles draws each triangle with its own texture and options and
// returns the total number of pixels emitted.
func (r *Rasterizer) DrawTriangles(tris []Triangle) int {
	n := 0
	for i := range tris {
		t := &tris[i]
		n += r.DrawTriangle(t.V[0], t.V[1], t.V[2], t.Texture, t.Options)
	}
	return n
}

// weights evaluates the three edge functions at p. When all are
// non-negative p is inside and the values are normalized by the triangle
// area into barycentric weights.
func weights(p0, p1, p2, p point, norm normalizer) (w0, w1, w2 fixed.Fixed, inside bool) {
	e0 := edgeFunction(p1, p2, p)
	e1 := edgeFunction(p2, p0, p)
	e2 := edgeFunction(p0, p1, p)
	if e0 < 0 || e1 < 0 || e2 < 0 {
		return 0, 0, 0, false
	}
	return norm.weight(e0), norm.weight(e1), norm.weight(e2), true
}

// lerp is the screen-space weighted sum Σ wᵢ·aᵢ.
func lerp(w0, w1, w2, a0, a1, a2 fixed.Fixed) fixed.Fixed {
	return fixed.Mul(w0, a0) + fixed.Mul(w1, a1) + fixed.Mul(w2, a2)
}

// perspective divides a screen-interpolated attribute by the interpolated Z,
// given invZ = fixed.Reciprocal(z). The K bias of the reciprocal is removed
// here.
func perspective(a, invZ fixed.Fixed) fixed.Fixed {
	return fixed.Div(fixed.Mul(a, invZ), k)
}
