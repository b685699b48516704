package mesh

import (
	mgl "github.com/go-gl/mathgl/mgl32"

	"graphite-raster/internal/fixed"
	"graphite-raster/internal/raster"
)

// Light is a single directional light plus an ambient term. Dir is the
// direction the light travels.
type Light struct {
	Dir     mgl.Vec3
	Ambient float32
	Diffuse float32
}

// DefaultLight shines from the camera side into the scene.
func DefaultLight() Light {
	return Light{Dir: mgl.Vec3{0, -0.5, -1}.Normalize(), Ambient: 0.25, Diffuse: 0.75}
}

// shade returns ambient + max(0, n·−L)·diffuse, capped at 1.
func (l Light) shade(n mgl.Vec3) float32 {
	s := l.Ambient + max(0, n.Dot(l.Dir.Mul(-1)))*l.Diffuse
	return min(s, 1)
}

// Options control how Project builds triangles.
type Options struct {
	Texture raster.Texture
	Draw    raster.DrawOptions

	// Lighting scales vertex colours by the flat shade of each face.
	Lighting bool
	// Light is used when Lighting is set. The zero value means DefaultLight.
	Light Light
}

// Project transforms m by model and cam into screen-space triangles for a
// width×height framebuffer.
//
// Screen x = (ndc.x·0.5 + 0.5)·width and y = (0.5 − ndc.y·0.5)·height, so
// counter-clockwise front faces keep a positive edge-function area and back
// faces are rejected by the rasterizer. Z is 1/w_clip and u, v and the colour
// channels are pre-multiplied by it for perspective correction. Triangles
// with any corner at or behind the near plane are dropped whole.
func Project(m *Mesh, model mgl.Mat4, cam Camera, width, height int, opts Options) []raster.Triangle {
	if m == nil || width <= 0 || height <= 0 {
		return nil
	}
	light := opts.Light
	if light == (Light{}) {
		light = DefaultLight()
	}

	w, h := float32(width), float32(height)
	mvp := cam.Projection(w / h).Mul4(cam.View()).Mul4(model)

	tris := make([]raster.Triangle, 0, m.Triangles())
	for i := 0; i+2 < len(m.Indices); i += 3 {
		src := [3]Vertex{
			m.Vertices[m.Indices[i]],
			m.Vertices[m.Indices[i+1]],
			m.Vertices[m.Indices[i+2]],
		}

		var clip [3]mgl.Vec4
		behind := false
		for j, v := range src {
			clip[j] = mvp.Mul4x1(v.Pos.Vec4(1))
			if clip[j].W() <= cam.Near {
				behind = true
			}
		}
		if behind {
			continue
		}

		shade := float32(1)
		if opts.Lighting {
			shade = light.shade(faceNormal(model, src))
		}

		tri := raster.Triangle{Texture: opts.Texture, Options: opts.Draw}
		for j, v := range src {
			tri.V[j] = screenVertex(clip[j], v, shade, w, h)
		}
		tris = append(tris, tri)
	}
	return tris
}

// faceNormal is the unit world-space normal of a counter-clockwise face.
func faceNormal(model mgl.Mat4, src [3]Vertex) mgl.Vec3 {
	var p [3]mgl.Vec3
	for i, v := range src {
		p[i] = model.Mul4x1(v.Pos.Vec4(1)).Vec3()
	}
	n := p[1].Sub(p[0]).Cross(p[2].Sub(p[0]))
	if n.Len() == 0 {
		return n
	}
	return n.Normalize()
}

func screenVertex(clip mgl.Vec4, v Vertex, shade, w, h float32) raster.Vertex {
	z := 1 / clip.W()
	ndcX, ndcY := clip.X()*z, clip.Y()*z
	c := v.Color
	return raster.Vertex{
		X: f((ndcX*0.5 + 0.5) * w),
		Y: f((0.5 - ndcY*0.5) * h),
		Z: f(z),
		U: f(v.UV.X() * z),
		V: f(v.UV.Y() * z),
		R: f(c.X() * shade * z),
		G: f(c.Y() * shade * z),
		B: f(c.Z() * shade * z),
		A: f(c.W() * z),
	}
}

func f(x float32) fixed.Fixed { return fixed.FromFloat(float64(x)) }
