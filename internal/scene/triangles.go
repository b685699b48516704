package scene

import (
	mgl "github.com/go-gl/mathgl/mgl32"

	"graphite-raster/internal/fixed"
	"graphite-raster/internal/mesh"
	"graphite-raster/internal/raster"
)

// DrawOptions returns the per-triangle switches the scene asks for.
func (s *Scene) DrawOptions() raster.DrawOptions {
	return raster.DrawOptions{ClampS: s.ClampS, ClampT: s.ClampT, DepthTest: s.DepthTest}
}

// Triangles flattens the scene into rasterizer input: explicit triangles
// first, in file order, then each mesh projected through the camera. Every
// triangle is drawn with tex.
func (s *Scene) Triangles(tex raster.Texture) []raster.Triangle {
	opts := s.DrawOptions()

	out := make([]raster.Triangle, 0, len(s.Tris))
	for _, t := range s.Tris {
		out = append(out, raster.Triangle{
			V:       [3]raster.Vertex{t[0].toRaster(), t[1].toRaster(), t[2].toRaster()},
			Texture: tex,
			Options: opts,
		})
	}

	cam := s.Camera.resolve()
	for _, ref := range s.Meshes {
		m := mesh.ByName(ref.Shape)
		if m == nil {
			continue
		}
		out = append(out, mesh.Project(m, ref.Model(), cam, s.Width, s.Height, mesh.Options{
			Texture:  tex,
			Draw:     opts,
			Lighting: ref.Lighting,
		})...)
	}
	return out
}

// Model returns the model matrix: scale, then rotate X, Y, Z, then translate.
func (r MeshRef) Model() mgl.Mat4 {
	scale := r.Scale
	if scale == 0 {
		scale = 1
	}
	return mgl.Translate3D(r.Translate[0], r.Translate[1], r.Translate[2]).
		Mul4(mgl.HomogRotate3DZ(mgl.DegToRad(r.Rotate[2]))).
		Mul4(mgl.HomogRotate3DY(mgl.DegToRad(r.Rotate[1]))).
		Mul4(mgl.HomogRotate3DX(mgl.DegToRad(r.Rotate[0]))).
		Mul4(mgl.Scale3D(scale, scale, scale))
}

func (c *Camera) resolve() mesh.Camera {
	cam := mesh.DefaultCamera()
	if c == nil {
		return cam
	}
	if c.Eye != nil {
		cam.Eye = mgl.Vec3(*c.Eye)
	}
	if c.Target != nil {
		cam.Target = mgl.Vec3(*c.Target)
	}
	if c.Up != nil {
		cam.Up = mgl.Vec3(*c.Up)
	}
	if c.FovY != 0 {
		cam.FovY = mgl.DegToRad(c.FovY)
	}
	if c.Near != 0 {
		cam.Near = c.Near
	}
	if c.Far != 0 {
		cam.Far = c.Far
	}
	return cam
}

func (v Vertex) toRaster() raster.Vertex {
	f := fixed.FromFloat
	return raster.Vertex{
		X: f(v.X), Y: f(v.Y), Z: f(v.Z),
		U: f(v.U * v.Z), V: f(v.V * v.Z),
		R: f(v.R * v.Z), G: f(v.G * v.Z), B: f(v.B * v.Z), A: f(v.A * v.Z),
	}
}
