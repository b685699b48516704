// Package mesh holds small indexed triangle meshes and projects them through
// a perspective camera into rasterizer vertex bundles.
package mesh

import (
	mgl "github.com/go-gl/mathgl/mgl32"
)

// Vertex is one mesh corner in model space.
type Vertex struct {
	Pos   mgl.Vec3
	UV    mgl.Vec2
	Color mgl.Vec4
}

// Mesh is an indexed triangle list. Front faces wind counter-clockwise when
// seen from outside.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint16
}

// Triangles returns the number of triangles in m.
func (m *Mesh) Triangles() int { return len(m.Indices) / 3 }

var faceColors = []mgl.Vec4{
	{1, 1, 1, 1},
	{1, 0.3, 0.3, 1},
	{0.3, 1, 0.3, 1},
	{0.3, 0.3, 1, 1},
	{1, 1, 0.3, 1},
	{0.3, 1, 1, 1},
}

// Cube returns a unit cube centred on the origin. Every face has its own four
// vertices so it carries the full [0,1]² texture and a flat colour.
func Cube() *Mesh {
	faces := []struct{ normal, right, up mgl.Vec3 }{
		{mgl.Vec3{0, 0, 1}, mgl.Vec3{1, 0, 0}, mgl.Vec3{0, 1, 0}},
		{mgl.Vec3{0, 0, -1}, mgl.Vec3{-1, 0, 0}, mgl.Vec3{0, 1, 0}},
		{mgl.Vec3{1, 0, 0}, mgl.Vec3{0, 0, -1}, mgl.Vec3{0, 1, 0}},
		{mgl.Vec3{-1, 0, 0}, mgl.Vec3{0, 0, 1}, mgl.Vec3{0, 1, 0}},
		{mgl.Vec3{0, 1, 0}, mgl.Vec3{1, 0, 0}, mgl.Vec3{0, 0, -1}},
		{mgl.Vec3{0, -1, 0}, mgl.Vec3{1, 0, 0}, mgl.Vec3{0, 0, 1}},
	}

	m := &Mesh{Name: "cube"}
	for i, f := range faces {
		base := uint16(len(m.Vertices))
		c := faceColors[i]
		corner := func(sr, su float32) mgl.Vec3 {
			return f.normal.Add(f.right.Mul(sr)).Add(f.up.Mul(su)).Mul(0.5)
		}
		m.Vertices = append(m.Vertices,
			Vertex{Pos: corner(-1, -1), UV: mgl.Vec2{0, 1}, Color: c},
			Vertex{Pos: corner(1, -1), UV: mgl.Vec2{1, 1}, Color: c},
			Vertex{Pos: corner(1, 1), UV: mgl.Vec2{1, 0}, Color: c},
			Vertex{Pos: corner(-1, 1), UV: mgl.Vec2{0, 0}, Color: c},
		)
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

// Tetrahedron returns a regular tetrahedron inscribed in the unit cube.
func Tetrahedron() *Mesh {
	corners := []mgl.Vec3{
		{0.5, 0.5, 0.5},
		{0.5, -0.5, -0.5},
		{-0.5, 0.5, -0.5},
		{-0.5, -0.5, 0.5},
	}
	faces := [][3]int{{0, 1, 2}, {0, 3, 1}, {0, 2, 3}, {1, 3, 2}}
	uvs := []mgl.Vec2{{0, 1}, {1, 1}, {0.5, 0}}

	m := &Mesh{Name: "tetra"}
	for i, f := range faces {
		a, b, c := corners[f[0]], corners[f[1]], corners[f[2]]
		// The centroid is the origin, so an outward face has its normal
		// pointing the same way as any of its corners.
		if b.Sub(a).Cross(c.Sub(a)).Dot(a) < 0 {
			b, c = c, b
		}
		base := uint16(len(m.Vertices))
		for j, p := range []mgl.Vec3{a, b, c} {
			m.Vertices = append(m.Vertices, Vertex{Pos: p, UV: uvs[j], Color: faceColors[i]})
		}
		m.Indices = append(m.Indices, base, base+1, base+2)
	}
	return m
}

// ByName returns a fresh copy of the named mesh, or nil.
func ByName(name string) *Mesh {
	switch name {
	case "cube":
		return Cube()
	case "tetra", "tetrahedron":
		return Tetrahedron()
	}
	return nil
}

// Names lists the meshes ByName knows.
func Names() []string { return []string{"cube", "tetra"} }
