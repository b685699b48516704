package scene

import (
	"slices"

	"graphite-raster/internal/framebuffer"
)

// QuadrantsTexture names the four-colour demo texture. Renderers supply it
// even without a texture directory.
const QuadrantsTexture = "quadrants"

var builtins = map[string]func() *Scene{
	"triangle":  triangleScene,
	"quadrants": quadrantsScene,
	"overlap":   overlapScene,
	"cube":      cubeScene,
	"tetra":     tetraScene,
}

// Builtin returns a fresh copy of a named demo scene, or nil.
func Builtin(name string) *Scene {
	if f, ok := builtins[name]; ok {
		return f()
	}
	return nil
}

// BuiltinNames lists the demo scenes in sorted order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func clearColor(c uint16) *Color {
	cc := Color(c)
	return &cc
}

// white returns an opaque white vertex at z = 1.
func white(x, y, u, v float64) Vertex {
	return Vertex{X: x, Y: y, Z: 1, U: u, V: v, R: 1, G: 1, B: 1, A: 1}
}

// triangleScene is the right triangle x+y <= 10 in a 16×16 frame.
func triangleScene() *Scene {
	return &Scene{
		Name:   "triangle",
		Width:  16,
		Height: 16,
		Clear:  clearColor(0),
		Tris: [][3]Vertex{
			{white(0, 0, 0, 0), white(0, 10, 0, 1), white(10, 0, 1, 0)},
		},
	}
}

// quadrantsScene maps the quadrant texture onto a square made of two
// triangles.
func quadrantsScene() *Scene {
	return &Scene{
		Name:    "quadrants",
		Width:   64,
		Height:  64,
		Clear:   clearColor(framebuffer.DefaultClear),
		Texture: QuadrantsTexture,
		Tris: [][3]Vertex{
			{white(8, 8, 0, 0), white(8, 56, 0, 1), white(56, 8, 1, 0)},
			{white(56, 8, 1, 0), white(8, 56, 0, 1), white(56, 56, 1, 1)},
		},
	}
}

// overlapScene draws a near red triangle and then a far green one across it
// with depth testing on, so the red one stays in front.
func overlapScene() *Scene {
	red := func(x, y float64) Vertex { return Vertex{X: x, Y: y, Z: 1, R: 1, A: 1} }
	green := func(x, y float64) Vertex { return Vertex{X: x, Y: y, Z: 0.5, G: 1, A: 1} }
	return &Scene{
		Name:      "overlap",
		Width:     32,
		Height:    32,
		Clear:     clearColor(framebuffer.DefaultClear),
		DepthTest: true,
		Tris: [][3]Vertex{
			{red(2, 2), red(2, 24), red(24, 2)},
			{green(8, 8), green(8, 30), green(30, 8)},
		},
	}
}

func cubeScene() *Scene {
	return &Scene{
		Name:      "cube",
		Width:     128,
		Height:    128,
		Clear:     clearColor(framebuffer.DefaultClear),
		DepthTest: true,
		Texture:   QuadrantsTexture,
		Meshes: []MeshRef{
			{Shape: "cube", Rotate: [3]float32{30, 45, 0}, Lighting: true},
		},
	}
}

func tetraScene() *Scene {
	return &Scene{
		Name:      "tetra",
		Width:     128,
		Height:    128,
		Clear:     clearColor(framebuffer.DefaultClear),
		DepthTest: true,
		Meshes: []MeshRef{
			{Shape: "tetra", Rotate: [3]float32{20, 30, 0}, Lighting: true},
		},
	}
}
