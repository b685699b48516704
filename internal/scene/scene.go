// Package scene describes what to draw: screen-space triangles, meshes seen
// through a camera, or both, plus the framebuffer they are drawn into.
package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"graphite-raster/internal/mesh"
)

// ErrInvalidScene wraps every validation failure.
var ErrInvalidScene = errors.New("scene: invalid scene")

// MaxSize bounds each framebuffer dimension.
const MaxSize = 4096

// Scene is one frame to render.
type Scene struct {
	Name      string      `json:"name"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Clear     *Color      `json:"clear,omitempty"`
	DepthTest bool        `json:"depth_test"`
	Texture   string      `json:"texture,omitempty"`
	ClampS    bool        `json:"clamp_s"`
	ClampT    bool        `json:"clamp_t"`
	Tris      [][3]Vertex `json:"triangles,omitempty"`
	Meshes    []MeshRef   `json:"meshes,omitempty"`
	Camera    *Camera     `json:"camera,omitempty"`
}

// Vertex is a screen-space corner. Z, R, G, B and A default to 1 when
// omitted. U, V and the colour are given plain; Triangles pre-multiplies
// them by Z.
type Vertex struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	U float64 `json:"u"`
	V float64 `json:"v"`
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

func (v *Vertex) UnmarshalJSON(data []byte) error {
	type plain Vertex
	p := plain{Z: 1, R: 1, G: 1, B: 1, A: 1}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*v = Vertex(p)
	return nil
}

// MeshRef places a built-in mesh in the world. Rotate holds Euler angles in
// degrees about X, Y and Z, applied in that order.
type MeshRef struct {
	Shape     string     `json:"shape"`
	Rotate    [3]float32 `json:"rotate"`
	Translate [3]float32 `json:"translate"`
	Scale     float32    `json:"scale,omitempty"`
	Lighting  bool       `json:"lighting"`
}

// Camera overrides mesh.DefaultCamera field by field; zero fields keep the
// default. FovY is in degrees.
type Camera struct {
	Eye    *[3]float32 `json:"eye,omitempty"`
	Target *[3]float32 `json:"target,omitempty"`
	Up     *[3]float32 `json:"up,omitempty"`
	FovY   float32     `json:"fov_y,omitempty"`
	Near   float32     `json:"near,omitempty"`
	Far    float32     `json:"far,omitempty"`
}

// Color is a packed ARGB4444 value. In JSON it is a number or a string such
// as "0xF333".
type Color uint16

func (c *Color) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	n, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return fmt.Errorf("scene: clear colour %s: %w", data, err)
	}
	*c = Color(n)
	return nil
}

func (c Color) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`"0x%04X"`, uint16(c))), nil
}

// Load reads and validates a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scene: %s: %w", path, err)
	}
	return sc, nil
}

// Parse decodes and validates a scene.
func Parse(data []byte) (*Scene, error) {
	var sc Scene
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("scene: parse: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate reports the first problem that would stop the scene rendering.
func (s *Scene) Validate() error {
	switch {
	case s.Name == "":
		return fmt.Errorf("%w: missing name", ErrInvalidScene)
	case strings.ContainsAny(s.Name, `/\`) || s.Name == "." || s.Name == "..":
		return fmt.Errorf("%w: name %q is not a plain file name", ErrInvalidScene, s.Name)
	case s.Width <= 0 || s.Height <= 0 || s.Width > MaxSize || s.Height > MaxSize:
		return fmt.Errorf("%w: size %dx%d outside 1..%d", ErrInvalidScene, s.Width, s.Height, MaxSize)
	case len(s.Tris) == 0 && len(s.Meshes) == 0:
		return fmt.Errorf("%w: %s has nothing to draw", ErrInvalidScene, s.Name)
	}
	for i, m := range s.Meshes {
		if mesh.ByName(m.Shape) == nil {
			return fmt.Errorf("%w: mesh %d: unknown shape %q", ErrInvalidScene, i, m.Shape)
		}
	}
	if c := s.Camera; c != nil && c.Near < 0 {
		return fmt.Errorf("%w: negative near plane", ErrInvalidScene)
	}
	return nil
}
