// Package demo is the interactive spinning-model loop: a set of toggles, a
// rotation that advances once per tick, and a renderer that reuses one
// framebuffer and rasterizer across frames.
package demo

import (
	"fmt"

	"graphite-raster/internal/framebuffer"
	"graphite-raster/internal/mesh"
	"graphite-raster/internal/raster"
	"graphite-raster/internal/render"
	"graphite-raster/internal/scene"
)

// Action is a user command.
type Action int

const (
	ToggleRotation Action = iota
	ToggleTexture
	ToggleLighting
	NextModel
	ToggleClampS
	ToggleClampT
	ToggleDepthTest
)

// degreesPerTick is the rotation speed while spinning.
const degreesPerTick = 1.5

// State holds the demo toggles and the current model orientation.
type State struct {
	Rotating  bool
	Textured  bool
	Lighting  bool
	ClampS    bool
	ClampT    bool
	DepthTest bool
	Model     int
	Angle     float32
}

// NewState returns the demo's start-up state: spinning, textured cube with
// depth testing.
func NewState() State {
	return State{Rotating: true, Textured: true, DepthTest: true}
}

// Apply performs one action.
func (s *State) Apply(a Action) {
	switch a {
	case ToggleRotation:
		s.Rotating = !s.Rotating
	case ToggleTexture:
		s.Textured = !s.Textured
	case ToggleLighting:
		s.Lighting = !s.Lighting
	case NextModel:
		s.Model = (s.Model + 1) % len(mesh.Names())
	case ToggleClampS:
		s.ClampS = !s.ClampS
	case ToggleClampT:
		s.ClampT = !s.ClampT
	case ToggleDepthTest:
		s.DepthTest = !s.DepthTest
	}
}

// Tick advances the rotation by one step when spinning.
func (s *State) Tick() {
	if !s.Rotating {
		return
	}
	s.Angle += degreesPerTick
	if s.Angle >= 360 {
		s.Angle -= 360
	}
}

// ModelName returns the mesh currently shown.
func (s *State) ModelName() string { return mesh.Names()[s.Model] }

func (s State) String() string {
	return fmt.Sprintf("model=%s rotate=%v texture=%v lighting=%v clamp_s=%v clamp_t=%v depth=%v",
		s.ModelName(), s.Rotating, s.Textured, s.Lighting, s.ClampS, s.ClampT, s.DepthTest)
}

// Scene describes the frame for the current state.
func (s *State) Scene(width, height int) *scene.Scene {
	sc := &scene.Scene{
		Name:      "demo",
		Width:     width,
		Height:    height,
		DepthTest: s.DepthTest,
		ClampS:    s.ClampS,
		ClampT:    s.ClampT,
		Meshes: []scene.MeshRef{{
			Shape:    s.ModelName(),
			Rotate:   [3]float32{s.Angle * 0.5, s.Angle, 0},
			Lighting: s.Lighting,
		}},
	}
	if s.Textured {
		sc.Texture = scene.QuadrantsTexture
	}
	return sc
}

// Renderer draws successive frames into one framebuffer.
type Renderer struct {
	fb  *framebuffer.Buffer
	r   *raster.Rasterizer
	tex raster.Texture
}

// NewRenderer allocates the framebuffer and rasterizer. tex is used when the
// state is textured; nil selects the quadrant stand-in.
func NewRenderer(width, height int, tex raster.Texture) (*Renderer, error) {
	fb := framebuffer.New(width, height)
	r, err := raster.New(width, height, fb)
	if err != nil {
		return nil, err
	}
	if tex == nil {
		tex = raster.QuadrantTexture{}
	}
	return &Renderer{fb: fb, r: r, tex: tex}, nil
}

// Buffer returns the framebuffer frames are drawn into.
func (d *Renderer) Buffer() *framebuffer.Buffer { return d.fb }

// Render clears colour and depth and draws the state's scene.
func (d *Renderer) Render(s *State) render.Stats {
	d.fb.Clear(framebuffer.DefaultClear)
	d.r.ClearDepth()

	var tex raster.Texture
	if s.Textured {
		tex = d.tex
	}
	w, h := d.r.Size()
	return render.Draw(d.r, s.Scene(w, h).Triangles(tex))
}

// Close releases the rasterizer.
func (d *Renderer) Close() { d.r.Dispose() }
